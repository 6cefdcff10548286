package repository

import (
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos.
// Los movimientos son append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// ListByProduct lista movimientos de un producto, más recientes primero.
	ListByProduct(barcode string, limit, offset int) ([]*entity.Movement, error)
	ListByType(movType entity.MovementType, limit, offset int) ([]*entity.Movement, error)
	// ListRecent lista los últimos n movimientos globales, más recientes primero.
	ListRecent(n int) ([]*entity.Movement, error)
}
