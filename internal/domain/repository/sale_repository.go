package repository

import (
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
// Create persiste cabecera y líneas; las líneas pertenecen a la cabecera
// y se guardan ordenadas. Las ventas nunca se eliminan.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	// GetByID devuelve la venta con sus líneas en orden, o nil si no existe.
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloquea la fila de la cabecera: serializa cancelaciones
	// concurrentes de la misma venta.
	GetForUpdate(id string) (*entity.Sale, error)
	UpdateStatus(id string, status entity.SaleStatus) error
	List(limit, offset int) ([]*entity.Sale, error)
}
