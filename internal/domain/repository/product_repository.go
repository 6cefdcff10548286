package repository

import (
	"time"

	"github.com/jhoicas/inventario-motos/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE): es el
// mecanismo de serialización por ítem del ledger.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByBarcode(barcode string) (*entity.Product, error)
	GetForUpdate(barcode string) (*entity.Product, error)
	ExistsByBarcode(barcode string) (bool, error)
	Update(product *entity.Product) error
	// UpdateStock actualiza solo stock y, si no es nil, la fecha de última venta.
	UpdateStock(barcode string, stock int, lastSaleAt *time.Time) error
	ListActive(limit, offset int) ([]*entity.Product, error)
	// ListLowStock devuelve productos activos con Stock <= MinStock.
	// supplierID vacío no filtra por proveedor.
	ListLowStock(supplierID string) ([]*entity.Product, error)
	// ListDepleted devuelve productos activos con Stock == 0.
	ListDepleted() ([]*entity.Product, error)
	Search(query string, limit, offset int) ([]*entity.Product, error)
	// Delete es borrado lógico (active=false).
	Delete(barcode string) error
}
