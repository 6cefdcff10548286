package repository

import "github.com/jhoicas/inventario-motos/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	ListActive() ([]*entity.Supplier, error)
	// Delete es borrado lógico (active=false).
	Delete(id string) error
}
