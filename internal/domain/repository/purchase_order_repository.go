package repository

import (
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes
// de compra. Create persiste cabecera y líneas ordenadas.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	// GetByID devuelve la orden con sus líneas en orden, o nil si no existe.
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la fila de la cabecera para recepciones concurrentes.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	UpdateStatus(id string, status entity.OrderStatus) error
	// UpdateLineReceived actualiza la cantidad recibida acumulada de una línea.
	UpdateLineReceived(lineID string, received int) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	ListByStatus(status entity.OrderStatus) ([]*entity.PurchaseOrder, error)
	ListBySupplier(supplierID string) ([]*entity.PurchaseOrder, error)
}
