package memory

import (
	"sync"

	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo repositorio de órdenes de compra en memoria.
type PurchaseOrderRepo struct {
	mu     sync.RWMutex
	orders map[string]*entity.PurchaseOrder
	order  []string // ids en orden de creación
}

// NewPurchaseOrderRepository construye el repositorio vacío.
func NewPurchaseOrderRepository() *PurchaseOrderRepo {
	return &PurchaseOrderRepo{orders: make(map[string]*entity.PurchaseOrder)}
}

func cloneOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	cp := *o
	if o.EstimatedDelivery != nil {
		t := *o.EstimatedDelivery
		cp.EstimatedDelivery = &t
	}
	cp.Lines = make([]entity.PurchaseOrderLine, len(o.Lines))
	copy(cp.Lines, o.Lines)
	return &cp
}

// Create persiste cabecera y líneas.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; ok {
		return domain.ErrDuplicate
	}
	r.orders[order.ID] = cloneOrder(order)
	r.order = append(r.order, order.ID)
	return nil
}

// GetByID devuelve la orden con sus líneas, o nil si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

// GetForUpdate equivale a GetByID: la serialización la da el TxRunner.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

// UpdateStatus cambia el estado de la cabecera.
func (r *PurchaseOrderRepo) UpdateStatus(id string, status entity.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

// UpdateLineReceived actualiza la cantidad recibida acumulada de una línea.
func (r *PurchaseOrderRepo) UpdateLineReceived(lineID string, received int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		for i := range o.Lines {
			if o.Lines[i].ID == lineID {
				o.Lines[i].Received = received
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

// List lista órdenes, más recientes primero.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.filter(limit, offset, func(*entity.PurchaseOrder) bool { return true }), nil
}

// ListByStatus lista órdenes en un estado dado.
func (r *PurchaseOrderRepo) ListByStatus(status entity.OrderStatus) ([]*entity.PurchaseOrder, error) {
	return r.filter(0, 0, func(o *entity.PurchaseOrder) bool {
		return o.Status == status
	}), nil
}

// ListBySupplier lista órdenes de un proveedor.
func (r *PurchaseOrderRepo) ListBySupplier(supplierID string) ([]*entity.PurchaseOrder, error) {
	return r.filter(0, 0, func(o *entity.PurchaseOrder) bool {
		return o.SupplierID == supplierID
	}), nil
}

func (r *PurchaseOrderRepo) filter(limit, offset int, keep func(*entity.PurchaseOrder) bool) []*entity.PurchaseOrder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.PurchaseOrder
	for i := len(r.order) - 1; i >= 0; i-- {
		if o := r.orders[r.order[i]]; keep(o) {
			list = append(list, cloneOrder(o))
		}
	}
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
