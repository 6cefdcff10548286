package memory

import (
	"sync"

	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo repositorio de ventas en memoria.
type SaleRepo struct {
	mu    sync.RWMutex
	sales map[string]*entity.Sale
	order []string // ids en orden de creación
}

// NewSaleRepository construye el repositorio vacío.
func NewSaleRepository() *SaleRepo {
	return &SaleRepo{sales: make(map[string]*entity.Sale)}
}

func cloneSale(s *entity.Sale) *entity.Sale {
	cp := *s
	cp.Lines = make([]entity.SaleLine, len(s.Lines))
	copy(cp.Lines, s.Lines)
	return &cp
}

// Create persiste cabecera y líneas.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	r.sales[sale.ID] = cloneSale(sale)
	r.order = append(r.order, sale.ID)
	return nil
}

// GetByID devuelve la venta con sus líneas, o nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	return cloneSale(s), nil
}

// GetForUpdate equivale a GetByID: la serialización la da el TxRunner.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

// UpdateStatus cambia el estado de la cabecera.
func (r *SaleRepo) UpdateStatus(id string, status entity.SaleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status = status
	return nil
}

// List lista ventas, más recientes primero.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Sale
	for i := len(r.order) - 1; i >= 0; i-- {
		list = append(list, cloneSale(r.sales[r.order[i]]))
	}
	if offset > 0 {
		if offset >= len(list) {
			return nil, nil
		}
		list = list[offset:]
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}
