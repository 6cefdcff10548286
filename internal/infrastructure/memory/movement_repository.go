package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger en memoria: slice append-only en orden de llegada.
type MovementRepo struct {
	mu        sync.RWMutex
	movements []*entity.Movement
}

// NewMovementRepository construye el repositorio vacío.
func NewMovementRepository() *MovementRepo {
	return &MovementRepo{}
}

// Create agrega el movimiento al final del ledger.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	cp := *movement
	r.movements = append(r.movements, &cp)
	return nil
}

// GetByID devuelve un movimiento, o nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *MovementRepo) ListByProduct(barcode string, limit, offset int) ([]*entity.Movement, error) {
	return r.filter(limit, offset, func(m *entity.Movement) bool {
		return m.Barcode == barcode
	}), nil
}

// ListByType lista movimientos de un tipo, más recientes primero.
func (r *MovementRepo) ListByType(movType entity.MovementType, limit, offset int) ([]*entity.Movement, error) {
	return r.filter(limit, offset, func(m *entity.Movement) bool {
		return m.Type == movType
	}), nil
}

// ListRecent lista los últimos n movimientos globales.
func (r *MovementRepo) ListRecent(n int) ([]*entity.Movement, error) {
	return r.filter(n, 0, func(*entity.Movement) bool { return true }), nil
}

// All devuelve el ledger completo en orden de llegada (para asserts).
func (r *MovementRepo) All() []*entity.Movement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Movement, 0, len(r.movements))
	for _, m := range r.movements {
		cp := *m
		out = append(out, &cp)
	}
	return out
}

func (r *MovementRepo) filter(limit, offset int, keep func(*entity.Movement) bool) []*entity.Movement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Movement
	// Más recientes primero: recorrer en orden inverso de llegada
	for i := len(r.movements) - 1; i >= 0; i-- {
		if keep(r.movements[i]) {
			cp := *r.movements[i]
			list = append(list, &cp)
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
