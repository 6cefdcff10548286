package inventory

import (
	"context"

	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
)

// Consultas de solo lectura sobre el estado del ledger. Sin efectos:
// repetirlas sin escrituras intermedias devuelve resultados idénticos.

// Snapshot devuelve el estado actual de un producto por código de barras.
func (uc *LedgerUseCase) Snapshot(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// LowStock devuelve los productos activos en o bajo su umbral de reorden.
func (uc *LedgerUseCase) LowStock(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.ListLowStock("")
}

// Depleted devuelve los productos activos agotados (stock == 0).
func (uc *LedgerUseCase) Depleted(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.ListDepleted()
}

// History devuelve el historial de movimientos de un producto, más
// recientes primero.
func (uc *LedgerUseCase) History(ctx context.Context, barcode string, limit, offset int) ([]*entity.Movement, error) {
	product, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByProduct(barcode, limit, offset)
}

// HistoryByType devuelve movimientos de un tipo, más recientes primero.
func (uc *LedgerUseCase) HistoryByType(ctx context.Context, movType entity.MovementType, limit, offset int) ([]*entity.Movement, error) {
	if !movType.Valid() {
		return nil, domain.ErrBadRequest
	}
	return uc.movRepo.ListByType(movType, limit, offset)
}

// Recent devuelve los últimos n movimientos globales.
func (uc *LedgerUseCase) Recent(ctx context.Context, n int) ([]*entity.Movement, error) {
	if n <= 0 {
		n = 10
	}
	return uc.movRepo.ListRecent(n)
}
