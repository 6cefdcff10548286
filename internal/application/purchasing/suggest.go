package purchasing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
)

// suggestedCostRate fracción del precio de venta usada como estimación
// del costo de compra cuando no hay precio negociado.
var suggestedCostRate = decimal.NewFromFloat(0.7)

// SuggestionLine línea propuesta de reposición para un producto bajo su
// umbral de reorden.
type SuggestionLine struct {
	Barcode   string
	Name      string
	Stock     int
	MinStock  int
	Quantity  int             // 2×umbral − stock: llevar al doble del umbral
	UnitPrice decimal.Decimal // estimación: 70% del precio de venta
}

// OrderSuggestion borrador de orden de compra. No tiene efectos: el
// caller decide si lo somete a CreateOrder.
type OrderSuggestion struct {
	SupplierID   string
	SupplierName string
	Lines        []SuggestionLine
}

// SuggestOrder propone una orden de compra para los productos activos del
// proveedor que están en o bajo su umbral de reorden. Falla con
// ErrNotFound si el proveedor no existe y con ErrNoSuggestion si ningún
// producto del proveedor necesita reposición. Cómputo puro, sin mutación.
func (uc *OrderUseCase) SuggestOrder(ctx context.Context, supplierID string) (*OrderSuggestion, error) {
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	candidates, err := uc.productRepo.ListLowStock(supplierID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoSuggestion
	}

	suggestion := &OrderSuggestion{
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		Lines:        make([]SuggestionLine, 0, len(candidates)),
	}
	for _, p := range candidates {
		suggestion.Lines = append(suggestion.Lines, SuggestionLine{
			Barcode:   p.Barcode,
			Name:      p.Name,
			Stock:     p.Stock,
			MinStock:  p.MinStock,
			Quantity:  suggestedQuantity(p),
			UnitPrice: p.Price.Mul(suggestedCostRate).Round(2),
		})
	}
	return suggestion, nil
}

// suggestedQuantity calcula la cantidad propuesta: completar al doble del
// umbral de reorden.
func suggestedQuantity(p *entity.Product) int {
	return 2*p.MinStock - p.Stock
}
