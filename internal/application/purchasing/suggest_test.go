package purchasing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-motos/internal/application/purchasing"
	"github.com/jhoicas/inventario-motos/internal/domain"
)

// TestSuggestOrder_ProponeCompletarAlDobleDelUmbral verifica la fórmula
// de la sugerencia: cantidad = 2×umbral − stock, precio estimado = 70%
// del precio de venta redondeado a 2 decimales.
func TestSuggestOrder_ProponeCompletarAlDobleDelUmbral(t *testing.T) {
	f := newFixture(t)
	supplierID := f.seedSupplier(t, "Importadora Yamaha")
	f.seedProduct(t, "7990000000016", "Pastillas de freno", supplierID, 45000, 2, 5)  // bajo
	f.seedProduct(t, "7990000000023", "Filtro de aire", supplierID, 30555, 4, 4)      // en el umbral
	f.seedProduct(t, "7990000000030", "Cadena reforzada", supplierID, 90000, 10, 2)   // sano

	suggestion, err := f.uc.SuggestOrder(context.Background(), supplierID)
	require.NoError(t, err)
	require.NotNil(t, suggestion)

	assert.Equal(t, supplierID, suggestion.SupplierID)
	assert.Equal(t, "Importadora Yamaha", suggestion.SupplierName)
	require.Len(t, suggestion.Lines, 2, "el producto sano no se sugiere")

	byBarcode := make(map[string]int)
	for i, l := range suggestion.Lines {
		byBarcode[l.Barcode] = i
	}
	require.Contains(t, byBarcode, "7990000000016")
	require.Contains(t, byBarcode, "7990000000023")

	low := suggestion.Lines[byBarcode["7990000000016"]]
	assert.Equal(t, 2*5-2, low.Quantity, "completar al doble del umbral")
	assert.True(t, low.UnitPrice.Equal(decimal.NewFromInt(31500)), // 45000 × 0.7
		"precio sugerido %s", low.UnitPrice)

	atThreshold := suggestion.Lines[byBarcode["7990000000023"]]
	assert.Equal(t, 2*4-4, atThreshold.Quantity)
	// 30555 × 0.7 = 21388.5, redondeado a 2 decimales
	assert.True(t, atThreshold.UnitPrice.Equal(decimal.NewFromFloat(21388.5)),
		"precio sugerido %s", atThreshold.UnitPrice)
}

// TestSuggestOrder_SinMutacion verifica que la sugerencia es un cómputo
// puro: repetirla da lo mismo y no crea órdenes ni movimientos.
func TestSuggestOrder_SinMutacion(t *testing.T) {
	f := newFixture(t)
	supplierID := f.seedSupplier(t, "Importadora Yamaha")
	f.seedProduct(t, "7990000000016", "Pastillas de freno", supplierID, 45000, 2, 5)

	first, err := f.uc.SuggestOrder(context.Background(), supplierID)
	require.NoError(t, err)
	second, err := f.uc.SuggestOrder(context.Background(), supplierID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	orders, err := f.uc.ListOrders(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, f.runner.Movements.All())
}

// TestSuggestOrder_SinCandidatos verifica ErrNoSuggestion cuando ningún
// producto del proveedor necesita reposición, y ErrNotFound para un
// proveedor inexistente.
func TestSuggestOrder_SinCandidatos(t *testing.T) {
	f := newFixture(t)
	supplierID := f.seedSupplier(t, "Importadora Yamaha")
	otherID := f.seedSupplier(t, "Repuestos Honda")
	f.seedProduct(t, "7990000000016", "Pastillas de freno", supplierID, 45000, 10, 5)
	// Producto bajo de stock, pero de otro proveedor
	f.seedProduct(t, "7990000000023", "Filtro de aire", otherID, 30000, 0, 4)

	_, err := f.uc.SuggestOrder(context.Background(), supplierID)
	assert.ErrorIs(t, err, domain.ErrNoSuggestion)

	_, err = f.uc.SuggestOrder(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestSuggestOrder_SometibleACreateOrder verifica que el borrador
// sugerido puede someterse tal cual a CreateOrder.
func TestSuggestOrder_SometibleACreateOrder(t *testing.T) {
	f := newFixture(t)
	supplierID := f.seedSupplier(t, "Importadora Yamaha")
	f.seedProduct(t, "7990000000016", "Pastillas de freno", supplierID, 45000, 2, 5)

	suggestion, err := f.uc.SuggestOrder(context.Background(), supplierID)
	require.NoError(t, err)

	lines := make([]purchasing.OrderLineInput, 0, len(suggestion.Lines))
	for _, l := range suggestion.Lines {
		lines = append(lines, purchasing.OrderLineInput{
			Barcode:   l.Barcode,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	order, err := f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: suggestion.SupplierID,
		Notes:      "desde sugerencia",
		Lines:      lines,
	})
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, 8, order.Lines[0].Requested)
	// 8 × 31500 = 252000
	assert.True(t, order.Total.Equal(decimal.NewFromInt(252000)), "total %s", order.Total)
}
