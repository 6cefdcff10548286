package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-motos/internal/application/inventory"
	"github.com/jhoicas/inventario-motos/internal/application/sales"
	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/infrastructure/memory"
)

func newSaleUseCase(t *testing.T) (*sales.SaleUseCase, *memory.TxRunner) {
	t.Helper()
	runner := memory.NewTxRunner()
	ledger := inventory.NewLedgerUseCase(runner, runner.Products, runner.Movements)
	uc := sales.NewSaleUseCase(runner, ledger, runner.Sales)
	return uc, runner
}

func seedProduct(t *testing.T, runner *memory.TxRunner, barcode, name string, price int64, stock int) {
	t.Helper()
	now := time.Now()
	err := runner.Products.Create(&entity.Product{
		Barcode:   barcode,
		Name:      name,
		Price:     decimal.NewFromInt(price),
		Stock:     stock,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
}

// TestCreateSale_DescuentaStockYCompletaVenta verifica el camino feliz:
// venta multi-línea COMPLETADA, stock descontado, total correcto y un
// movimiento SALIDA por línea referenciando VENTA-<id>.
func TestCreateSale_DescuentaStockYCompletaVenta(t *testing.T) {
	uc, runner := newSaleUseCase(t)
	seedProduct(t, runner, "7990000000016", "Kit de arrastre", 180000, 10)
	seedProduct(t, runner, "7990000000023", "Llanta trasera", 250000, 4)

	sale, err := uc.CreateSale(context.Background(), []sales.SaleLineInput{
		{Barcode: "7990000000016", Quantity: 2},
		{Barcode: "7990000000023", Quantity: 1},
	}, "mostrador")
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, entity.SaleStatusCOMPLETED, sale.Status)
	assert.Equal(t, "mostrador", sale.Notes)
	require.Len(t, sale.Lines, 2)
	// 2×180000 + 1×250000 = 610000
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(610000)),
		"total %s", sale.Total)
	assert.Equal(t, "Kit de arrastre", sale.Lines[0].Name)
	assert.True(t, sale.Lines[0].Subtotal.Equal(decimal.NewFromInt(360000)))

	p1, err := runner.Products.GetByBarcode("7990000000016")
	require.NoError(t, err)
	assert.Equal(t, 8, p1.Stock)
	assert.NotNil(t, p1.LastSaleAt)

	p2, err := runner.Products.GetByBarcode("7990000000023")
	require.NoError(t, err)
	assert.Equal(t, 3, p2.Stock)

	movs := runner.Movements.All()
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeOUT, m.Type)
		assert.Equal(t, "VENTA-"+sale.ID, m.Reference)
	}

	stored, err := uc.GetSale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(sale.Total))
	require.Len(t, stored.Lines, 2)
}

// TestCreateSale_TodoONada verifica que si una línea no puede cumplirse
// la venta entera falla: ni stock descontado de las líneas previas, ni
// movimientos, ni venta persistida.
func TestCreateSale_TodoONada(t *testing.T) {
	uc, runner := newSaleUseCase(t)
	seedProduct(t, runner, "7990000000016", "Kit de arrastre", 180000, 10)
	seedProduct(t, runner, "7990000000023", "Llanta trasera", 250000, 1)

	_, err := uc.CreateSale(context.Background(), []sales.SaleLineInput{
		{Barcode: "7990000000016", Quantity: 2},
		{Barcode: "7990000000023", Quantity: 5}, // no alcanza
	}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, "7990000000023", insufficientErr.Barcode)
	assert.Equal(t, "Llanta trasera", insufficientErr.Name)
	assert.Equal(t, 1, insufficientErr.Available)
	assert.Equal(t, 5, insufficientErr.Requested)

	p1, err := runner.Products.GetByBarcode("7990000000016")
	require.NoError(t, err)
	assert.Equal(t, 10, p1.Stock, "la primera línea no debe haberse aplicado")
	assert.Empty(t, runner.Movements.All())

	list, err := uc.ListSales(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list, "la venta fallida no debe persistirse")
}

// TestCreateSale_LineasRepetidasConsumenProyectado verifica que dos
// líneas del mismo producto se evalúan contra el stock proyectado: ambas
// caben juntas o la venta falla, aunque cada una quepa por separado.
func TestCreateSale_LineasRepetidasConsumenProyectado(t *testing.T) {
	uc, runner := newSaleUseCase(t)
	seedProduct(t, runner, "7990000000016", "Kit de arrastre", 180000, 5)

	// 3 + 3 > 5: debe fallar aunque cada línea quepa sola
	_, err := uc.CreateSale(context.Background(), []sales.SaleLineInput{
		{Barcode: "7990000000016", Quantity: 3},
		{Barcode: "7990000000016", Quantity: 3},
	}, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// 3 + 2 = 5: debe pasar y dejar stock en cero
	sale, err := uc.CreateSale(context.Background(), []sales.SaleLineInput{
		{Barcode: "7990000000016", Quantity: 3},
		{Barcode: "7990000000016", Quantity: 2},
	}, "")
	require.NoError(t, err)
	require.Len(t, sale.Lines, 2)

	p, err := runner.Products.GetByBarcode("7990000000016")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

// TestCreateSale_Validaciones verifica entradas inválidas: sin líneas,
// cantidad < 1, producto inexistente.
func TestCreateSale_Validaciones(t *testing.T) {
	uc, runner := newSaleUseCase(t)
	seedProduct(t, runner, "7990000000016", "Kit de arrastre", 180000, 5)

	_, err := uc.CreateSale(context.Background(), nil, "")
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = uc.CreateSale(context.Background(), []sales.SaleLineInput{
		{Barcode: "7990000000016", Quantity: 0},
	}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.CreateSale(context.Background(), []sales.SaleLineInput{
		{Barcode: "0000000000000", Quantity: 1},
	}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestCreateSale_CapturaPrecioAlMomento verifica que la línea captura el
// precio vigente: subir el precio del producto después no altera la venta.
func TestCreateSale_CapturaPrecioAlMomento(t *testing.T) {
	uc, runner := newSaleUseCase(t)
	seedProduct(t, runner, "7990000000016", "Kit de arrastre", 180000, 5)

	sale, err := uc.CreateSale(context.Background(), []sales.SaleLineInput{
		{Barcode: "7990000000016", Quantity: 1},
	}, "")
	require.NoError(t, err)

	// Subir el precio del producto
	p, err := runner.Products.GetByBarcode("7990000000016")
	require.NoError(t, err)
	p.Price = decimal.NewFromInt(999999)
	require.NoError(t, runner.Products.Update(p))

	stored, err := uc.GetSale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.True(t, stored.Lines[0].UnitPrice.Equal(decimal.NewFromInt(180000)),
		"el precio capturado no debe seguir al catálogo")
}

// TestCancelSale_RestauraStockUnaVez verifica que cancelar restaura el
// stock vía DEVOLUCION y que una segunda cancelación falla con
// ErrInvalidState sin duplicar la devolución.
func TestCancelSale_RestauraStockUnaVez(t *testing.T) {
	uc, runner := newSaleUseCase(t)
	seedProduct(t, runner, "7990000000016", "Kit de arrastre", 180000, 10)
	seedProduct(t, runner, "7990000000023", "Llanta trasera", 250000, 4)

	sale, err := uc.CreateSale(context.Background(), []sales.SaleLineInput{
		{Barcode: "7990000000016", Quantity: 3},
		{Barcode: "7990000000023", Quantity: 2},
	}, "")
	require.NoError(t, err)

	cancelled, err := uc.CancelSale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCANCELLED, cancelled.Status)

	p1, err := runner.Products.GetByBarcode("7990000000016")
	require.NoError(t, err)
	assert.Equal(t, 10, p1.Stock, "el stock debe quedar restaurado")
	p2, err := runner.Products.GetByBarcode("7990000000023")
	require.NoError(t, err)
	assert.Equal(t, 4, p2.Stock)

	var returns int
	for _, m := range runner.Movements.All() {
		if m.Type == entity.MovementTypeRETURN {
			returns++
			assert.Equal(t, "CANCEL-VENTA-"+sale.ID, m.Reference)
		}
	}
	assert.Equal(t, 2, returns, "una DEVOLUCION por línea")

	// Doble cancelación
	_, err = uc.CancelSale(context.Background(), sale.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	p1, err = runner.Products.GetByBarcode("7990000000016")
	require.NoError(t, err)
	assert.Equal(t, 10, p1.Stock, "la doble cancelación no debe duplicar stock")
}

// TestCancelSale_ProcedeConStockIntermedioVendido verifica que la
// devolución siempre procede, incluso si el producto ya se movió después
// de la venta original.
func TestCancelSale_ProcedeConStockIntermedioVendido(t *testing.T) {
	uc, runner := newSaleUseCase(t)
	seedProduct(t, runner, "7990000000016", "Kit de arrastre", 180000, 5)

	sale, err := uc.CreateSale(context.Background(), []sales.SaleLineInput{
		{Barcode: "7990000000016", Quantity: 2},
	}, "")
	require.NoError(t, err)

	// Otra venta intermedia deja el stock en 0
	_, err = uc.CreateSale(context.Background(), []sales.SaleLineInput{
		{Barcode: "7990000000016", Quantity: 3},
	}, "")
	require.NoError(t, err)

	_, err = uc.CancelSale(context.Background(), sale.ID)
	require.NoError(t, err)

	p, err := runner.Products.GetByBarcode("7990000000016")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)
}

// TestCancelSale_VentaInexistente verifica ErrNotFound.
func TestCancelSale_VentaInexistente(t *testing.T) {
	uc, _ := newSaleUseCase(t)
	_, err := uc.CancelSale(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestListSales_MasRecientesPrimero verifica el orden del listado.
func TestListSales_MasRecientesPrimero(t *testing.T) {
	uc, runner := newSaleUseCase(t)
	seedProduct(t, runner, "7990000000016", "Kit de arrastre", 180000, 10)

	first, err := uc.CreateSale(context.Background(), []sales.SaleLineInput{
		{Barcode: "7990000000016", Quantity: 1},
	}, "primera")
	require.NoError(t, err)
	second, err := uc.CreateSale(context.Background(), []sales.SaleLineInput{
		{Barcode: "7990000000016", Quantity: 1},
	}, "segunda")
	require.NoError(t, err)

	list, err := uc.ListSales(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}
