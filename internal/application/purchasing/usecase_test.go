package purchasing_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-motos/internal/application/inventory"
	"github.com/jhoicas/inventario-motos/internal/application/purchasing"
	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/infrastructure/memory"
)

type fixture struct {
	uc       *purchasing.OrderUseCase
	runner   *memory.TxRunner
	supplier *memory.SupplierRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	runner := memory.NewTxRunner()
	supplierRepo := memory.NewSupplierRepository()
	ledger := inventory.NewLedgerUseCase(runner, runner.Products, runner.Movements)
	uc := purchasing.NewOrderUseCase(runner, ledger, runner.Orders, runner.Products, supplierRepo)
	return &fixture{uc: uc, runner: runner, supplier: supplierRepo}
}

func (f *fixture) seedSupplier(t *testing.T, name string) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now()
	require.NoError(t, f.supplier.Create(&entity.Supplier{
		ID: id, Name: name, Active: true, CreatedAt: now, UpdatedAt: now,
	}))
	return id
}

func (f *fixture) seedProduct(t *testing.T, barcode, name, supplierID string, price int64, stock, minStock int) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.runner.Products.Create(&entity.Product{
		Barcode:    barcode,
		Name:       name,
		SupplierID: supplierID,
		Price:      decimal.NewFromInt(price),
		Stock:      stock,
		MinStock:   minStock,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}))
}

// TestCreateOrder_PendienteSinEfectosDeStock verifica que crear una orden
// la deja PENDIENTE con total = Σ(precio de compra × solicitado) y sin
// tocar stock ni ledger.
func TestCreateOrder_PendienteSinEfectosDeStock(t *testing.T) {
	f := newFixture(t)
	supplierID := f.seedSupplier(t, "Importadora Yamaha")
	f.seedProduct(t, "7990000000016", "Pastillas de freno", supplierID, 45000, 2, 5)
	f.seedProduct(t, "7990000000023", "Filtro de aire", supplierID, 30000, 1, 4)

	order, err := f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: supplierID,
		Notes:      "reposición semanal",
		Lines: []purchasing.OrderLineInput{
			{Barcode: "7990000000016", Quantity: 10, UnitPrice: decimal.NewFromInt(30000)},
			{Barcode: "7990000000023", Quantity: 5, UnitPrice: decimal.NewFromInt(20000)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, entity.OrderStatusPENDING, order.Status)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, "Pastillas de freno", order.Lines[0].Name)
	assert.Equal(t, 0, order.Lines[0].Received)
	// 10×30000 + 5×20000 = 400000
	assert.True(t, order.Total.Equal(decimal.NewFromInt(400000)), "total %s", order.Total)

	p, err := f.runner.Products.GetByBarcode("7990000000016")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock, "crear la orden no acredita stock")
	assert.Empty(t, f.runner.Movements.All())
}

// TestCreateOrder_Validaciones verifica: sin líneas, proveedor
// inexistente, producto inexistente, cantidad < 1 y precio negativo.
func TestCreateOrder_Validaciones(t *testing.T) {
	f := newFixture(t)
	supplierID := f.seedSupplier(t, "Importadora Yamaha")
	f.seedProduct(t, "7990000000016", "Pastillas de freno", supplierID, 45000, 2, 5)

	_, err := f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: supplierID,
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: "no-existe",
		Lines:      []purchasing.OrderLineInput{{Barcode: "7990000000016", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: supplierID,
		Lines:      []purchasing.OrderLineInput{{Barcode: "0000000000000", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: supplierID,
		Lines:      []purchasing.OrderLineInput{{Barcode: "7990000000016", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: supplierID,
		Lines: []purchasing.OrderLineInput{
			{Barcode: "7990000000016", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

// TestSetStatus_Transiciones verifica las transiciones administrativas
// legales e ilegales, incluyendo que los estados de recepción no son
// alcanzables por esta vía.
func TestSetStatus_Transiciones(t *testing.T) {
	f := newFixture(t)
	supplierID := f.seedSupplier(t, "Importadora Yamaha")
	f.seedProduct(t, "7990000000016", "Pastillas de freno", supplierID, 45000, 2, 5)

	order, err := f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: supplierID,
		Lines:      []purchasing.OrderLineInput{{Barcode: "7990000000016", Quantity: 3}},
	})
	require.NoError(t, err)

	// Los estados de recepción solo se alcanzan recibiendo mercancía
	_, err = f.uc.SetStatus(context.Background(), order.ID, entity.OrderStatusRECEIVED)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = f.uc.SetStatus(context.Background(), order.ID, entity.OrderStatusPartialReceived)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Estado desconocido
	_, err = f.uc.SetStatus(context.Background(), order.ID, entity.OrderStatus("DESPACHADA"))
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	// PENDIENTE → ENVIADA: legal
	updated, err := f.uc.SetStatus(context.Background(), order.ID, entity.OrderStatusSENT)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusSENT, updated.Status)

	// ENVIADA → PENDIENTE: no hay marcha atrás
	_, err = f.uc.SetStatus(context.Background(), order.ID, entity.OrderStatusPENDING)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Orden inexistente
	_, err = f.uc.SetStatus(context.Background(), "no-existe", entity.OrderStatusSENT)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestReceiveGoods_ParcialYLuegoCompleta verifica el flujo de recepción
// incremental: parcial deja RECIBIDA_PARCIAL y acredita stock; completar
// el resto deja RECIBIDA y la orden queda cerrada a más recepciones.
func TestReceiveGoods_ParcialYLuegoCompleta(t *testing.T) {
	f := newFixture(t)
	supplierID := f.seedSupplier(t, "Importadora Yamaha")
	f.seedProduct(t, "7990000000016", "Pastillas de freno", supplierID, 45000, 2, 5)
	f.seedProduct(t, "7990000000023", "Filtro de aire", supplierID, 30000, 1, 4)

	order, err := f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: supplierID,
		Lines: []purchasing.OrderLineInput{
			{Barcode: "7990000000016", Quantity: 10, UnitPrice: decimal.NewFromInt(30000)},
			{Barcode: "7990000000023", Quantity: 5, UnitPrice: decimal.NewFromInt(20000)},
		},
	})
	require.NoError(t, err)
	_, err = f.uc.SetStatus(context.Background(), order.ID, entity.OrderStatusSENT)
	require.NoError(t, err)

	// Primera entrega: llega parte de un solo ítem
	updated, err := f.uc.ReceiveGoods(context.Background(), order.ID, []purchasing.ReceiptInput{
		{Barcode: "7990000000016", Quantity: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPartialReceived, updated.Status)

	p, err := f.runner.Products.GetByBarcode("7990000000016")
	require.NoError(t, err)
	assert.Equal(t, 6, p.Stock, "2 + 4 recibidos")

	movs := f.runner.Movements.All()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	assert.Equal(t, "OC-"+order.ID, movs[0].Reference)

	// Segunda entrega: completa ambas líneas
	updated, err = f.uc.ReceiveGoods(context.Background(), order.ID, []purchasing.ReceiptInput{
		{Barcode: "7990000000016", Quantity: 6},
		{Barcode: "7990000000023", Quantity: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusRECEIVED, updated.Status)
	for _, l := range updated.Lines {
		assert.Equal(t, l.Requested, l.Received)
	}

	p, err = f.runner.Products.GetByBarcode("7990000000016")
	require.NoError(t, err)
	assert.Equal(t, 12, p.Stock)

	// La orden RECIBIDA no admite más recepciones
	_, err = f.uc.ReceiveGoods(context.Background(), order.ID, []purchasing.ReceiptInput{
		{Barcode: "7990000000016", Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// TestReceiveGoods_SobreRecepcionRechazadaSinEfectos verifica que una
// recepción que excede lo pendiente se rechaza completa: ninguna otra
// línea de la misma recepción se acredita.
func TestReceiveGoods_SobreRecepcionRechazadaSinEfectos(t *testing.T) {
	f := newFixture(t)
	supplierID := f.seedSupplier(t, "Importadora Yamaha")
	f.seedProduct(t, "7990000000016", "Pastillas de freno", supplierID, 45000, 0, 5)
	f.seedProduct(t, "7990000000023", "Filtro de aire", supplierID, 30000, 0, 4)

	order, err := f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: supplierID,
		Lines: []purchasing.OrderLineInput{
			{Barcode: "7990000000016", Quantity: 3, UnitPrice: decimal.NewFromInt(30000)},
			{Barcode: "7990000000023", Quantity: 3, UnitPrice: decimal.NewFromInt(20000)},
		},
	})
	require.NoError(t, err)

	_, err = f.uc.ReceiveGoods(context.Background(), order.ID, []purchasing.ReceiptInput{
		{Barcode: "7990000000023", Quantity: 2}, // válida
		{Barcode: "7990000000016", Quantity: 4}, // excede lo solicitado
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	p, err := f.runner.Products.GetByBarcode("7990000000023")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock, "la línea válida tampoco debe acreditarse")
	assert.Empty(t, f.runner.Movements.All())

	stored, err := f.uc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPENDING, stored.Status)
	for _, l := range stored.Lines {
		assert.Equal(t, 0, l.Received)
	}
}

// TestReceiveGoods_ItemAjenoYCantidadCero verifica que un ítem que no es
// parte de la orden falla con ErrBadRequest y que las cantidades cero se
// ignoran sin generar movimientos.
func TestReceiveGoods_ItemAjenoYCantidadCero(t *testing.T) {
	f := newFixture(t)
	supplierID := f.seedSupplier(t, "Importadora Yamaha")
	f.seedProduct(t, "7990000000016", "Pastillas de freno", supplierID, 45000, 0, 5)
	f.seedProduct(t, "7990000000030", "Cadena reforzada", supplierID, 90000, 0, 2)

	order, err := f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: supplierID,
		Lines: []purchasing.OrderLineInput{
			{Barcode: "7990000000016", Quantity: 3, UnitPrice: decimal.NewFromInt(30000)},
		},
	})
	require.NoError(t, err)

	_, err = f.uc.ReceiveGoods(context.Background(), order.ID, []purchasing.ReceiptInput{
		{Barcode: "7990000000030", Quantity: 1}, // no es parte de la orden
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	updated, err := f.uc.ReceiveGoods(context.Background(), order.ID, []purchasing.ReceiptInput{
		{Barcode: "7990000000016", Quantity: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPENDING, updated.Status,
		"una recepción sin avance no cambia el estado")
	assert.Empty(t, f.runner.Movements.All())

	_, err = f.uc.ReceiveGoods(context.Background(), order.ID, nil)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

// TestCancel_NoReversaLoRecibido verifica que cancelar una orden
// parcialmente recibida detiene recepciones futuras pero no reversa la
// mercancía ya acreditada, y que una orden RECIBIDA no se puede cancelar.
func TestCancel_NoReversaLoRecibido(t *testing.T) {
	f := newFixture(t)
	supplierID := f.seedSupplier(t, "Importadora Yamaha")
	f.seedProduct(t, "7990000000016", "Pastillas de freno", supplierID, 45000, 0, 5)

	order, err := f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: supplierID,
		Lines: []purchasing.OrderLineInput{
			{Barcode: "7990000000016", Quantity: 10, UnitPrice: decimal.NewFromInt(30000)},
		},
	})
	require.NoError(t, err)

	_, err = f.uc.ReceiveGoods(context.Background(), order.ID, []purchasing.ReceiptInput{
		{Barcode: "7990000000016", Quantity: 4},
	})
	require.NoError(t, err)

	cancelled, err := f.uc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCANCELLED, cancelled.Status)

	p, err := f.runner.Products.GetByBarcode("7990000000016")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Stock, "lo ya recibido no se reversa")

	_, err = f.uc.ReceiveGoods(context.Background(), order.ID, []purchasing.ReceiptInput{
		{Barcode: "7990000000016", Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Una orden totalmente recibida no se puede cancelar
	other, err := f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: supplierID,
		Lines: []purchasing.OrderLineInput{
			{Barcode: "7990000000016", Quantity: 2, UnitPrice: decimal.NewFromInt(30000)},
		},
	})
	require.NoError(t, err)
	_, err = f.uc.ReceiveGoods(context.Background(), other.ID, []purchasing.ReceiptInput{
		{Barcode: "7990000000016", Quantity: 2},
	})
	require.NoError(t, err)
	_, err = f.uc.Cancel(context.Background(), other.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// TestListOrders_Filtros verifica los listados por estado y proveedor.
func TestListOrders_Filtros(t *testing.T) {
	f := newFixture(t)
	yamahaID := f.seedSupplier(t, "Importadora Yamaha")
	hondaID := f.seedSupplier(t, "Repuestos Honda")
	f.seedProduct(t, "7990000000016", "Pastillas de freno", yamahaID, 45000, 0, 5)

	first, err := f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: yamahaID,
		Lines:      []purchasing.OrderLineInput{{Barcode: "7990000000016", Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: hondaID,
		Lines:      []purchasing.OrderLineInput{{Barcode: "7990000000016", Quantity: 2}},
	})
	require.NoError(t, err)
	_, err = f.uc.SetStatus(context.Background(), second.ID, entity.OrderStatusSENT)
	require.NoError(t, err)

	pending, err := f.uc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)

	bySupplier, err := f.uc.ListBySupplier(context.Background(), hondaID)
	require.NoError(t, err)
	require.Len(t, bySupplier, 1)
	assert.Equal(t, second.ID, bySupplier[0].ID)

	all, err := f.uc.ListOrders(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// TestReceiveGoods_RecepcionesRepetidasAcumulan verifica que varias
// recepciones del mismo ítem en una sola llamada se validan acumuladas:
// juntas no pueden exceder lo solicitado, aunque cada una quepa sola.
func TestReceiveGoods_RecepcionesRepetidasAcumulan(t *testing.T) {
	f := newFixture(t)
	supplierID := f.seedSupplier(t, "Importadora Yamaha")
	f.seedProduct(t, "7990000000016", "Pastillas de freno", supplierID, 45000, 0, 5)

	order, err := f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
		SupplierID: supplierID,
		Lines: []purchasing.OrderLineInput{
			{Barcode: "7990000000016", Quantity: 10, UnitPrice: decimal.NewFromInt(30000)},
		},
	})
	require.NoError(t, err)

	// 6 + 6 > 10: debe rechazarse completa, sin acreditar nada
	_, err = f.uc.ReceiveGoods(context.Background(), order.ID, []purchasing.ReceiptInput{
		{Barcode: "7990000000016", Quantity: 6},
		{Barcode: "7990000000016", Quantity: 6},
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	stored, err := f.uc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPENDING, stored.Status)
	assert.Equal(t, 0, stored.Lines[0].Received)
	assert.Empty(t, f.runner.Movements.All())

	p, err := f.runner.Products.GetByBarcode("7990000000016")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)

	// 6 + 4 = 10: caben juntas y completan la línea
	updated, err := f.uc.ReceiveGoods(context.Background(), order.ID, []purchasing.ReceiptInput{
		{Barcode: "7990000000016", Quantity: 6},
		{Barcode: "7990000000016", Quantity: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusRECEIVED, updated.Status)
	assert.Equal(t, 10, updated.Lines[0].Received)

	p, err = f.runner.Products.GetByBarcode("7990000000016")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)
}

// TestCancel_ConcurrenteConRecepcion verifica que cancelar y recibir
// compiten por el bloqueo de la cabecera: gana exactamente una operación
// y una orden RECIBIDA jamás termina pisada como CANCELADA.
func TestCancel_ConcurrenteConRecepcion(t *testing.T) {
	for i := 0; i < 30; i++ {
		f := newFixture(t)
		supplierID := f.seedSupplier(t, "Importadora Yamaha")
		f.seedProduct(t, "7990000000016", "Pastillas de freno", supplierID, 45000, 0, 5)

		order, err := f.uc.CreateOrder(context.Background(), purchasing.CreateOrderInput{
			SupplierID: supplierID,
			Lines: []purchasing.OrderLineInput{
				{Barcode: "7990000000016", Quantity: 3, UnitPrice: decimal.NewFromInt(30000)},
			},
		})
		require.NoError(t, err)

		var wg sync.WaitGroup
		var receiveErr, cancelErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, receiveErr = f.uc.ReceiveGoods(context.Background(), order.ID, []purchasing.ReceiptInput{
				{Barcode: "7990000000016", Quantity: 3},
			})
		}()
		go func() {
			defer wg.Done()
			_, cancelErr = f.uc.Cancel(context.Background(), order.ID)
		}()
		wg.Wait()

		stored, err := f.uc.GetOrder(context.Background(), order.ID)
		require.NoError(t, err)

		switch {
		case receiveErr == nil && cancelErr == nil:
			t.Fatalf("recepción y cancelación no pueden ganar ambas (estado final %s)", stored.Status)
		case receiveErr == nil:
			assert.ErrorIs(t, cancelErr, domain.ErrInvalidState)
			assert.Equal(t, entity.OrderStatusRECEIVED, stored.Status)
			assert.Equal(t, 3, stored.Lines[0].Received)
		default:
			require.NoError(t, cancelErr)
			assert.ErrorIs(t, receiveErr, domain.ErrInvalidState)
			assert.Equal(t, entity.OrderStatusCANCELLED, stored.Status)
			assert.Equal(t, 0, stored.Lines[0].Received)
		}
	}
}
