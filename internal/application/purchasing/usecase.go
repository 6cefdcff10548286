package purchasing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

// OrderUseCase maneja el ciclo de vida de órdenes de compra:
// PENDIENTE → ENVIADA → {RECIBIDA_PARCIAL, RECIBIDA}; cancelable mientras
// no esté RECIBIDA. La recepción de mercancía acredita stock de forma
// incremental vía movimientos ENTRADA del ledger.
type OrderUseCase struct {
	txRunner     PurchasingTxRunner
	ledger       StockLedger
	orderRepo    repository.PurchaseOrderRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner PurchasingTxRunner,
	ledger StockLedger,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// OrderLineInput línea solicitada de una orden de compra.
type OrderLineInput struct {
	Barcode   string
	Quantity  int
	UnitPrice decimal.Decimal // precio de compra unitario
}

// CreateOrderInput entrada para crear una orden de compra.
type CreateOrderInput struct {
	SupplierID        string
	EstimatedDelivery *time.Time
	Notes             string
	Lines             []OrderLineInput
}

// CreateOrder crea la orden en estado PENDIENTE. Falla con ErrBadRequest
// si no hay líneas, ErrNotFound si el proveedor o algún producto no
// existe, ErrInvalidQuantity si alguna cantidad es < 1.
// Total = Σ(precio de compra × cantidad solicitada). Sin efectos de stock.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (*entity.PurchaseOrder, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrBadRequest
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	orderID := uuid.New().String()
	order := &entity.PurchaseOrder{
		ID:                orderID,
		SupplierID:        in.SupplierID,
		OrderDate:         time.Now(),
		EstimatedDelivery: in.EstimatedDelivery,
		Status:            entity.OrderStatusPENDING,
		Notes:             in.Notes,
	}
	for _, l := range in.Lines {
		if l.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
		if l.UnitPrice.IsNegative() {
			return nil, domain.ErrBadRequest
		}
		product, err := uc.productRepo.GetByBarcode(l.Barcode)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		order.Lines = append(order.Lines, entity.PurchaseOrderLine{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			Barcode:   l.Barcode,
			Name:      product.Name,
			Requested: l.Quantity,
			Received:  0,
			UnitPrice: l.UnitPrice,
		})
	}
	order.Total = order.ComputeTotal()

	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetStatus aplica una transición administrativa (ej. PENDIENTE→ENVIADA)
// sin efectos de stock. Los estados de recepción (RECIBIDA_PARCIAL,
// RECIBIDA) solo se alcanzan vía ReceiveGoods; pedirlos aquí o pedir una
// transición ilegal falla con ErrInvalidState.
func (uc *OrderUseCase) SetStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.PurchaseOrder, error) {
	if !status.Valid() {
		return nil, domain.ErrBadRequest
	}
	if status == entity.OrderStatusPartialReceived || status == entity.OrderStatusRECEIVED {
		return nil, domain.ErrInvalidState
	}
	// Con la fila de la cabecera bloqueada: una recepción concurrente no
	// puede colarse entre la lectura del estado y su escritura.
	var order *entity.PurchaseOrder
	err := uc.txRunner.RunPurchasing(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		var err error
		order, err = orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Status.CanTransitionTo(status) {
			return domain.ErrInvalidState
		}
		if err := orderRepo.UpdateStatus(orderID, status); err != nil {
			return err
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ReceiptInput una recepción parcial: cuánto llegó ahora de un ítem.
type ReceiptInput struct {
	Barcode  string
	Quantity int
}

// ReceiveGoods registra la llegada de mercancía de una orden. Falla con
// ErrInvalidState si la orden ya está RECIBIDA o CANCELADA y con
// ErrBadRequest si alguna recepción referencia un ítem que no es parte de
// la orden o excede lo solicitado. Cada recepción con cantidad > 0
// incrementa lo recibido de su línea y acredita stock con un movimiento
// ENTRADA referenciando OC-<id>. Al final recalcula el estado.
func (uc *OrderUseCase) ReceiveGoods(ctx context.Context, orderID string, receipts []ReceiptInput) (*entity.PurchaseOrder, error) {
	if len(receipts) == 0 {
		return nil, domain.ErrBadRequest
	}
	var order *entity.PurchaseOrder
	err := uc.txRunner.RunPurchasing(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		var err error
		order, err = orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusRECEIVED || order.Status == entity.OrderStatusCANCELLED {
			return domain.ErrInvalidState
		}

		lineByBarcode := make(map[string]*entity.PurchaseOrderLine, len(order.Lines))
		for i := range order.Lines {
			lineByBarcode[order.Lines[i].Barcode] = &order.Lines[i]
		}

		// Validar todas las recepciones antes de acreditar nada. Las
		// recepciones repetidas de un mismo ítem se acumulan: juntas no
		// pueden exceder lo solicitado de la línea.
		pending := make(map[string]int, len(receipts))
		for _, r := range receipts {
			line, ok := lineByBarcode[r.Barcode]
			if !ok {
				return domain.ErrBadRequest
			}
			if r.Quantity < 0 {
				return domain.ErrInvalidQuantity
			}
			pending[r.Barcode] += r.Quantity
			if line.Received+pending[r.Barcode] > line.Requested {
				return domain.ErrBadRequest
			}
		}

		now := time.Now()
		reference := "OC-" + orderID
		reason := fmt.Sprintf("Recepción de orden de compra %s", orderID)
		for _, r := range sortedReceipts(receipts) {
			if r.Quantity == 0 {
				continue
			}
			line := lineByBarcode[r.Barcode]
			if _, err := uc.ledger.ApplyInTx(movRepo, productRepo,
				r.Barcode, entity.MovementTypeIN, r.Quantity,
				reason, reference, now); err != nil {
				return err
			}
			line.Received += r.Quantity
			if err := orderRepo.UpdateLineReceived(line.ID, line.Received); err != nil {
				return err
			}
		}

		prev := order.Status
		order.RecomputeStatus()
		if order.Status != prev {
			return orderRepo.UpdateStatus(orderID, order.Status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel cancela la orden: ilegal solo si ya está RECIBIDA. La mercancía
// ya recibida no se reversa; cancelar solo detiene recepciones futuras.
// Bloquea la cabecera para que una recepción concurrente que complete la
// orden no sea pisada por la cancelación.
func (uc *OrderUseCase) Cancel(ctx context.Context, orderID string) (*entity.PurchaseOrder, error) {
	var order *entity.PurchaseOrder
	err := uc.txRunner.RunPurchasing(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		var err error
		order, err = orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusRECEIVED {
			return domain.ErrInvalidState
		}
		if err := orderRepo.UpdateStatus(orderID, entity.OrderStatusCANCELLED); err != nil {
			return err
		}
		order.Status = entity.OrderStatusCANCELLED
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder devuelve una orden con sus líneas.
func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID string) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// ListOrders lista órdenes, más recientes primero.
func (uc *OrderUseCase) ListOrders(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.orderRepo.List(limit, offset)
}

// ListPending lista órdenes en estado PENDIENTE.
func (uc *OrderUseCase) ListPending(ctx context.Context) ([]*entity.PurchaseOrder, error) {
	return uc.orderRepo.ListByStatus(entity.OrderStatusPENDING)
}

// ListBySupplier lista órdenes de un proveedor, más recientes primero.
func (uc *OrderUseCase) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.PurchaseOrder, error) {
	return uc.orderRepo.ListBySupplier(supplierID)
}

// sortedReceipts copia las recepciones ordenadas por código de barras,
// para adquirir los bloqueos de fila siempre en el mismo orden.
func sortedReceipts(receipts []ReceiptInput) []ReceiptInput {
	out := make([]ReceiptInput, len(receipts))
	copy(out, receipts)
	sort.Slice(out, func(i, j int) bool { return out[i].Barcode < out[j].Barcode })
	return out
}
