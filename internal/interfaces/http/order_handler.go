package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-motos/internal/application/dto"
	"github.com/jhoicas/inventario-motos/internal/application/purchasing"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
)

// OrderHandler maneja las peticiones HTTP de órdenes de compra (protegido).
type OrderHandler struct {
	uc *purchasing.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *purchasing.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create crea una orden en estado PENDIENTE. Sin efectos de stock.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	lines := make([]purchasing.OrderLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, purchasing.OrderLineInput{
			Barcode:   l.Barcode,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	order, err := h.uc.CreateOrder(c.Context(), purchasing.CreateOrderInput{
		SupplierID:        in.SupplierID,
		EstimatedDelivery: in.EstimatedDelivery,
		Notes:             in.Notes,
		Lines:             lines,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToOrderResponse(order))
}

// SetStatus aplica una transición administrativa de estado. Los estados de
// recepción no se asignan por aquí: los deriva la recepción de mercancía.
func (h *OrderHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	order, err := h.uc.SetStatus(c.Context(), c.Params("id"), entity.OrderStatus(in.Status))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}

// Receive registra una recepción (posiblemente parcial) de mercancía.
// Cada unidad recibida acredita stock con un movimiento ENTRADA.
func (h *OrderHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveGoodsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	receipts := make([]purchasing.ReceiptInput, 0, len(in.Receipts))
	for _, r := range in.Receipts {
		receipts = append(receipts, purchasing.ReceiptInput{Barcode: r.Barcode, Quantity: r.Quantity})
	}
	order, err := h.uc.ReceiveGoods(c.Context(), c.Params("id"), receipts)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}

// Cancel cancela la orden. La mercancía ya recibida no se revierte.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}

// GetByID obtiene una orden con sus líneas.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}

// List lista órdenes. Filtros: ?status= o ?supplier_id=.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		list, err := h.uc.ListBySupplier(c.Context(), supplierID)
		if err != nil {
			return domainError(c, err)
		}
		out := dto.ToOrderResponses(list)
		return c.JSON(fiber.Map{"total": len(out), "orders": out})
	}
	if status := c.Query("status"); status != "" {
		if !entity.OrderStatus(status).Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado desconocido"})
		}
		if entity.OrderStatus(status) == entity.OrderStatusPENDING {
			list, err := h.uc.ListPending(c.Context())
			if err != nil {
				return domainError(c, err)
			}
			out := dto.ToOrderResponses(list)
			return c.JSON(fiber.Map{"total": len(out), "orders": out})
		}
	}
	limit, offset := pageParams(c)
	list, err := h.uc.ListOrders(c.Context(), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	out := dto.ToOrderResponses(list)
	return c.JSON(fiber.Map{"total": len(out), "orders": out})
}

// Suggest genera un borrador de orden de reposición para un proveedor a
// partir de sus productos bajo el umbral de reorden. No persiste nada.
func (h *OrderHandler) Suggest(c *fiber.Ctx) error {
	suggestion, err := h.uc.SuggestOrder(c.Context(), c.Params("supplierId"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToOrderSuggestionResponse(suggestion))
}
