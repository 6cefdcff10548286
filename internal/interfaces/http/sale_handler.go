package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-motos/internal/application/dto"
	"github.com/jhoicas/inventario-motos/internal/application/sales"
)

// SaleHandler maneja las peticiones HTTP de ventas (protegido).
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create registra una venta atómica: o todas las líneas descuentan stock
// o ninguna. 409 con el primer producto sin stock suficiente.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	lines := make([]sales.SaleLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, sales.SaleLineInput{Barcode: l.Barcode, Quantity: l.Quantity})
	}
	sale, err := h.uc.CreateSale(c.Context(), lines, in.Notes)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSaleResponse(sale))
}

// Cancel cancela una venta completada y devuelve el stock vía movimientos
// DEVOLUCION. Cancelar dos veces es 409.
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	sale, err := h.uc.CancelSale(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToSaleResponse(sale))
}

// GetByID obtiene una venta con sus líneas.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToSaleResponse(sale))
}

// List lista ventas paginadas, más recientes primero.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.ListSales(c.Context(), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	out := dto.ToSaleResponses(list)
	return c.JSON(fiber.Map{"total": len(out), "sales": out})
}
