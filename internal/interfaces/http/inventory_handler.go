package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-motos/internal/application/dto"
	"github.com/jhoicas/inventario-motos/internal/application/inventory"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del ledger de inventario (protegido).
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ApplyMovement registra una entrada manual o un ajuste. Ventas y
// recepciones de órdenes no entran por aquí.
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	mov, err := h.uc.ApplyMovement(c.Context(), inventory.MovementInput{
		Barcode:   in.Barcode,
		Type:      entity.MovementType(in.Type),
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// Snapshot devuelve el producto con su stock actual y flags derivados.
func (h *InventoryHandler) Snapshot(c *fiber.Ctx) error {
	p, err := h.uc.Snapshot(c.Context(), c.Params("barcode"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToProductResponse(p))
}

// History lista los movimientos de un producto, más recientes primero.
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	movs, err := h.uc.History(c.Context(), c.Params("barcode"), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	out := dto.ToMovementResponses(movs)
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// Recent lista los últimos movimientos globales (query n, default 10).
func (h *InventoryHandler) Recent(c *fiber.Ctx) error {
	n := c.QueryInt("n", 10)
	movs, err := h.uc.Recent(c.Context(), n)
	if err != nil {
		return domainError(c, err)
	}
	out := dto.ToMovementResponses(movs)
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// LowStock lista productos en o bajo su umbral de reorden.
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.uc.LowStock(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	out := dto.ToProductResponses(list)
	return c.JSON(fiber.Map{"total": len(out), "products": out})
}

// Depleted lista productos agotados.
func (h *InventoryHandler) Depleted(c *fiber.Ctx) error {
	list, err := h.uc.Depleted(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	out := dto.ToProductResponses(list)
	return c.JSON(fiber.Map{"total": len(out), "products": out})
}
