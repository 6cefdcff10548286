package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-motos/internal/application/catalog"
	"github.com/jhoicas/inventario-motos/internal/application/dto"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
)

// MasterDataHandler maneja categorías y proveedores (protegido).
type MasterDataHandler struct {
	uc *catalog.MasterDataUseCase
}

// NewMasterDataHandler construye el handler.
func NewMasterDataHandler(uc *catalog.MasterDataUseCase) *MasterDataHandler {
	return &MasterDataHandler{uc: uc}
}

// CreateCategory crea una categoría. Nombre duplicado es 409.
func (h *MasterDataHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	cat, err := h.uc.CreateCategory(c.Context(), in.Name, in.Description)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCategoryResponse(cat))
}

// UpdateCategory actualiza nombre y descripción.
func (h *MasterDataHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	cat, err := h.uc.UpdateCategory(c.Context(), c.Params("id"), in.Name, in.Description)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToCategoryResponse(cat))
}

// ListCategories lista categorías activas.
func (h *MasterDataHandler) ListCategories(c *fiber.Ctx) error {
	list, err := h.uc.ListCategories(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, cat := range list {
		out = append(out, dto.ToCategoryResponse(cat))
	}
	return c.JSON(fiber.Map{"total": len(out), "categories": out})
}

// DeleteCategory desactiva una categoría (borrado lógico).
func (h *MasterDataHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.uc.DeleteCategory(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "categoría desactivada"})
}

// CreateSupplier crea un proveedor.
func (h *MasterDataHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	s, err := h.uc.CreateSupplier(c.Context(), entity.Supplier{
		Name:    in.Name,
		Contact: in.Contact,
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSupplierResponse(s))
}

// UpdateSupplier actualiza los datos del proveedor.
func (h *MasterDataHandler) UpdateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	s, err := h.uc.UpdateSupplier(c.Context(), c.Params("id"), entity.Supplier{
		Name:    in.Name,
		Contact: in.Contact,
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToSupplierResponse(s))
}

// GetSupplier obtiene un proveedor por ID.
func (h *MasterDataHandler) GetSupplier(c *fiber.Ctx) error {
	s, err := h.uc.GetSupplier(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToSupplierResponse(s))
}

// ListSuppliers lista proveedores activos.
func (h *MasterDataHandler) ListSuppliers(c *fiber.Ctx) error {
	list, err := h.uc.ListSuppliers(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToSupplierResponse(s))
	}
	return c.JSON(fiber.Map{"total": len(out), "suppliers": out})
}

// DeleteSupplier desactiva un proveedor (borrado lógico).
func (h *MasterDataHandler) DeleteSupplier(c *fiber.Ctx) error {
	if err := h.uc.DeleteSupplier(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "proveedor desactivado"})
}
