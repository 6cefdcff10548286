package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-motos/internal/application/catalog"
	"github.com/jhoicas/inventario-motos/internal/application/dto"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos (protegido).
type ProductHandler struct {
	uc *catalog.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create registra un producto; genera código de barras y código interno si no vienen.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.CreateProduct(c.Context(), catalog.CreateProductInput{
		Barcode:      in.Barcode,
		InternalCode: in.InternalCode,
		Name:         in.Name,
		Description:  in.Description,
		Brand:        in.Brand,
		Model:        in.Model,
		CategoryID:   in.CategoryID,
		SupplierID:   in.SupplierID,
		Price:        in.Price,
		InitialStock: in.InitialStock,
		MinStock:     in.MinStock,
		Location:     in.Location,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductResponse(out))
}

// GetByBarcode obtiene un producto por código de barras.
func (h *ProductHandler) GetByBarcode(c *fiber.Ctx) error {
	out, err := h.uc.GetProduct(c.Context(), c.Params("barcode"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToProductResponse(out))
}

// List lista productos activos paginados. Con ?q= busca por nombre,
// marca, modelo o código.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	q := c.Query("q")
	var err error
	var out []dto.ProductResponse
	if q != "" {
		list, serr := h.uc.SearchProducts(c.Context(), q, limit, offset)
		out, err = dto.ToProductResponses(list), serr
	} else {
		list, lerr := h.uc.ListProducts(c.Context(), limit, offset)
		out, err = dto.ToProductResponses(list), lerr
	}
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "products": out})
}

// Update actualiza los datos maestros del producto (sin tocar stock).
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.UpdateProduct(c.Context(), c.Params("barcode"), catalog.UpdateProductInput{
		InternalCode: in.InternalCode,
		Name:         in.Name,
		Description:  in.Description,
		Brand:        in.Brand,
		Model:        in.Model,
		CategoryID:   in.CategoryID,
		SupplierID:   in.SupplierID,
		Price:        in.Price,
		MinStock:     in.MinStock,
		Location:     in.Location,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToProductResponse(out))
}

// Delete desactiva el producto (borrado lógico).
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteProduct(c.Context(), c.Params("barcode")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producto desactivado"})
}

// ValidateBarcode verifica formato y dígito de control de un código EAN-13.
func (h *ProductHandler) ValidateBarcode(c *fiber.Ctx) error {
	code := c.Params("barcode")
	return c.JSON(fiber.Map{"barcode": code, "valid": h.uc.ValidateBarcode(code)})
}

// GenerateBarcode genera un código EAN-13 interno nuevo (sin persistir nada).
func (h *ProductHandler) GenerateBarcode(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"barcode": h.uc.GenerateBarcode()})
}

// pageParams lee limit/offset con defaults y tope de 100.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
