package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-motos/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Barcode      string          `json:"barcode" validate:"omitempty,max=50"`
	InternalCode string          `json:"internal_code" validate:"omitempty,max=50"`
	Name         string          `json:"name" validate:"required,max=200"`
	Description  string          `json:"description" validate:"omitempty,max=1000"`
	Brand        string          `json:"brand" validate:"omitempty,max=100"`
	Model        string          `json:"model" validate:"omitempty,max=200"`
	CategoryID   string          `json:"category_id" validate:"omitempty,uuid4"`
	SupplierID   string          `json:"supplier_id" validate:"omitempty,uuid4"`
	Price        decimal.Decimal `json:"price"`
	InitialStock int             `json:"initial_stock" validate:"omitempty,min=0"`
	MinStock     int             `json:"min_stock" validate:"omitempty,min=0"`
	Location     string          `json:"location" validate:"omitempty,max=100"`
}

// UpdateProductRequest body para PUT /api/products/:barcode.
type UpdateProductRequest struct {
	InternalCode string          `json:"internal_code" validate:"omitempty,max=50"`
	Name         string          `json:"name" validate:"required,max=200"`
	Description  string          `json:"description" validate:"omitempty,max=1000"`
	Brand        string          `json:"brand" validate:"omitempty,max=100"`
	Model        string          `json:"model" validate:"omitempty,max=200"`
	CategoryID   string          `json:"category_id" validate:"omitempty,uuid4"`
	SupplierID   string          `json:"supplier_id" validate:"omitempty,uuid4"`
	Price        decimal.Decimal `json:"price"`
	MinStock     int             `json:"min_stock" validate:"omitempty,min=0"`
	Location     string          `json:"location" validate:"omitempty,max=100"`
}

// ProductResponse un producto del catálogo con sus flags derivados.
type ProductResponse struct {
	Barcode      string          `json:"barcode"`
	InternalCode string          `json:"internal_code,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Brand        string          `json:"brand,omitempty"`
	Model        string          `json:"model,omitempty"`
	CategoryID   string          `json:"category_id,omitempty"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	MinStock     int             `json:"min_stock"`
	Location     string          `json:"location,omitempty"`
	Active       bool            `json:"active"`
	LowStock     bool            `json:"low_stock"`
	Depleted     bool            `json:"depleted"`
	LastSaleAt   *time.Time      `json:"last_sale_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToProductResponse convierte la entidad al DTO de respuesta. LowStock y
// Depleted se calculan aquí, nunca se almacenan.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		Barcode:      p.Barcode,
		InternalCode: p.InternalCode,
		Name:         p.Name,
		Description:  p.Description,
		Brand:        p.Brand,
		Model:        p.Model,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
		Price:        p.Price,
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		Location:     p.Location,
		Active:       p.Active,
		LowStock:     p.IsLowStock(),
		Depleted:     p.IsDepleted(),
		LastSaleAt:   p.LastSaleAt,
		CreatedAt:    p.CreatedAt,
	}
}

// ToProductResponses convierte una lista de productos.
func ToProductResponses(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}
