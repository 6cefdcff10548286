package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-motos/internal/domain/entity"
)

// SaleLineRequest línea solicitada en POST /api/sales.
type SaleLineRequest struct {
	Barcode  string `json:"barcode" validate:"required,max=50"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	Lines []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
	Notes string            `json:"notes" validate:"omitempty,max=500"`
}

// SaleLineResponse línea de venta confirmada.
type SaleLineResponse struct {
	ID        string          `json:"id"`
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse cabecera de venta con líneas.
type SaleResponse struct {
	ID     string             `json:"id"`
	Date   time.Time          `json:"date"`
	Total  decimal.Decimal    `json:"total"`
	Status string             `json:"status"`
	Notes  string             `json:"notes,omitempty"`
	Lines  []SaleLineResponse `json:"lines"`
}

// ToSaleResponse convierte la entidad al DTO de respuesta.
func ToSaleResponse(s *entity.Sale) SaleResponse {
	lines := make([]SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, SaleLineResponse{
			ID:        l.ID,
			Barcode:   l.Barcode,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return SaleResponse{
		ID:     s.ID,
		Date:   s.Date,
		Total:  s.Total,
		Status: string(s.Status),
		Notes:  s.Notes,
		Lines:  lines,
	}
}

// ToSaleResponses convierte una lista de ventas.
func ToSaleResponses(sales []*entity.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, ToSaleResponse(s))
	}
	return out
}
