package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-motos/internal/application/purchasing"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
)

// OrderLineRequest línea solicitada en POST /api/purchase-orders.
type OrderLineRequest struct {
	Barcode   string          `json:"barcode" validate:"required,max=50"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest body para POST /api/purchase-orders.
type CreateOrderRequest struct {
	SupplierID        string             `json:"supplier_id" validate:"required,uuid4"`
	EstimatedDelivery *time.Time         `json:"estimated_delivery,omitempty"`
	Notes             string             `json:"notes" validate:"omitempty,max=500"`
	Lines             []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SetOrderStatusRequest body para PUT /api/purchase-orders/:id/status.
type SetOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDIENTE ENVIADA CANCELADA"`
}

// ReceiptRequest una recepción parcial en POST /api/purchase-orders/:id/receive.
type ReceiptRequest struct {
	Barcode  string `json:"barcode" validate:"required,max=50"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

// ReceiveGoodsRequest body para POST /api/purchase-orders/:id/receive.
type ReceiveGoodsRequest struct {
	Receipts []ReceiptRequest `json:"receipts" validate:"required,min=1,dive"`
}

// OrderLineResponse línea de orden con avance de recepción.
type OrderLineResponse struct {
	ID        string          `json:"id"`
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	Requested int             `json:"requested"`
	Received  int             `json:"received"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse cabecera de orden de compra con líneas.
type OrderResponse struct {
	ID                string              `json:"id"`
	SupplierID        string              `json:"supplier_id"`
	OrderDate         time.Time           `json:"order_date"`
	EstimatedDelivery *time.Time          `json:"estimated_delivery,omitempty"`
	Status            string              `json:"status"`
	Total             decimal.Decimal     `json:"total"`
	Notes             string              `json:"notes,omitempty"`
	Lines             []OrderLineResponse `json:"lines"`
}

// ToOrderResponse convierte la entidad al DTO de respuesta.
func ToOrderResponse(o *entity.PurchaseOrder) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineResponse{
			ID:        l.ID,
			Barcode:   l.Barcode,
			Name:      l.Name,
			Requested: l.Requested,
			Received:  l.Received,
			UnitPrice: l.UnitPrice,
		})
	}
	return OrderResponse{
		ID:                o.ID,
		SupplierID:        o.SupplierID,
		OrderDate:         o.OrderDate,
		EstimatedDelivery: o.EstimatedDelivery,
		Status:            string(o.Status),
		Total:             o.Total,
		Notes:             o.Notes,
		Lines:             lines,
	}
}

// ToOrderResponses convierte una lista de órdenes.
func ToOrderResponses(orders []*entity.PurchaseOrder) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out
}

// SuggestionLineResponse línea del borrador de reposición.
type SuggestionLineResponse struct {
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"min_stock"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderSuggestionResponse borrador de orden propuesto por el asesor de
// reposición; el cliente puede someterlo a POST /api/purchase-orders.
type OrderSuggestionResponse struct {
	SupplierID   string                   `json:"supplier_id"`
	SupplierName string                   `json:"supplier_name"`
	Lines        []SuggestionLineResponse `json:"lines"`
}

// ToOrderSuggestionResponse convierte el borrador al DTO de respuesta.
func ToOrderSuggestionResponse(s *purchasing.OrderSuggestion) OrderSuggestionResponse {
	lines := make([]SuggestionLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, SuggestionLineResponse{
			Barcode:   l.Barcode,
			Name:      l.Name,
			Stock:     l.Stock,
			MinStock:  l.MinStock,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return OrderSuggestionResponse{
		SupplierID:   s.SupplierID,
		SupplierName: s.SupplierName,
		Lines:        lines,
	}
}
