package dto

import (
	"time"

	"github.com/jhoicas/inventario-motos/internal/domain/entity"
)

// ApplyMovementRequest body para POST /api/inventory/movements.
// Los movimientos de venta y recepción no entran por aquí: los generan
// sus propios flujos. Este endpoint cubre entradas manuales y ajustes.
type ApplyMovementRequest struct {
	Barcode   string `json:"barcode" validate:"required,len=13,numeric"`
	Type      string `json:"type" validate:"required,oneof=ENTRADA AJUSTE_POSITIVO AJUSTE_NEGATIVO"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Reason    string `json:"reason" validate:"omitempty,max=500"`
	Reference string `json:"reference" validate:"omitempty,max=100"`
}

// MovementResponse un movimiento del ledger.
type MovementResponse struct {
	ID        string    `json:"id"`
	Barcode   string    `json:"barcode"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason,omitempty"`
	Reference string    `json:"reference,omitempty"`
	PreStock  int       `json:"pre_stock"`
	PostStock int       `json:"post_stock"`
	CreatedAt time.Time `json:"created_at"`
}

// ToMovementResponse convierte la entidad al DTO de respuesta.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		Barcode:   m.Barcode,
		Type:      string(m.Type),
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		Reference: m.Reference,
		PreStock:  m.PreStock,
		PostStock: m.PostStock,
		CreatedAt: m.CreatedAt,
	}
}

// ToMovementResponses convierte una lista de movimientos.
func ToMovementResponses(movs []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, ToMovementResponse(m))
	}
	return out
}
