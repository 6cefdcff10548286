package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden de compra.
type OrderStatus string

const (
	OrderStatusPENDING         OrderStatus = "PENDIENTE"
	OrderStatusSENT            OrderStatus = "ENVIADA"
	OrderStatusPartialReceived OrderStatus = "RECIBIDA_PARCIAL"
	OrderStatusRECEIVED        OrderStatus = "RECIBIDA"
	OrderStatusCANCELLED       OrderStatus = "CANCELADA"
)

// Valid indica si el estado es uno de los cinco conocidos.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPENDING, OrderStatusSENT, OrderStatusPartialReceived,
		OrderStatusRECEIVED, OrderStatusCANCELLED:
		return true
	}
	return false
}

// Terminal indica si ningún cambio de estado puede salir de aquí.
// RECIBIDA y CANCELADA son terminales.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusRECEIVED || s == OrderStatusCANCELLED
}

// CanTransitionTo valida una transición administrativa de estado.
// PENDIENTE → ENVIADA → {RECIBIDA_PARCIAL, RECIBIDA}; cualquier estado
// no terminal → CANCELADA. Nada sale de RECIBIDA ni de CANCELADA.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() || !next.Valid() || s == next {
		return false
	}
	if next == OrderStatusCANCELLED {
		return true
	}
	switch s {
	case OrderStatusPENDING:
		return next == OrderStatusSENT
	case OrderStatusSENT:
		return next == OrderStatusPartialReceived || next == OrderStatusRECEIVED
	case OrderStatusPartialReceived:
		return next == OrderStatusRECEIVED
	}
	return false
}

// PurchaseOrder cabecera de una orden de compra a un proveedor. Las
// líneas pertenecen a la orden. La recepción de mercancía es incremental:
// cada recepción acredita stock vía movimientos ENTRADA.
type PurchaseOrder struct {
	ID                string
	SupplierID        string
	OrderDate         time.Time
	EstimatedDelivery *time.Time
	Status            OrderStatus
	Total             decimal.Decimal
	Notes             string
	Lines             []PurchaseOrderLine
}

// PurchaseOrderLine línea de orden de compra. Invariante:
// 0 <= Received <= Requested.
type PurchaseOrderLine struct {
	ID        string
	OrderID   string
	Barcode   string
	Name      string
	Requested int // cantidad solicitada, >= 1
	Received  int // cantidad recibida acumulada
	UnitPrice decimal.Decimal // precio de compra unitario
}

// Complete indica si la línea ya recibió todo lo solicitado.
func (l *PurchaseOrderLine) Complete() bool {
	return l.Received >= l.Requested
}

// ComputeTotal recalcula el total como Σ(precio * cantidad solicitada).
func (o *PurchaseOrder) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Requested))))
	}
	return total
}

// RecomputeStatus deriva el estado tras aplicar recepciones: RECIBIDA si
// todas las líneas están completas; RECIBIDA_PARCIAL si hay algún avance
// sin completar todo; si no hubo avance alguno el estado no cambia.
func (o *PurchaseOrder) RecomputeStatus() {
	allComplete := true
	anyProgress := false
	for i := range o.Lines {
		if !o.Lines[i].Complete() {
			allComplete = false
		}
		if o.Lines[i].Received > 0 {
			anyProgress = true
		}
	}
	switch {
	case allComplete:
		o.Status = OrderStatusRECEIVED
	case anyProgress:
		o.Status = OrderStatusPartialReceived
	}
}
