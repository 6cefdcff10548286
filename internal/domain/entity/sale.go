package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una venta.
type SaleStatus string

const (
	SaleStatusPENDING   SaleStatus = "PENDIENTE"
	SaleStatusCOMPLETED SaleStatus = "COMPLETADA"
	SaleStatusCANCELLED SaleStatus = "CANCELADA"
)

// Sale cabecera de una venta. Las líneas pertenecen a la venta y no pueden
// reasignarse a otra cabecera. Una venta nunca se elimina: se cancela.
type Sale struct {
	ID       string
	Date     time.Time
	Total    decimal.Decimal // suma de los subtotales de las líneas
	Status   SaleStatus
	Notes    string
	Lines    []SaleLine
}

// SaleLine línea de venta. Captura el precio unitario al momento de la
// venta; cambios posteriores del precio del producto no la afectan.
type SaleLine struct {
	ID        string
	SaleID    string
	Barcode   string
	Name      string // nombre del producto al momento de la venta
	Quantity  int    // >= 1
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal // UnitPrice * Quantity
}

// ComputeTotal recalcula el total como suma de subtotales.
func (s *Sale) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.Subtotal)
	}
	return total
}
