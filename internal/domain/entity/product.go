package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario. La clave primaria es el
// código de barras EAN-13 (con dígito de control); el código interno es
// secundario y opcional. Stock solo se modifica a través del ledger de
// movimientos, nunca directamente.
type Product struct {
	Barcode      string // código de barras EAN-13, identidad primaria
	InternalCode string // código interno secundario (ej. PRD-12345-678)
	Name         string
	Description  string
	Brand        string
	Model        string // modelo de moto compatible
	CategoryID   string
	SupplierID   string
	Price        decimal.Decimal // precio de venta
	Stock        int             // stock actual, nunca negativo
	MinStock     int             // umbral de reorden
	Location     string
	Active       bool // borrado lógico: nunca se elimina físicamente
	LastSaleAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock indica si el producto está en o bajo su umbral de reorden.
// Se calcula siempre sobre los campos, nunca se materializa.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// IsDepleted indica si el producto está agotado.
func (p *Product) IsDepleted() bool {
	return p.Stock == 0
}
