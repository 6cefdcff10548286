package entity

import "time"

// MovementType clasifica un movimiento de inventario.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeIN          MovementType = "ENTRADA"         // recepción de mercancía
	MovementTypeOUT         MovementType = "SALIDA"          // venta
	MovementTypeADJUSTPLUS  MovementType = "AJUSTE_POSITIVO" // ajuste manual que aumenta stock
	MovementTypeADJUSTMINUS MovementType = "AJUSTE_NEGATIVO" // ajuste manual que disminuye stock
	MovementTypeRETURN      MovementType = "DEVOLUCION"      // devolución por venta cancelada
)

// Valid indica si el tipo es uno de los cinco conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTPLUS,
		MovementTypeADJUSTMINUS, MovementTypeRETURN:
		return true
	}
	return false
}

// Increases indica si el tipo suma stock (ENTRADA, AJUSTE_POSITIVO, DEVOLUCION).
func (t MovementType) Increases() bool {
	switch t {
	case MovementTypeIN, MovementTypeADJUSTPLUS, MovementTypeRETURN:
		return true
	}
	return false
}

// Clamps indica si el tipo puede recortar el delta para no dejar stock
// negativo. Solo AJUSTE_NEGATIVO: una SALIDA jamás recorta, falla.
func (t MovementType) Clamps() bool {
	return t == MovementTypeADJUSTMINUS
}

// Movement es el registro inmutable que justifica un cambio de stock.
// Una vez creado no se modifica ni se elimina. Invariante:
// PostStock == PreStock + Quantity con el signo del tipo.
type Movement struct {
	ID        string
	Barcode   string // producto afectado
	Type      MovementType
	Quantity  int // magnitud, siempre positiva
	Reason    string
	Reference string // ej. VENTA-<id>, OC-<id>, CANCEL-VENTA-<id>
	PreStock  int    // stock antes del movimiento
	PostStock int    // stock después del movimiento
	CreatedAt time.Time
}
