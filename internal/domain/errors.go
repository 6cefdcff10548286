package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidState       = errors.New("operación ilegal para el estado actual")
	ErrBadRequest         = errors.New("solicitud inválida")
	ErrNoSuggestion       = errors.New("no hay productos con stock bajo para sugerir")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

// InsufficientStockError lleva el contexto necesario para que el caller
// construya un mensaje útil: producto, stock disponible y cantidad pedida.
// errors.Is(err, ErrInsufficientStock) devuelve true para este error.
type InsufficientStockError struct {
	Barcode   string
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q (%s): disponible %d, solicitado %d",
		e.Name, e.Barcode, e.Available, e.Requested)
}

// Is permite el match con el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
