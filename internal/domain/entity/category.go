package entity

import "time"

// Category categoría de producto (dato maestro plano, borrado lógico).
type Category struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
