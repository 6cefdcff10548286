package entity

import "time"

// User usuario de la API.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin, vendedor
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
