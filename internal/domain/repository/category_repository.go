package repository

import "github.com/jhoicas/inventario-motos/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	ListActive() ([]*entity.Category, error)
	// Delete es borrado lógico (active=false).
	Delete(id string) error
}
