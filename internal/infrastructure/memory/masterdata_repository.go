package memory

import (
	"sync"

	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// CategoryRepo repositorio de categorías en memoria.
type CategoryRepo struct {
	mu         sync.RWMutex
	categories map[string]*entity.Category
}

// NewCategoryRepository construye el repositorio vacío.
func NewCategoryRepository() *CategoryRepo {
	return &CategoryRepo{categories: make(map[string]*entity.Category)}
}

// Create guarda la categoría. ErrDuplicate si el nombre ya existe.
func (r *CategoryRepo) Create(category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Name == category.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

// GetByID devuelve la categoría, o nil si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// GetByName devuelve la categoría por nombre, o nil si no existe.
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

// Update reemplaza los datos de la categoría.
func (r *CategoryRepo) Update(category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

// ListActive lista categorías activas.
func (r *CategoryRepo) ListActive() ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Category
	for _, c := range r.categories {
		if c.Active {
			cp := *c
			list = append(list, &cp)
		}
	}
	return list, nil
}

// Delete borrado lógico.
func (r *CategoryRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Active = false
	return nil
}

// SupplierRepo repositorio de proveedores en memoria.
type SupplierRepo struct {
	mu        sync.RWMutex
	suppliers map[string]*entity.Supplier
}

// NewSupplierRepository construye el repositorio vacío.
func NewSupplierRepository() *SupplierRepo {
	return &SupplierRepo{suppliers: make(map[string]*entity.Supplier)}
}

// Create guarda el proveedor.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *supplier
	r.suppliers[supplier.ID] = &cp
	return nil
}

// GetByID devuelve el proveedor, o nil si no existe.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// Update reemplaza los datos del proveedor.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.suppliers[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *supplier
	r.suppliers[supplier.ID] = &cp
	return nil
}

// ListActive lista proveedores activos.
func (r *SupplierRepo) ListActive() ([]*entity.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Supplier
	for _, s := range r.suppliers {
		if s.Active {
			cp := *s
			list = append(list, &cp)
		}
	}
	return list, nil
}

// Delete borrado lógico.
func (r *SupplierRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.suppliers[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Active = false
	return nil
}

// UserRepo repositorio de usuarios en memoria.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

// NewUserRepository construye el repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{users: make(map[string]*entity.User)}
}

// Create guarda el usuario. ErrEmailAlreadyExists si el email ya existe.
func (r *UserRepo) Create(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

// GetByID devuelve el usuario, o nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// GetByEmail devuelve el usuario por email, o nil si no existe.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
