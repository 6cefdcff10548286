package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

// MasterDataUseCase CRUD plano de categorías y proveedores (sin lógica
// transaccional; registros maestros con borrado lógico).
type MasterDataUseCase struct {
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

// NewMasterDataUseCase construye el caso de uso.
func NewMasterDataUseCase(categoryRepo repository.CategoryRepository, supplierRepo repository.SupplierRepository) *MasterDataUseCase {
	return &MasterDataUseCase{categoryRepo: categoryRepo, supplierRepo: supplierRepo}
}

// CreateCategory crea una categoría; el nombre es único.
func (uc *MasterDataUseCase) CreateCategory(ctx context.Context, name, description string) (*entity.Category, error) {
	if name == "" {
		return nil, domain.ErrBadRequest
	}
	existing, err := uc.categoryRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory actualiza nombre y descripción, verificando que el nuevo
// nombre no choque con otra categoría.
func (uc *MasterDataUseCase) UpdateCategory(ctx context.Context, id, name, description string) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if name == "" {
		return nil, domain.ErrBadRequest
	}
	other, err := uc.categoryRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}
	category.Name = name
	category.Description = description
	category.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lista categorías activas.
func (uc *MasterDataUseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.ListActive()
}

// DeleteCategory borrado lógico.
func (uc *MasterDataUseCase) DeleteCategory(ctx context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.categoryRepo.Delete(id)
}

// CreateSupplier crea un proveedor.
func (uc *MasterDataUseCase) CreateSupplier(ctx context.Context, in entity.Supplier) (*entity.Supplier, error) {
	if in.Name == "" {
		return nil, domain.ErrBadRequest
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Contact:   in.Contact,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// UpdateSupplier actualiza los datos de contacto de un proveedor.
func (uc *MasterDataUseCase) UpdateSupplier(ctx context.Context, id string, in entity.Supplier) (*entity.Supplier, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrBadRequest
	}
	supplier.Name = in.Name
	supplier.Contact = in.Contact
	supplier.Phone = in.Phone
	supplier.Email = in.Email
	supplier.Address = in.Address
	supplier.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetSupplier devuelve un proveedor por id.
func (uc *MasterDataUseCase) GetSupplier(ctx context.Context, id string) (*entity.Supplier, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return supplier, nil
}

// ListSuppliers lista proveedores activos.
func (uc *MasterDataUseCase) ListSuppliers(ctx context.Context) ([]*entity.Supplier, error) {
	return uc.supplierRepo.ListActive()
}

// DeleteSupplier borrado lógico.
func (uc *MasterDataUseCase) DeleteSupplier(ctx context.Context, id string) error {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	return uc.supplierRepo.Delete(id)
}
