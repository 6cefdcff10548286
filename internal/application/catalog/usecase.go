package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-motos/internal/application/inventory"
	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/barcode"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

// ProductUseCase registra y mantiene productos del catálogo. El stock
// inicial de un producto nuevo se acredita con un movimiento ENTRADA del
// ledger, en la misma transacción que la creación: el producto nace con
// stock cero y todo lo demás queda documentado.
type ProductUseCase struct {
	txRunner     inventory.TxRunner
	ledger       *inventory.LedgerUseCase
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.LedgerUseCase,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
	}
}

// CreateProductInput entrada para registrar un producto.
type CreateProductInput struct {
	Barcode      string // vacío: se genera un EAN-13 interno
	InternalCode string // vacío: se genera PRD-#####-###
	Name         string
	Description  string
	Brand        string
	Model        string
	CategoryID   string
	SupplierID   string
	Price        decimal.Decimal
	InitialStock int
	MinStock     int
	Location     string
}

// CreateProduct registra un producto. Si no trae código de barras se
// genera uno interno, reintentando ante la improbable colisión. El stock
// inicial (si lo hay) entra como movimiento ENTRADA "Stock inicial".
func (uc *ProductUseCase) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	if in.Name == "" || in.Price.IsNegative() || in.InitialStock < 0 || in.MinStock < 0 {
		return nil, domain.ErrBadRequest
	}

	code := in.Barcode
	if code == "" {
		for {
			code = barcode.NewItemCode()
			exists, err := uc.productRepo.ExistsByBarcode(code)
			if err != nil {
				return nil, err
			}
			if !exists {
				break
			}
		}
	} else {
		exists, err := uc.productRepo.ExistsByBarcode(code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
	}

	if in.CategoryID != "" {
		cat, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
	}
	if in.SupplierID != "" {
		sup, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return nil, err
		}
		if sup == nil {
			return nil, domain.ErrNotFound
		}
	}

	internalCode := in.InternalCode
	if internalCode == "" {
		internalCode = barcode.NewInternalCode("PRD")
	}

	now := time.Now()
	product := &entity.Product{
		Barcode:      code,
		InternalCode: internalCode,
		Name:         in.Name,
		Description:  in.Description,
		Brand:        in.Brand,
		Model:        in.Model,
		CategoryID:   in.CategoryID,
		SupplierID:   in.SupplierID,
		Price:        in.Price,
		Stock:        0,
		MinStock:     in.MinStock,
		Location:     in.Location,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if in.InitialStock > 0 {
			mov, err := uc.ledger.ApplyInTx(movRepo, productRepo,
				code, entity.MovementTypeIN, in.InitialStock,
				"Stock inicial al crear producto", "", now)
			if err != nil {
				return err
			}
			product.Stock = mov.PostStock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductInput campos editables de un producto. El stock no se
// toca aquí: solo el ledger muta cantidades.
type UpdateProductInput struct {
	InternalCode string
	Name         string
	Description  string
	Brand        string
	Model        string
	CategoryID   string
	SupplierID   string
	Price        decimal.Decimal
	MinStock     int
	Location     string
}

// UpdateProduct actualiza los datos maestros de un producto.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, barcodeCode string, in UpdateProductInput) (*entity.Product, error) {
	product, err := uc.productRepo.GetByBarcode(barcodeCode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" || in.Price.IsNegative() || in.MinStock < 0 {
		return nil, domain.ErrBadRequest
	}

	product.InternalCode = in.InternalCode
	product.Name = in.Name
	product.Description = in.Description
	product.Brand = in.Brand
	product.Model = in.Model
	product.CategoryID = in.CategoryID
	product.SupplierID = in.SupplierID
	product.Price = in.Price
	product.MinStock = in.MinStock
	product.Location = in.Location
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct devuelve un producto por código de barras.
func (uc *ProductUseCase) GetProduct(ctx context.Context, barcodeCode string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByBarcode(barcodeCode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListProducts lista productos activos.
func (uc *ProductUseCase) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.ListActive(limit, offset)
}

// SearchProducts busca por nombre, marca, modelo o código interno.
func (uc *ProductUseCase) SearchProducts(ctx context.Context, query string, limit, offset int) ([]*entity.Product, error) {
	if query == "" {
		return uc.productRepo.ListActive(limit, offset)
	}
	return uc.productRepo.Search(query, limit, offset)
}

// DeleteProduct hace borrado lógico (active=false). El historial de
// movimientos del producto se conserva.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, barcodeCode string) error {
	product, err := uc.productRepo.GetByBarcode(barcodeCode)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(barcodeCode)
}

// ValidateBarcode expone la verificación del dígito de control para la
// capa HTTP (escaneo en el mostrador).
func (uc *ProductUseCase) ValidateBarcode(code string) bool {
	return barcode.ValidateCode(code)
}

// GenerateBarcode expone la generación de códigos para la capa HTTP.
func (uc *ProductUseCase) GenerateBarcode() string {
	return barcode.NewItemCode()
}
