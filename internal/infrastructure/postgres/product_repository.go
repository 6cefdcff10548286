package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `barcode, internal_code, name, description, brand, model,
		category_id, supplier_id, price, stock, min_stock, location, active,
		last_sale_at, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo. Retorna ErrDuplicate si el código de barras ya existe.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (barcode, internal_code, name, description, brand, model,
			category_id, supplier_id, price, stock, min_stock, location, active,
			last_sale_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		product.Barcode, nullIfEmpty(product.InternalCode), product.Name,
		nullIfEmpty(product.Description), nullIfEmpty(product.Brand), nullIfEmpty(product.Model),
		nullIfEmpty(product.CategoryID), nullIfEmpty(product.SupplierID),
		product.Price, product.Stock, product.MinStock, nullIfEmpty(product.Location),
		product.Active, product.LastSaleAt, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return mapInsertError(err, "create product", domain.ErrDuplicate)
	}
	return nil
}

// GetByBarcode obtiene un producto por código de barras, o nil si no existe.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, barcode))
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// Es el punto de serialización por ítem del ledger.
func (r *ProductRepo) GetForUpdate(barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, barcode))
}

// ExistsByBarcode indica si ya existe un producto con ese código de barras.
func (r *ProductRepo) ExistsByBarcode(barcode string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM products WHERE barcode = $1)`, barcode).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists product: %w", err)
	}
	return exists, nil
}

// Update actualiza los datos del producto excepto stock y last_sale_at
// (esos cambian solo vía UpdateStock, dentro del ledger).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET internal_code = $2, name = $3, description = $4, brand = $5,
			model = $6, category_id = $7, supplier_id = $8, price = $9, min_stock = $10,
			location = $11, active = $12, updated_at = $13
		WHERE barcode = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.Barcode, nullIfEmpty(product.InternalCode), product.Name,
		nullIfEmpty(product.Description), nullIfEmpty(product.Brand), nullIfEmpty(product.Model),
		nullIfEmpty(product.CategoryID), nullIfEmpty(product.SupplierID),
		product.Price, product.MinStock, nullIfEmpty(product.Location),
		product.Active, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock actualiza solo el stock y, si no es nil, la fecha de última venta.
func (r *ProductRepo) UpdateStock(barcode string, stock int, lastSaleAt *time.Time) error {
	var tagErr error
	if lastSaleAt != nil {
		tag, err := r.q.Exec(context.Background(),
			`UPDATE products SET stock = $2, last_sale_at = $3, updated_at = now() WHERE barcode = $1`,
			barcode, stock, *lastSaleAt)
		if err != nil {
			return fmt.Errorf("update stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			tagErr = domain.ErrNotFound
		}
	} else {
		tag, err := r.q.Exec(context.Background(),
			`UPDATE products SET stock = $2, updated_at = now() WHERE barcode = $1`,
			barcode, stock)
		if err != nil {
			return fmt.Errorf("update stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			tagErr = domain.ErrNotFound
		}
	}
	return tagErr
}

// ListActive lista productos activos paginados, ordenados por nombre.
func (r *ProductRepo) ListActive(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE active ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return r.scanMany(rows)
}

// ListLowStock lista productos activos con stock en o bajo su umbral de reorden.
// supplierID vacío no filtra por proveedor.
func (r *ProductRepo) ListLowStock(supplierID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE active AND stock <= min_stock`
	args := []any{}
	if supplierID != "" {
		query += ` AND supplier_id = $1`
		args = append(args, supplierID)
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return r.scanMany(rows)
}

// ListDepleted lista productos activos agotados (stock = 0).
func (r *ProductRepo) ListDepleted() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE active AND stock = 0 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list depleted: %w", err)
	}
	return r.scanMany(rows)
}

// Search busca por nombre, marca, modelo, código de barras o código interno (ILIKE).
func (r *ProductRepo) Search(query string, limit, offset int) ([]*entity.Product, error) {
	sql := `SELECT ` + productColumns + `
		FROM products
		WHERE active AND (name ILIKE $1 OR brand ILIKE $1 OR model ILIKE $1
			OR barcode ILIKE $1 OR internal_code ILIKE $1)
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), sql, "%"+query+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return r.scanMany(rows)
}

// Delete es borrado lógico: marca el producto como inactivo.
func (r *ProductRepo) Delete(barcode string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE products SET active = false, updated_at = now() WHERE barcode = $1`, barcode)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var internalCode, description, brand, model, categoryID, supplierID, location *string
	err := row.Scan(
		&p.Barcode, &internalCode, &p.Name, &description, &brand, &model,
		&categoryID, &supplierID, &p.Price, &p.Stock, &p.MinStock, &location,
		&p.Active, &p.LastSaleAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	p.InternalCode = deref(internalCode)
	p.Description = deref(description)
	p.Brand = deref(brand)
	p.Model = deref(model)
	p.CategoryID = deref(categoryID)
	p.SupplierID = deref(supplierID)
	p.Location = deref(location)
	return &p, nil
}

func (r *ProductRepo) scanMany(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var internalCode, description, brand, model, categoryID, supplierID, location *string
		if err := rows.Scan(
			&p.Barcode, &internalCode, &p.Name, &description, &brand, &model,
			&categoryID, &supplierID, &p.Price, &p.Stock, &p.MinStock, &location,
			&p.Active, &p.LastSaleAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.InternalCode = deref(internalCode)
		p.Description = deref(description)
		p.Brand = deref(brand)
		p.Model = deref(model)
		p.CategoryID = deref(categoryID)
		p.SupplierID = deref(supplierID)
		p.Location = deref(location)
		list = append(list, &p)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
