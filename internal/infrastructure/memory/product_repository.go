// Package memory implementa los repositorios sobre mapas en memoria.
// Respaldan los tests de los casos de uso; el comportamiento observable
// (copias, errores, ordenamientos) imita al adaptador PostgreSQL.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
}

// NewProductRepository construye el repositorio vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{products: make(map[string]*entity.Product)}
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	if p.LastSaleAt != nil {
		t := *p.LastSaleAt
		cp.LastSaleAt = &t
	}
	return &cp
}

// Create guarda el producto. ErrDuplicate si el código ya existe.
func (r *ProductRepo) Create(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.Barcode]; ok {
		return domain.ErrDuplicate
	}
	r.products[product.Barcode] = cloneProduct(product)
	return nil
}

// GetByBarcode devuelve una copia del producto, o nil si no existe.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[barcode]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

// GetForUpdate equivale a GetByBarcode: la serialización la da el TxRunner.
func (r *ProductRepo) GetForUpdate(barcode string) (*entity.Product, error) {
	return r.GetByBarcode(barcode)
}

// ExistsByBarcode indica si el código ya está registrado.
func (r *ProductRepo) ExistsByBarcode(barcode string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.products[barcode]
	return ok, nil
}

// Update reemplaza los datos maestros; stock y last_sale_at no se tocan.
func (r *ProductRepo) Update(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.products[product.Barcode]
	if !ok {
		return domain.ErrNotFound
	}
	next := cloneProduct(product)
	next.Stock = current.Stock
	next.LastSaleAt = current.LastSaleAt
	r.products[product.Barcode] = next
	return nil
}

// UpdateStock actualiza stock y, si no es nil, la fecha de última venta.
func (r *ProductRepo) UpdateStock(barcode string, stock int, lastSaleAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[barcode]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	if lastSaleAt != nil {
		t := *lastSaleAt
		p.LastSaleAt = &t
	}
	return nil
}

// ListActive lista productos activos ordenados por nombre.
func (r *ProductRepo) ListActive(limit, offset int) ([]*entity.Product, error) {
	return r.filter(limit, offset, func(p *entity.Product) bool {
		return p.Active
	}), nil
}

// ListLowStock lista activos con stock <= umbral; supplierID vacío no filtra.
func (r *ProductRepo) ListLowStock(supplierID string) ([]*entity.Product, error) {
	return r.filter(0, 0, func(p *entity.Product) bool {
		if !p.Active || p.Stock > p.MinStock {
			return false
		}
		return supplierID == "" || p.SupplierID == supplierID
	}), nil
}

// ListDepleted lista activos con stock cero.
func (r *ProductRepo) ListDepleted() ([]*entity.Product, error) {
	return r.filter(0, 0, func(p *entity.Product) bool {
		return p.Active && p.Stock == 0
	}), nil
}

// Search busca por nombre, marca, modelo o códigos (case-insensitive).
func (r *ProductRepo) Search(query string, limit, offset int) ([]*entity.Product, error) {
	q := strings.ToLower(query)
	return r.filter(limit, offset, func(p *entity.Product) bool {
		if !p.Active {
			return false
		}
		for _, field := range []string{p.Name, p.Brand, p.Model, p.Barcode, p.InternalCode} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	}), nil
}

// Delete borrado lógico.
func (r *ProductRepo) Delete(barcode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[barcode]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = false
	return nil
}

func (r *ProductRepo) filter(limit, offset int, keep func(*entity.Product) bool) []*entity.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.products {
		if keep(p) {
			list = append(list, cloneProduct(p))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
