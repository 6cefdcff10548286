package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-motos/internal/application/inventory"
	"github.com/jhoicas/inventario-motos/internal/application/purchasing"
	"github.com/jhoicas/inventario-motos/internal/application/sales"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

var (
	_ inventory.TxRunner            = (*TxRunner)(nil)
	_ sales.SalesTxRunner           = (*TxRunner)(nil)
	_ purchasing.PurchasingTxRunner = (*TxRunner)(nil)
)

// TxRunner serializa las "transacciones" con un mutex global y pasa los
// repositorios compartidos. No hay rollback: los casos de uso validan la
// factibilidad completa antes de mutar, así que las rutas de error no
// dejan efectos parciales.
type TxRunner struct {
	mu        sync.Mutex
	Movements *MovementRepo
	Products  *ProductRepo
	Sales     *SaleRepo
	Orders    *PurchaseOrderRepo
}

// NewTxRunner construye el runner con repositorios vacíos.
func NewTxRunner() *TxRunner {
	return &TxRunner{
		Movements: NewMovementRepository(),
		Products:  NewProductRepository(),
		Sales:     NewSaleRepository(),
		Orders:    NewPurchaseOrderRepository(),
	}
}

// Run ejecuta fn con los repositorios de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.Movements, r.Products)
}

// RunSales ejecuta fn con los repositorios de inventario y ventas.
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.Movements, r.Products, r.Sales)
}

// RunPurchasing ejecuta fn con los repositorios de inventario y compras.
func (r *TxRunner) RunPurchasing(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.Movements, r.Products, r.Orders)
}
