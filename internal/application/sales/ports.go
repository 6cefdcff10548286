package sales

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

// SalesTxRunner ejecuta una función dentro de una transacción que incluye
// los repositorios de inventario y ventas.
type SalesTxRunner interface {
	RunSales(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockLedger integra ventas con el ledger de inventario. ApplyInTx
// ejecuta un movimiento usando los repositorios del caller (misma
// transacción); si retorna error (ej. ErrInsufficientStock) el caller
// debe hacer rollback.
type StockLedger interface {
	ApplyInTx(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		barcode string,
		movType entity.MovementType,
		quantity int,
		reason, reference string,
		now time.Time,
	) (*entity.Movement, error)
}
