package purchasing

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

// PurchasingTxRunner ejecuta una función dentro de una transacción que
// incluye los repositorios de inventario y órdenes de compra.
type PurchasingTxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// StockLedger integra la recepción de mercancía con el ledger de
// inventario (mismo contrato que en ventas: misma transacción, rollback
// del caller ante error).
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
