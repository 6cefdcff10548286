package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

// LedgerUseCase es el único punto de mutación de stock del sistema.
// Toda alteración de cantidad pasa por ApplyMovement (o ApplyInTx desde
// ventas y órdenes de compra): se bloquea la fila del producto
// (SELECT FOR UPDATE), se valida el invariante stock >= 0 y se crea el
// movimiento inmutable con snapshots pre/post en la misma transacción.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
	}
}

// MovementInput entrada para registrar un movimiento de inventario.
type MovementInput struct {
	Barcode   string
	Type      entity.MovementType
	Quantity  int // magnitud, siempre positiva
	Reason    string
	Reference string // opcional: VENTA-<id>, OC-<id>, etc.
}

// ApplyMovement registra un movimiento en su propia transacción.
// Tipos que disminuyen stock: SALIDA falla con ErrInsufficientStock si no
// alcanza; AJUSTE_NEGATIVO recorta el delta para no dejar stock negativo.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrBadRequest
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		mov, err = uc.ApplyInTx(movRepo, productRepo,
			input.Barcode, input.Type, input.Quantity, input.Reason, input.Reference, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyInTx ejecuta un movimiento usando los repositorios del caller
// (misma transacción). Es el punto de entrada para ventas y órdenes de
// compra: si retorna error el caller debe hacer rollback.
// Bloquea la fila del producto; en la misma tx un segundo FOR UPDATE
// sobre la misma fila no re-bloquea.
func (uc *LedgerUseCase) ApplyInTx(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	barcode string,
	movType entity.MovementType,
	quantity int,
	reason, reference string,
	now time.Time,
) (*entity.Movement, error) {
	if !movType.Valid() {
		return nil, domain.ErrBadRequest
	}
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := productRepo.GetForUpdate(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	pre := product.Stock
	applied := quantity
	var post int
	if movType.Increases() {
		post = pre + applied
	} else {
		if pre < applied {
			if !movType.Clamps() {
				return nil, &domain.InsufficientStockError{
					Barcode:   product.Barcode,
					Name:      product.Name,
					Available: pre,
					Requested: applied,
				}
			}
			// AJUSTE_NEGATIVO: recortar el delta para no bajar de cero
			applied = pre
		}
		post = pre - applied
	}

	// La fecha de última venta solo la mueve una salida por venta
	var lastSaleAt *time.Time
	if movType == entity.MovementTypeOUT {
		lastSaleAt = &now
	}
	if err := productRepo.UpdateStock(barcode, post, lastSaleAt); err != nil {
		return nil, err
	}

	mov := &entity.Movement{
		ID:        uuid.New().String(),
		Barcode:   barcode,
		Type:      movType,
		Quantity:  applied,
		Reason:    reason,
		Reference: reference,
		PreStock:  pre,
		PostStock: post,
		CreatedAt: now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}
