package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

// SaleUseCase procesa ventas contra el ledger de inventario. Una venta es
// todo-o-nada: si alguna línea no puede cumplirse, la operación completa
// falla sin mutación parcial de stock ni movimientos huérfanos.
type SaleUseCase struct {
	txRunner SalesTxRunner
	ledger   StockLedger
	saleRepo repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner SalesTxRunner, ledger StockLedger, saleRepo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, ledger: ledger, saleRepo: saleRepo}
}

// SaleLineInput línea solicitada de una venta.
type SaleLineInput struct {
	Barcode  string
	Quantity int
}

// CreateSale verifica la factibilidad de todas las líneas con las filas
// de producto bloqueadas (en orden de código para evitar deadlock) y solo
// entonces aplica los descuentos de stock. El precio unitario se captura
// al momento de la venta. La venta queda COMPLETADA, con un movimiento
// SALIDA por línea referenciando VENTA-<id>.
func (uc *SaleUseCase) CreateSale(ctx context.Context, lines []SaleLineInput, notes string) (*entity.Sale, error) {
	if len(lines) == 0 {
		return nil, domain.ErrBadRequest
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
		if l.Barcode == "" {
			return nil, domain.ErrBadRequest
		}
	}

	now := time.Now()
	saleID := uuid.New().String()
	var sale *entity.Sale

	err := uc.txRunner.RunSales(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		// 1) Bloquear todas las filas de producto involucradas, en orden
		// de código de barras: dos ventas concurrentes con ítems comunes
		// se serializan sin riesgo de deadlock.
		products, err := lockProducts(productRepo, barcodesOf(lines))
		if err != nil {
			return err
		}

		// 2) Factibilidad total antes de mutar nada. Las líneas repetidas
		// de un mismo producto consumen el stock proyectado en orden.
		projected := make(map[string]int, len(products))
		for code, p := range products {
			projected[code] = p.Stock
		}
		for _, l := range lines {
			p := products[l.Barcode]
			if projected[l.Barcode] < l.Quantity {
				return &domain.InsufficientStockError{
					Barcode:   p.Barcode,
					Name:      p.Name,
					Available: projected[l.Barcode],
					Requested: l.Quantity,
				}
			}
			projected[l.Barcode] -= l.Quantity
		}

		// 3) Aplicar: un movimiento SALIDA por línea, en el orden dado.
		reference := "VENTA-" + saleID
		saleLines := make([]entity.SaleLine, 0, len(lines))
		for _, l := range lines {
			p := products[l.Barcode]
			if _, err := uc.ledger.ApplyInTx(movRepo, productRepo,
				l.Barcode, entity.MovementTypeOUT, l.Quantity,
				"Venta", reference, now); err != nil {
				return err
			}
			unitPrice := p.Price
			saleLines = append(saleLines, entity.SaleLine{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				Barcode:   l.Barcode,
				Name:      p.Name,
				Quantity:  l.Quantity,
				UnitPrice: unitPrice,
				Subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))),
			})
		}

		sale = &entity.Sale{
			ID:     saleID,
			Date:   now,
			Status: entity.SaleStatusCOMPLETED,
			Notes:  notes,
			Lines:  saleLines,
		}
		sale.Total = sale.ComputeTotal()
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// CancelSale cancela una venta exactamente una vez: falla con
// ErrInvalidState si ya está cancelada. Emite un movimiento DEVOLUCION
// por línea que restaura el stock; la devolución no se revalida contra
// ningún tope, siempre procede.
func (uc *SaleUseCase) CancelSale(ctx context.Context, saleID string) (*entity.Sale, error) {
	var sale *entity.Sale
	err := uc.txRunner.RunSales(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		var err error
		sale, err = saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusCANCELLED {
			return domain.ErrInvalidState
		}

		// Devolver stock línea por línea, en orden de código de barras
		reference := "CANCEL-VENTA-" + saleID
		reason := fmt.Sprintf("Cancelación de venta %s", saleID)
		for _, l := range sortedByBarcode(sale.Lines) {
			if _, err := uc.ledger.ApplyInTx(movRepo, productRepo,
				l.Barcode, entity.MovementTypeRETURN, l.Quantity,
				reason, reference, time.Now()); err != nil {
				return err
			}
		}

		sale.Status = entity.SaleStatusCANCELLED
		return saleRepo.UpdateStatus(saleID, entity.SaleStatusCANCELLED)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// GetSale devuelve una venta con sus líneas.
func (uc *SaleUseCase) GetSale(ctx context.Context, saleID string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// ListSales lista ventas, más recientes primero.
func (uc *SaleUseCase) ListSales(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	return uc.saleRepo.List(limit, offset)
}

// barcodesOf devuelve los códigos únicos de las líneas, ordenados.
func barcodesOf(lines []SaleLineInput) []string {
	seen := make(map[string]struct{}, len(lines))
	codes := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.Barcode]; ok {
			continue
		}
		seen[l.Barcode] = struct{}{}
		codes = append(codes, l.Barcode)
	}
	sort.Strings(codes)
	return codes
}

// lockProducts bloquea las filas de producto en el orden dado y devuelve
// el snapshot bloqueado por código.
func lockProducts(productRepo repository.ProductRepository, codes []string) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product, len(codes))
	for _, code := range codes {
		p, err := productRepo.GetForUpdate(code)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		products[code] = p
	}
	return products, nil
}

// sortedByBarcode copia las líneas ordenadas por código de barras, para
// adquirir los bloqueos de fila siempre en el mismo orden.
func sortedByBarcode(lines []entity.SaleLine) []entity.SaleLine {
	out := make([]entity.SaleLine, len(lines))
	copy(out, lines)
	sort.Slice(out, func(i, j int) bool { return out[i].Barcode < out[j].Barcode })
	return out
}
