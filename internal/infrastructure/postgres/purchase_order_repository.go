package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la cabecera y las líneas de la orden.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`INSERT INTO purchase_orders (id, supplier_id, order_date, estimated_delivery, status, total, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		order.ID, order.SupplierID, order.OrderDate, order.EstimatedDelivery,
		string(order.Status), order.Total, nullIfEmpty(order.Notes),
	)
	if err != nil {
		return fmt.Errorf("create purchase order: %w", err)
	}
	for i := range order.Lines {
		l := &order.Lines[i]
		_, err := r.q.Exec(ctx,
			`INSERT INTO purchase_order_lines (id, order_id, position, barcode, name, requested, received, unit_price)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			l.ID, order.ID, i, l.Barcode, l.Name, l.Requested, l.Received, l.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("create purchase order line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la orden con sus líneas en orden, o nil si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea la fila de la cabecera (SELECT FOR UPDATE): serializa
// recepciones concurrentes de la misma orden.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, true)
}

func (r *PurchaseOrderRepo) get(id string, forUpdate bool) (*entity.PurchaseOrder, error) {
	ctx := context.Background()
	query := `SELECT id, supplier_id, order_date, estimated_delivery, status, total, notes
		FROM purchase_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	lines, err := r.loadLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return o, nil
}

func (r *PurchaseOrderRepo) loadLines(ctx context.Context, orderID string) ([]entity.PurchaseOrderLine, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, order_id, barcode, name, requested, received, unit_price
		 FROM purchase_order_lines WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.Barcode, &l.Name, &l.Requested,
			&l.Received, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// UpdateStatus actualiza el estado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(id string, status entity.OrderStatus) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLineReceived actualiza la cantidad recibida acumulada de una línea.
func (r *PurchaseOrderRepo) UpdateLineReceived(lineID string, received int) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE purchase_order_lines SET received = $2 WHERE id = $1`, lineID, received)
	if err != nil {
		return fmt.Errorf("update line received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes con sus líneas, más recientes primero.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT id, supplier_id, order_date, estimated_delivery, status, total, notes
		FROM purchase_orders ORDER BY order_date DESC, id DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByStatus lista órdenes en un estado, más recientes primero.
func (r *PurchaseOrderRepo) ListByStatus(status entity.OrderStatus) ([]*entity.PurchaseOrder, error) {
	query := `SELECT id, supplier_id, order_date, estimated_delivery, status, total, notes
		FROM purchase_orders WHERE status = $1 ORDER BY order_date DESC, id DESC`
	return r.list(query, string(status))
}

// ListBySupplier lista órdenes de un proveedor, más recientes primero.
func (r *PurchaseOrderRepo) ListBySupplier(supplierID string) ([]*entity.PurchaseOrder, error) {
	query := `SELECT id, supplier_id, order_date, estimated_delivery, status, total, notes
		FROM purchase_orders WHERE supplier_id = $1 ORDER BY order_date DESC, id DESC`
	return r.list(query, supplierID)
}

func (r *PurchaseOrderRepo) list(query string, args ...any) ([]*entity.PurchaseOrder, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	var list []*entity.PurchaseOrder
	func() {
		defer rows.Close()
		for rows.Next() {
			o, scanErr := scanOrder(rows)
			if scanErr != nil {
				err = fmt.Errorf("scan purchase order: %w", scanErr)
				return
			}
			list = append(list, o)
		}
		err = rows.Err()
	}()
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		lines, err := r.loadLines(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Lines = lines
	}
	return list, nil
}

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var status string
	var notes *string
	err := row.Scan(&o.ID, &o.SupplierID, &o.OrderDate, &o.EstimatedDelivery,
		&status, &o.Total, &notes)
	if err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	o.Notes = deref(notes)
	return &o, nil
}
