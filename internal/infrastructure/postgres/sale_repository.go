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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera y las líneas de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`INSERT INTO sales (id, date, total, status, notes) VALUES ($1, $2, $3, $4, $5)`,
		sale.ID, sale.Date, sale.Total, string(sale.Status), nullIfEmpty(sale.Notes),
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	for i := range sale.Lines {
		l := &sale.Lines[i]
		_, err := r.q.Exec(ctx,
			`INSERT INTO sale_lines (id, sale_id, position, barcode, name, quantity, unit_price, subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			l.ID, sale.ID, i, l.Barcode, l.Name, l.Quantity, l.UnitPrice, l.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("create sale line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la venta con sus líneas en orden, o nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea la fila de la cabecera (SELECT FOR UPDATE): serializa
// cancelaciones concurrentes de la misma venta.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.get(id, true)
}

func (r *SaleRepo) get(id string, forUpdate bool) (*entity.Sale, error) {
	ctx := context.Background()
	query := `SELECT id, date, total, status, notes FROM sales WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s entity.Sale
	var status string
	var notes *string
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Date, &s.Total, &status, &notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.Status = entity.SaleStatus(status)
	s.Notes = deref(notes)

	lines, err := r.loadLines(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Lines = lines
	return &s, nil
}

func (r *SaleRepo) loadLines(ctx context.Context, saleID string) ([]entity.SaleLine, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, sale_id, barcode, name, quantity, unit_price, subtotal
		 FROM sale_lines WHERE sale_id = $1 ORDER BY position`, saleID)
	if err != nil {
		return nil, fmt.Errorf("load sale lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.Barcode, &l.Name, &l.Quantity,
			&l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// UpdateStatus actualiza el estado de la venta.
func (r *SaleRepo) UpdateStatus(id string, status entity.SaleStatus) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ventas con sus líneas, más recientes primero.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx,
		`SELECT id, date, total, status, notes FROM sales
		 ORDER BY date DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	var list []*entity.Sale
	func() {
		defer rows.Close()
		for rows.Next() {
			var s entity.Sale
			var status string
			var notes *string
			if err = rows.Scan(&s.ID, &s.Date, &s.Total, &status, &notes); err != nil {
				err = fmt.Errorf("scan sale: %w", err)
				return
			}
			s.Status = entity.SaleStatus(status)
			s.Notes = deref(notes)
			list = append(list, &s)
		}
		err = rows.Err()
	}()
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		lines, err := r.loadLines(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Lines = lines
	}
	return list, nil
}
