package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-motos/internal/domain/entity"
	"github.com/jhoicas/inventario-motos/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, barcode, type, quantity, reason, reference, pre_stock, post_stock, created_at`

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: no hay UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, barcode, type, quantity, reason, reference, pre_stock, post_stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Barcode, string(movement.Type), movement.Quantity,
		nullIfEmpty(movement.Reason), nullIfEmpty(movement.Reference),
		movement.PreStock, movement.PostStock, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID, o nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *MovementRepo) ListByProduct(barcode string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements WHERE barcode = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, barcode, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	return scanMovements(rows)
}

// ListByType lista movimientos de un tipo, más recientes primero.
func (r *MovementRepo) ListByType(movType entity.MovementType, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements WHERE type = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, string(movType), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by type: %w", err)
	}
	return scanMovements(rows)
}

// ListRecent lista los últimos n movimientos globales, más recientes primero.
func (r *MovementRepo) ListRecent(n int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements ORDER BY created_at DESC, id DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, n)
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}
	return scanMovements(rows)
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var movType string
	var reason, reference *string
	err := row.Scan(&m.ID, &m.Barcode, &movType, &m.Quantity, &reason, &reference,
		&m.PreStock, &m.PostStock, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(movType)
	m.Reason = deref(reason)
	m.Reference = deref(reference)
	return &m, nil
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var movType string
		var reason, reference *string
		if err := rows.Scan(&m.ID, &m.Barcode, &movType, &m.Quantity, &reason, &reference,
			&m.PreStock, &m.PostStock, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Type = entity.MovementType(movType)
		m.Reason = deref(reason)
		m.Reference = deref(reference)
		list = append(list, &m)
	}
	return list, rows.Err()
}
