package postgres

import (
	"context"
	"fmt"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo append-only journal over PostgreSQL. No update or
// delete statements exist here on purpose.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository builds the adapter. Pass a pool or a tx.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, warehouse_id, target_warehouse_id, type, quantity,
	row_code, shelf_code, notes, user_id, created_at`

// Create appends one journal row.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements
			(id, product_id, warehouse_id, target_warehouse_id, type, quantity,
			 row_code, shelf_code, notes, user_id, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.WarehouseID, m.TargetWarehouseID, m.Type, m.Quantity,
		m.Row, m.Shelf, m.Notes, m.UserID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List returns journal rows matching the filter, most recent first.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`
	var args []any
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		query += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	if f.WarehouseID != "" {
		args = append(args, f.WarehouseID)
		query += fmt.Sprintf(" AND (warehouse_id = $%d OR target_warehouse_id = $%d)", len(args), len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return r.query(ctx, query, args...)
}

// ListChronological returns the full journal oldest first, for replay.
// Ties on created_at break on id so the order is stable.
func (r *StockMovementRepo) ListChronological(ctx context.Context) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements ORDER BY created_at ASC, id ASC`
	return r.query(ctx, query)
}

func (r *StockMovementRepo) query(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var target *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.WarehouseID, &target, &m.Type, &m.Quantity,
		&m.Row, &m.Shelf, &m.Notes, &m.UserID, &m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan stock movement: %w", err)
	}
	if target != nil {
		m.TargetWarehouseID = *target
	}
	return &m, nil
}
