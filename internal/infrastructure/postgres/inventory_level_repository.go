package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo ledger store over PostgreSQL. Usable with pool or tx.
type InventoryLevelRepo struct {
	q Querier
}

// NewInventoryLevelRepository builds the adapter. Pass a pool or a tx.
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{q: q}
}

const levelColumns = `product_id, warehouse_id, quantity, row_code, shelf_code, updated_at`

// Get reads one ledger row. Absence reads as a zero-quantity row, never an error.
func (r *InventoryLevelRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.InventoryLevel, error) {
	query := `SELECT ` + levelColumns + ` FROM inventory_levels WHERE product_id = $1 AND warehouse_id = $2`
	return r.scanOne(ctx, query, productID, warehouseID)
}

// GetForUpdate reads one ledger row and locks it (SELECT FOR UPDATE) until
// the surrounding transaction ends. An absent row is materialized at
// quantity 0 before locking: FOR UPDATE over zero rows takes no lock, so
// without the insert two concurrent first movements on the same key could
// both read a stale zero.
func (r *InventoryLevelRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.InventoryLevel, error) {
	insert := `
		INSERT INTO inventory_levels (product_id, warehouse_id, quantity)
		VALUES ($1, $2, 0)
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, productID, warehouseID); err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("materialize inventory level: %w", err)
	}
	query := `SELECT ` + levelColumns + ` FROM inventory_levels WHERE product_id = $1 AND warehouse_id = $2 FOR UPDATE`
	return r.scanOne(ctx, query, productID, warehouseID)
}

func (r *InventoryLevelRepo) scanOne(ctx context.Context, query, productID, warehouseID string) (*entity.InventoryLevel, error) {
	var l entity.InventoryLevel
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&l.ProductID, &l.WarehouseID, &l.Quantity, &l.Row, &l.Shelf, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryLevel{ProductID: productID, WarehouseID: warehouseID}, nil
		}
		return nil, fmt.Errorf("get inventory level: %w", err)
	}
	return &l, nil
}

// Upsert creates the row on first movement, else overwrites quantity and
// location hints. Quantity must be non-negative; the table CHECK enforces
// the same bound.
func (r *InventoryLevelRepo) Upsert(ctx context.Context, level *entity.InventoryLevel) error {
	if level.Quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	query := `
		INSERT INTO inventory_levels (product_id, warehouse_id, quantity, row_code, shelf_code, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              row_code = EXCLUDED.row_code,
		              shelf_code = EXCLUDED.shelf_code,
		              updated_at = now()`
	_, err := r.q.Exec(ctx, query, level.ProductID, level.WarehouseID, level.Quantity, level.Row, level.Shelf)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("upsert inventory level: %w", err)
	}
	return nil
}

// ListByProduct returns the ledger rows holding the product, any warehouse.
func (r *InventoryLevelRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryLevel, error) {
	query := `SELECT ` + levelColumns + ` FROM inventory_levels WHERE product_id = $1 ORDER BY updated_at DESC`
	return r.list(ctx, query, productID)
}

// ListByWarehouse returns the ledger rows stored at the warehouse.
func (r *InventoryLevelRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.InventoryLevel, error) {
	query := `SELECT ` + levelColumns + ` FROM inventory_levels WHERE warehouse_id = $1 ORDER BY updated_at DESC`
	return r.list(ctx, query, warehouseID)
}

func (r *InventoryLevelRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryLevel, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLevel
	for rows.Next() {
		var l entity.InventoryLevel
		if err := rows.Scan(&l.ProductID, &l.WarehouseID, &l.Quantity, &l.Row, &l.Shelf, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory level: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListLowStock joins ledger rows to products and returns every row whose
// quantity is strictly below its product's threshold, worst deficit first.
func (r *InventoryLevelRepo) ListLowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	query := `
		SELECT
			l.product_id, l.warehouse_id, l.quantity, l.row_code, l.shelf_code, l.updated_at,
			p.id, p.sku, p.name, p.category, p.barcode, p.supplier_id, p.low_stock_threshold,
			p.created_at, p.updated_at
		FROM inventory_levels l
		JOIN products p ON p.id = l.product_id
		WHERE l.quantity < p.low_stock_threshold
		ORDER BY (p.low_stock_threshold - l.quantity) DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var out []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(
			&row.Level.ProductID, &row.Level.WarehouseID, &row.Level.Quantity,
			&row.Level.Row, &row.Level.Shelf, &row.Level.UpdatedAt,
			&row.Product.ID, &row.Product.SKU, &row.Product.Name, &row.Product.Category,
			&row.Product.Barcode, &row.Product.SupplierID, &row.Product.LowStockThreshold,
			&row.Product.CreatedAt, &row.Product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SumQuantities totals all ledger quantities.
func (r *InventoryLevelRepo) SumQuantities(ctx context.Context) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM inventory_levels`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum inventory quantities: %w", err)
	}
	return total, nil
}

// DeleteAll empties the ledger. Only the journal replay tool calls this,
// inside a transaction together with the rebuilt rows.
func (r *InventoryLevelRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory_levels`); err != nil {
		return fmt.Errorf("delete inventory levels: %w", err)
	}
	return nil
}
