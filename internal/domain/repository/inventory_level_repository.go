package repository

import (
	"context"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
)

// LowStockRow joins a ledger row with its product, for alerting.
type LowStockRow struct {
	Level   entity.InventoryLevel
	Product entity.Product
}

// InventoryLevelRepository is the ledger store: the (product, warehouse) →
// quantity table. Absence and zero quantity are the same observable state:
// Get and GetForUpdate return a zero-quantity row instead of an error when
// no row exists yet.
type InventoryLevelRepository interface {
	Get(ctx context.Context, productID, warehouseID string) (*entity.InventoryLevel, error)
	// GetForUpdate locks the row (SELECT ... FOR UPDATE) for the duration of
	// the surrounding transaction, materializing it at quantity 0 first when
	// absent so the lock always lands on a real row. Only meaningful on a
	// tx-bound repository.
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.InventoryLevel, error)
	// Upsert creates the row if absent, else overwrites quantity and
	// refreshes updated_at. A negative quantity returns
	// domain.ErrInvalidQuantity.
	Upsert(ctx context.Context, level *entity.InventoryLevel) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryLevel, error)
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.InventoryLevel, error)
	// ListLowStock returns every ledger row whose quantity is strictly below
	// its product's low-stock threshold.
	ListLowStock(ctx context.Context) ([]LowStockRow, error)
	// SumQuantities totals all ledger quantities (the stockValue KPI).
	SumQuantities(ctx context.Context) (int64, error)
	// DeleteAll empties the ledger. Used only by the journal replay tool.
	DeleteAll(ctx context.Context) error
}
