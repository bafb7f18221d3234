package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/inventory"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction. Row locks
// taken via GetForUpdate inside fn are held until commit or rollback, which
// serializes concurrent movements on the same ledger key.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, runs fn with tx-bound repositories and commits,
// or rolls back when fn or the commit fails.
func (r *TxRunner) Run(ctx context.Context, fn func(
	levelRepo repository.InventoryLevelRepository,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	levelRepo := NewInventoryLevelRepository(tx)
	movementRepo := NewStockMovementRepository(tx)
	productRepo := NewProductRepository(tx)
	warehouseRepo := NewWarehouseRepository(tx)

	if err := fn(levelRepo, movementRepo, productRepo, warehouseRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
