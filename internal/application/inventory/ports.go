package inventory

import (
	"context"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/repository"
)

// TxRunner executes fn inside a single database transaction, passing
// repositories bound to that transaction. The ledger writes and the journal
// insert of one movement commit together or not at all. The catalog
// repositories let transactional code read products and warehouses under
// the same snapshot; the recorder ignores them, the rebuild tool does not.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		levelRepo repository.InventoryLevelRepository,
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
	) error) error
}
