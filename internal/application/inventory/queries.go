package inventory

import (
	"context"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/repository"
)

// QueryUseCase read-only views over the ledger and the journal.
type QueryUseCase struct {
	levelRepo    repository.InventoryLevelRepository
	movementRepo repository.StockMovementRepository
}

// NewQueryUseCase builds the use case with pool-bound repositories.
func NewQueryUseCase(levelRepo repository.InventoryLevelRepository, movementRepo repository.StockMovementRepository) *QueryUseCase {
	return &QueryUseCase{levelRepo: levelRepo, movementRepo: movementRepo}
}

// LevelsByProduct returns the ledger rows holding the given product.
func (uc *QueryUseCase) LevelsByProduct(ctx context.Context, productID string) ([]*entity.InventoryLevel, error) {
	return uc.levelRepo.ListByProduct(ctx, productID)
}

// LevelsByWarehouse returns the ledger rows stored at the given warehouse.
func (uc *QueryUseCase) LevelsByWarehouse(ctx context.Context, warehouseID string) ([]*entity.InventoryLevel, error) {
	return uc.levelRepo.ListByWarehouse(ctx, warehouseID)
}

// Movements returns journal rows matching the filter, most recent first.
func (uc *QueryUseCase) Movements(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	return uc.movementRepo.List(ctx, f)
}
