package inventory

import (
	"context"
	"fmt"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/repository"
)

// ReplayJournal folds movements (in creation order) into ledger rows,
// starting from an all-zero ledger. The journal is the authoritative
// history; the result is exactly the inventory_levels projection.
// A history that would drive any quantity negative is reported as corrupt.
func ReplayJournal(movements []*entity.StockMovement) ([]*entity.InventoryLevel, error) {
	type key struct{ productID, warehouseID string }
	levels := make(map[key]*entity.InventoryLevel)

	bump := func(productID, warehouseID string, delta int64, m *entity.StockMovement) error {
		k := key{productID, warehouseID}
		lvl, ok := levels[k]
		if !ok {
			lvl = &entity.InventoryLevel{ProductID: productID, WarehouseID: warehouseID}
			levels[k] = lvl
		}
		lvl.Quantity += delta
		if lvl.Quantity < 0 {
			return fmt.Errorf("replay movement %s: quantity below zero at (%s, %s): %w",
				m.ID, productID, warehouseID, domain.ErrInvalidQuantity)
		}
		if m.Row != "" {
			lvl.Row = m.Row
		}
		if m.Shelf != "" {
			lvl.Shelf = m.Shelf
		}
		lvl.UpdatedAt = m.CreatedAt
		return nil
	}

	for _, m := range movements {
		switch m.Type {
		case entity.MovementTypeIn, entity.MovementTypeAdjustment:
			if err := bump(m.ProductID, m.WarehouseID, m.Quantity, m); err != nil {
				return nil, err
			}
		case entity.MovementTypeOut:
			if err := bump(m.ProductID, m.WarehouseID, -m.Quantity, m); err != nil {
				return nil, err
			}
		case entity.MovementTypeTransfer:
			if err := bump(m.ProductID, m.WarehouseID, -m.Quantity, m); err != nil {
				return nil, err
			}
			if err := bump(m.ProductID, m.TargetWarehouseID, m.Quantity, m); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("replay movement %s: unknown type %q: %w", m.ID, m.Type, domain.ErrInvalidInput)
		}
	}

	out := make([]*entity.InventoryLevel, 0, len(levels))
	for _, lvl := range levels {
		out = append(out, lvl)
	}
	return out, nil
}

// RebuildLedgerUseCase rewrites inventory_levels from the journal. Runs in
// one transaction so readers never observe a half-rebuilt ledger.
type RebuildLedgerUseCase struct {
	txRunner TxRunner
}

// NewRebuildLedgerUseCase builds the use case.
func NewRebuildLedgerUseCase(txRunner TxRunner) *RebuildLedgerUseCase {
	return &RebuildLedgerUseCase{txRunner: txRunner}
}

// Rebuild replays the full journal into a fresh ledger and reports how many
// rows were written and how many were skipped. Journal rows outlive catalog
// deletions, so the replay can produce levels for products or warehouses
// that no longer exist; those rows have no table to land in (the ledger
// references the catalogs) and are skipped, not written.
func (uc *RebuildLedgerUseCase) Rebuild(ctx context.Context) (written, orphaned int, err error) {
	err = uc.txRunner.Run(ctx, func(
		levelRepo repository.InventoryLevelRepository,
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
	) error {
		movements, err := movementRepo.ListChronological(ctx)
		if err != nil {
			return err
		}
		levels, err := ReplayJournal(movements)
		if err != nil {
			return err
		}

		products, err := productRepo.List(ctx)
		if err != nil {
			return err
		}
		warehouses, err := warehouseRepo.List(ctx)
		if err != nil {
			return err
		}
		productIDs := make(map[string]bool, len(products))
		for _, p := range products {
			productIDs[p.ID] = true
		}
		warehouseIDs := make(map[string]bool, len(warehouses))
		for _, w := range warehouses {
			warehouseIDs[w.ID] = true
		}

		if err := levelRepo.DeleteAll(ctx); err != nil {
			return err
		}
		for _, lvl := range levels {
			if !productIDs[lvl.ProductID] || !warehouseIDs[lvl.WarehouseID] {
				orphaned++
				continue
			}
			if err := levelRepo.Upsert(ctx, lvl); err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return written, orphaned, nil
}
