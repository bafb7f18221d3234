package repository

import (
	"context"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
)

// MovementFilter optional filters for listing the journal.
type MovementFilter struct {
	ProductID   string
	WarehouseID string
	Type        string
	Limit       int
	Offset      int
}

// StockMovementRepository is the append-only journal. Rows are never
// updated or deleted.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	// List returns movements matching the filter, most recent first.
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, error)
	// ListChronological returns the full journal in creation order,
	// oldest first. Used to replay the journal into the ledger.
	ListChronological(ctx context.Context) ([]*entity.StockMovement, error)
}
