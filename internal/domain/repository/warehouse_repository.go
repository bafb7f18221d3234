package repository

import (
	"context"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
)

// WarehouseRepository persistence for warehouses.
// GetByID returns (nil, nil) when the warehouse does not exist.
type WarehouseRepository interface {
	Create(ctx context.Context, w *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	List(ctx context.Context) ([]*entity.Warehouse, error)
	Update(ctx context.Context, w *entity.Warehouse) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}
