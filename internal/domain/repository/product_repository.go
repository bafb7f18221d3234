package repository

import (
	"context"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
)

// ProductRepository persistence for the product catalog.
// GetByID returns (nil, nil) when the product does not exist.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
