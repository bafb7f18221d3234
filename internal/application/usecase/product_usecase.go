package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/application/dto"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/event"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/repository"
)

// ProductUseCase CRUD for the product catalog. Stock is never edited here;
// it only changes through recorded movements.
type ProductUseCase struct {
	repo     repository.ProductRepository
	notifier event.Notifier
}

// NewProductUseCase builds the use case.
func NewProductUseCase(repo repository.ProductRepository, notifier event.Notifier) *ProductUseCase {
	return &ProductUseCase{repo: repo, notifier: notifier}
}

// Create creates a product. SKU must be unique.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:                uuid.New().String(),
		SKU:               in.SKU,
		Name:              in.Name,
		Category:          in.Category,
		Barcode:           in.Barcode,
		SupplierID:        in.SupplierID,
		LowStockThreshold: in.LowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.notifier.Publish(event.New(event.TypeProductUpdated, event.EntityData{ID: product.ID}))
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// GetByID returns a product or (nil, nil) when it does not exist.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// List returns the full catalog.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductFromEntity(p))
	}
	return out, nil
}

// Update edits a product. The id is immutable.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	product.SKU = in.SKU
	product.Name = in.Name
	product.Category = in.Category
	product.Barcode = in.Barcode
	product.SupplierID = in.SupplierID
	product.LowStockThreshold = in.LowStockThreshold
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.notifier.Publish(event.New(event.TypeProductUpdated, event.EntityData{ID: product.ID}))
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// Delete removes a product. Ledger rows for the product are removed by the
// FK cascade; journal rows are retained as audit trail.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.notifier.Publish(event.New(event.TypeProductUpdated, event.EntityData{ID: id}))
	return nil
}
