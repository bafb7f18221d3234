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

// WarehouseUseCase CRUD for warehouses. Capacity is informational; the
// ledger never enforces it.
type WarehouseUseCase struct {
	repo     repository.WarehouseRepository
	notifier event.Notifier
}

// NewWarehouseUseCase builds the use case.
func NewWarehouseUseCase(repo repository.WarehouseRepository, notifier event.Notifier) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, notifier: notifier}
}

// Create creates a warehouse. Status defaults to active.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Capacity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.WarehouseStatusActive
	}
	now := time.Now().UTC()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Location:  in.Location,
		Capacity:  in.Capacity,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	uc.notifier.Publish(event.New(event.TypeWarehouseUpdated, event.EntityData{ID: warehouse.ID}))
	resp := dto.WarehouseFromEntity(warehouse)
	return &resp, nil
}

// GetByID returns a warehouse or (nil, nil) when it does not exist.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	resp := dto.WarehouseFromEntity(warehouse)
	return &resp, nil
}

// List returns all warehouses.
func (uc *WarehouseUseCase) List(ctx context.Context) ([]dto.WarehouseResponse, error) {
	warehouses, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, dto.WarehouseFromEntity(w))
	}
	return out, nil
}

// Update edits a warehouse.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	if in.Capacity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	warehouse.Name = in.Name
	warehouse.Location = in.Location
	warehouse.Capacity = in.Capacity
	warehouse.Status = in.Status
	warehouse.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	uc.notifier.Publish(event.New(event.TypeWarehouseUpdated, event.EntityData{ID: warehouse.ID}))
	resp := dto.WarehouseFromEntity(warehouse)
	return &resp, nil
}

// Delete removes a warehouse. Ledger rows at the warehouse are removed by
// the FK cascade; journal rows are retained.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id string) error {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.notifier.Publish(event.New(event.TypeWarehouseUpdated, event.EntityData{ID: id}))
	return nil
}
