package dto

import (
	"time"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
)

// CreateWarehouseRequest body for POST /api/warehouses.
type CreateWarehouseRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location,omitempty"`
	Capacity int64  `json:"capacity" validate:"gt=0"`
	Status   string `json:"status" validate:"omitempty,oneof=active maintenance inactive"`
}

// UpdateWarehouseRequest body for PUT /api/warehouses/:id.
type UpdateWarehouseRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location,omitempty"`
	Capacity int64  `json:"capacity" validate:"gt=0"`
	Status   string `json:"status" validate:"required,oneof=active maintenance inactive"`
}

// WarehouseResponse one warehouse row.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	Capacity  int64     `json:"capacity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WarehouseFromEntity maps a warehouse to its response shape.
func WarehouseFromEntity(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		Capacity:  w.Capacity,
		Status:    w.Status,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
