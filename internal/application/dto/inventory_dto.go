package dto

import (
	"time"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
)

// CreateMovementRequest body for POST /api/movements.
// Quantity and the transfer target are validated by the movement recorder
// so that business-rule errors surface with their own codes.
type CreateMovementRequest struct {
	ProductID         string `json:"productId" validate:"required"`
	WarehouseID       string `json:"warehouseId" validate:"required"`
	TargetWarehouseID string `json:"targetWarehouseId,omitempty"`
	Type              string `json:"type" validate:"required,oneof=in out transfer adjustment"`
	Quantity          int64  `json:"quantity"`
	Row               string `json:"row,omitempty"`
	Shelf             string `json:"shelf,omitempty"`
	Notes             string `json:"notes,omitempty"`
	UserID            string `json:"userId" validate:"required"`
}

// MovementResponse one journal row.
type MovementResponse struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"productId"`
	WarehouseID       string    `json:"warehouseId"`
	TargetWarehouseID string    `json:"targetWarehouseId,omitempty"`
	Type              string    `json:"type"`
	Quantity          int64     `json:"quantity"`
	Row               string    `json:"row,omitempty"`
	Shelf             string    `json:"shelf,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	UserID            string    `json:"userId"`
	CreatedAt         time.Time `json:"createdAt"`
}

// MovementFromEntity maps a journal row to its response shape.
func MovementFromEntity(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:                m.ID,
		ProductID:         m.ProductID,
		WarehouseID:       m.WarehouseID,
		TargetWarehouseID: m.TargetWarehouseID,
		Type:              m.Type,
		Quantity:          m.Quantity,
		Row:               m.Row,
		Shelf:             m.Shelf,
		Notes:             m.Notes,
		UserID:            m.UserID,
		CreatedAt:         m.CreatedAt,
	}
}

// InventoryLevelResponse one ledger row.
type InventoryLevelResponse struct {
	ProductID   string    `json:"productId"`
	WarehouseID string    `json:"warehouseId"`
	Quantity    int64     `json:"quantity"`
	Row         string    `json:"row,omitempty"`
	Shelf       string    `json:"shelf,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LevelFromEntity maps a ledger row to its response shape.
func LevelFromEntity(l *entity.InventoryLevel) InventoryLevelResponse {
	return InventoryLevelResponse{
		ProductID:   l.ProductID,
		WarehouseID: l.WarehouseID,
		Quantity:    l.Quantity,
		Row:         l.Row,
		Shelf:       l.Shelf,
		UpdatedAt:   l.UpdatedAt,
	}
}

// LowStockAlertResponse a ledger row below its product's threshold.
type LowStockAlertResponse struct {
	Level   InventoryLevelResponse `json:"level"`
	Product ProductResponse        `json:"product"`
}
