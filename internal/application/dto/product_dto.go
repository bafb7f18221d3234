package dto

import (
	"time"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
)

// CreateProductRequest body for POST /api/products.
type CreateProductRequest struct {
	SKU               string `json:"sku" validate:"required"`
	Name              string `json:"name" validate:"required"`
	Category          string `json:"category,omitempty"`
	Barcode           string `json:"barcode,omitempty"`
	SupplierID        string `json:"supplierId,omitempty"`
	LowStockThreshold int64  `json:"lowStockThreshold" validate:"min=0"`
}

// UpdateProductRequest body for PUT /api/products/:id. The id is immutable.
type UpdateProductRequest struct {
	SKU               string `json:"sku" validate:"required"`
	Name              string `json:"name" validate:"required"`
	Category          string `json:"category,omitempty"`
	Barcode           string `json:"barcode,omitempty"`
	SupplierID        string `json:"supplierId,omitempty"`
	LowStockThreshold int64  `json:"lowStockThreshold" validate:"min=0"`
}

// ProductResponse one catalog row.
type ProductResponse struct {
	ID                string    `json:"id"`
	SKU               string    `json:"sku"`
	Name              string    `json:"name"`
	Category          string    `json:"category,omitempty"`
	Barcode           string    `json:"barcode,omitempty"`
	SupplierID        string    `json:"supplierId,omitempty"`
	LowStockThreshold int64     `json:"lowStockThreshold"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ProductFromEntity maps a product to its response shape.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Category:          p.Category,
		Barcode:           p.Barcode,
		SupplierID:        p.SupplierID,
		LowStockThreshold: p.LowStockThreshold,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
