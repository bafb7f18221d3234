package entity

import "time"

// InventoryLevel is one ledger row: the current stock of a product at a
// warehouse, keyed by the unique (ProductID, WarehouseID) pair. Rows are
// created lazily on first movement; an absent row reads as quantity 0.
// Quantity is never negative.
type InventoryLevel struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	Row         string // free-text location hint
	Shelf       string
	UpdatedAt   time.Time
}
