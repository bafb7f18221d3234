package entity

import "time"

// Movement types.
const (
	MovementTypeIn         = "in"
	MovementTypeOut        = "out"
	MovementTypeTransfer   = "transfer"   // between warehouses, requires TargetWarehouseID
	MovementTypeAdjustment = "adjustment" // additive correction, same effect as "in"
)

// ValidMovementType reports whether t is one of the four movement types.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeTransfer, MovementTypeAdjustment:
		return true
	}
	return false
}

// StockMovement is one row of the append-only journal. Rows are immutable
// once created and are the authoritative history: replaying them in
// creation order from an all-zero ledger reproduces inventory_levels.
// Quantity is always positive; the type encodes direction.
type StockMovement struct {
	ID                string
	ProductID         string
	WarehouseID       string // source warehouse
	TargetWarehouseID string // destination, set iff Type == transfer
	Type              string
	Quantity          int64 // > 0
	Row               string
	Shelf             string
	Notes             string
	UserID            string // actor
	CreatedAt         time.Time
}
