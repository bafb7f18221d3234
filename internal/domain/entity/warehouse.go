package entity

import "time"

// Warehouse statuses. Only active warehouses count toward the dashboard KPI.
const (
	WarehouseStatusActive      = "active"
	WarehouseStatusMaintenance = "maintenance"
	WarehouseStatusInactive    = "inactive"
)

// Warehouse is a physical location holding stock. Capacity is informational
// only; the ledger never enforces it as a hard cap.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	Capacity  int64 // > 0
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
