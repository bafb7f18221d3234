package entity

import "time"

// Product is a catalog item (SKU) tracked across warehouses.
// LowStockThreshold drives the low-stock alert query: a ledger row alerts
// while its quantity is strictly below this value.
type Product struct {
	ID                string
	SKU               string // unique per catalog
	Name              string
	Category          string
	Barcode           string // optional barcode/QR payload
	SupplierID        string // optional supplier reference
	LowStockThreshold int64  // >= 0
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
