// Package event defines the change events emitted after each committed
// ledger mutation, and the Notifier contract the engine publishes through.
package event

import "time"

// Event kinds.
const (
	TypeInventoryUpdated     = "inventory_updated"
	TypeStockMovementCreated = "stock_movement_created"
	TypeProductUpdated       = "product_updated"
	TypeWarehouseUpdated     = "warehouse_updated"
)

// ChangeEvent is the wire shape pushed to real-time subscribers.
// Delivery is at-most-once; payloads carry identifiers (plus the new
// quantity for inventory updates), and subscribers reconcile by re-querying.
type ChangeEvent struct {
	Type      string    `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// InventoryUpdatedData payload for TypeInventoryUpdated. Field names follow
// the same camelCase wire convention as the HTTP responses.
type InventoryUpdatedData struct {
	ProductID   string `json:"productId"`
	WarehouseID string `json:"warehouseId"`
	Quantity    int64  `json:"quantity"`
	Row         string `json:"row,omitempty"`
	Shelf       string `json:"shelf,omitempty"`
}

// EntityData payload for movement/product/warehouse events; identifiers only.
type EntityData struct {
	ID string `json:"id"`
}

// New builds a ChangeEvent stamped with the current time.
func New(eventType string, data any) ChangeEvent {
	return ChangeEvent{Type: eventType, Data: data, Timestamp: time.Now().UTC()}
}

// Notifier fans committed changes out to external subscribers.
// Publish must never block the caller and must never return an error:
// the side channel is best-effort by contract.
type Notifier interface {
	Publish(ev ChangeEvent)
}

// NopNotifier discards every event. Used by the rebuild tool and tests.
type NopNotifier struct{}

func (NopNotifier) Publish(ChangeEvent) {}
