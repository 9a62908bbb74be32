package event

import "time"

const (
	OrdersTopic = "pos.orders"

	EventOrderCreated           = "order.created"
	EventOrderStatusChanged     = "order.status_changed"
	EventOrderItemStatusChanged = "order.item.status_changed"
)

// OrderEvent is published on the orders topic for every order lifecycle
// change. Polling caches use it to refresh a single order instead of the
// full active set.
type OrderEvent struct {
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	OrderID    string    `json:"order_id"`
	Number     string    `json:"number,omitempty"`

	Status        string `json:"status,omitempty"`
	KitchenStatus string `json:"kitchen_status,omitempty"`
	HasKitchen    bool   `json:"has_kitchen_items"`

	// Denormalized for kitchen display alerts
	OrderType string `json:"order_type,omitempty"`
	Customer  string `json:"customer,omitempty"`
}

// OrderItemEvent is published when a single line item moves through the
// kitchen states.
type OrderItemEvent struct {
	EventType      string    `json:"event_type"`
	OccurredAt     time.Time `json:"occurred_at"`
	OrderID        string    `json:"order_id"`
	OrderItemID    string    `json:"order_item_id"`
	Name           string    `json:"name,omitempty"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
}
