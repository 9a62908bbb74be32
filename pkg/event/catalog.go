package event

import "time"

const (
	CatalogTopic = "pos.catalog"

	EventMenuChanged = "catalog.menu_changed"
	EventStockLow    = "catalog.stock_low"
)

// MenuChangedEvent signals that the catalog snapshot is stale. The system
// does not distinguish change reasons, only that something changed, so the
// payload carries just the new watermark.
type MenuChangedEvent struct {
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	Watermark  int64     `json:"watermark"`
}

// StockLowEvent is emitted when a decrement lands at or below the item's
// low-stock threshold.
type StockLowEvent struct {
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	ItemID     string    `json:"item_id"`
	Name       string    `json:"name"`
	Remaining  int       `json:"remaining"`
	Threshold  int       `json:"threshold"`
}
