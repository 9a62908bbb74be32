package order

import (
	"context"
	"encoding/json"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/restobarhq/restobar/pkg/event"
)

// emitter publishes order lifecycle events. Publishing is best effort:
// the database is authoritative and polling clients recover from missed
// events on their next watermark check.
type emitter struct {
	publisher events.Publisher
	logger    apt.Logger
}

func (e *emitter) orderEvent(ctx context.Context, o *Order, eventType string) {
	if e.publisher == nil {
		return
	}
	evt := event.OrderEvent{
		EventType:     eventType,
		OccurredAt:    time.Now().UTC(),
		OrderID:       o.ID.String(),
		Number:        o.Number,
		Status:        o.Status,
		KitchenStatus: o.KitchenStatusCode(),
		HasKitchen:    o.HasKitchenItems,
		OrderType:     o.Type,
		Customer:      o.Customer,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		e.logger.Error("cannot marshal order event", "error", err, "order_id", o.ID.String())
		return
	}
	if err := e.publisher.Publish(ctx, event.OrdersTopic, payload); err != nil {
		e.logger.Error("cannot publish order event", "error", err, "order_id", o.ID.String())
	}
}

func (e *emitter) itemEvent(ctx context.Context, item *OrderItem, previousStatus string) {
	if e.publisher == nil {
		return
	}
	evt := event.OrderItemEvent{
		EventType:      event.EventOrderItemStatusChanged,
		OccurredAt:     time.Now().UTC(),
		OrderID:        item.OrderID.String(),
		OrderItemID:    item.ID.String(),
		Name:           item.Name,
		Status:         item.StatusCode(),
		PreviousStatus: previousStatus,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		e.logger.Error("cannot marshal order item event", "error", err, "order_item_id", item.ID.String())
		return
	}
	if err := e.publisher.Publish(ctx, event.OrdersTopic, payload); err != nil {
		e.logger.Error("cannot publish order item event", "error", err, "order_item_id", item.ID.String())
	}
}
