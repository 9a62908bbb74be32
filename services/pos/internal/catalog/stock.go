package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"

	"github.com/restobarhq/restobar/pkg/event"
	"github.com/restobarhq/restobar/pkg/watermark"
)

// StockKeeper owns the authoritative stock count per item and the menu
// watermark. Every catalog mutation goes through Touch so polling clients
// re-fetch the snapshot regardless of what changed.
type StockKeeper struct {
	items     ItemRepo
	marks     *watermark.Clock
	publisher events.Publisher
	logger    apt.Logger
}

func NewStockKeeper(items ItemRepo, marks *watermark.Clock, publisher events.Publisher, logger apt.Logger) *StockKeeper {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &StockKeeper{
		items:     items,
		marks:     marks,
		publisher: publisher,
		logger:    logger,
	}
}

// CheckAvailable reports whether qty units of the item can be sold and
// returns the live item for snapshotting. The authoritative check happens
// later in Decrement; this read exists to produce a friendly error naming
// the available quantity before anything is persisted.
func (k *StockKeeper) CheckAvailable(ctx context.Context, itemID uuid.UUID, qty int) (bool, *Item, error) {
	item, err := k.items.Get(ctx, itemID)
	if err != nil {
		return false, nil, err
	}
	if item == nil {
		return false, nil, nil
	}
	return item.InStock(qty), item, nil
}

// Decrement atomically takes qty units from a tracked item. Untracked
// items pass through unchanged. A decrement landing at or below the
// low-stock threshold emits a stock.low event.
func (k *StockKeeper) Decrement(ctx context.Context, item *Item, qty int) (*Item, error) {
	if !item.Tracked() {
		return item, nil
	}

	updated, err := k.items.DecrementStock(ctx, item.ID, qty)
	if err != nil {
		return nil, err
	}

	if updated.Tracked() && *updated.Stock <= updated.LowStockThreshold {
		k.logger.Info("item stock low", "item_id", updated.ID.String(), "name", updated.Name, "remaining", *updated.Stock)
		k.publishStockLow(ctx, updated)
	}

	return updated, nil
}

// Restore returns qty units to a tracked item, compensating a submission
// that failed after its decrements were applied.
func (k *StockKeeper) Restore(ctx context.Context, itemID uuid.UUID, qty int) error {
	return k.items.IncrementStock(ctx, itemID, qty)
}

// Touch bumps the menu watermark and announces the change. Called after
// any catalog mutation: price, availability, stock edit, kitchen toggle.
func (k *StockKeeper) Touch(ctx context.Context) int64 {
	mark := k.marks.Menu.Bump()
	k.publishMenuChanged(ctx, mark)
	return mark
}

func (k *StockKeeper) publishMenuChanged(ctx context.Context, mark int64) {
	if k.publisher == nil {
		return
	}
	evt := event.MenuChangedEvent{
		EventType:  event.EventMenuChanged,
		OccurredAt: time.Now().UTC(),
		Watermark:  mark,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		k.logger.Error("cannot marshal menu changed event", "error", err)
		return
	}
	if err := k.publisher.Publish(ctx, event.CatalogTopic, payload); err != nil {
		k.logger.Error("cannot publish menu changed event", "error", err)
	}
}

func (k *StockKeeper) publishStockLow(ctx context.Context, item *Item) {
	if k.publisher == nil {
		return
	}
	evt := event.StockLowEvent{
		EventType:  event.EventStockLow,
		OccurredAt: time.Now().UTC(),
		ItemID:     item.ID.String(),
		Name:       item.Name,
		Remaining:  *item.Stock,
		Threshold:  item.LowStockThreshold,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		k.logger.Error("cannot marshal stock low event", "error", err)
		return
	}
	if err := k.publisher.Publish(ctx, event.CatalogTopic, payload); err != nil {
		k.logger.Error("cannot publish stock low event", "error", err)
	}
}
