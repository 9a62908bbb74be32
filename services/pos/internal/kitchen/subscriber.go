package kitchen

import (
	"context"
	"encoding/json"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"

	"github.com/restobarhq/restobar/pkg/event"
)

// Subscriber keeps the kitchen cache in step with order events. Every
// event triggers a per-order refresh from the repository rather than
// applying the payload directly, so a missed or reordered event can
// never leave the cache stale past the next one.
type Subscriber struct {
	subscriber events.Subscriber
	cache      *ActiveOrderCache
	logger     apt.Logger
}

func NewSubscriber(subscriber events.Subscriber, cache *ActiveOrderCache, logger apt.Logger) *Subscriber {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Subscriber{
		subscriber: subscriber,
		cache:      cache,
		logger:     logger,
	}
}

// Start subscribes to the orders topic. The subscription lives until the
// underlying subscriber is closed.
func (s *Subscriber) Start(ctx context.Context) error {
	return s.subscriber.Subscribe(ctx, event.OrdersTopic, s.handle)
}

func (s *Subscriber) handle(ctx context.Context, payload []byte) error {
	var head struct {
		EventType string `json:"event_type"`
		OrderID   string `json:"order_id"`
	}
	if err := json.Unmarshal(payload, &head); err != nil {
		s.logger.Error("cannot decode order event", "error", err)
		return nil
	}

	orderID, err := uuid.Parse(head.OrderID)
	if err != nil {
		s.logger.Error("order event carries invalid order id", "order_id", head.OrderID, "event_type", head.EventType)
		return nil
	}

	s.cache.Refresh(ctx, orderID)
	s.logger.Debug("kitchen cache refreshed", "order_id", head.OrderID, "event_type", head.EventType)
	return nil
}
