package order

import (
	"context"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"

	"github.com/restobarhq/restobar/pkg/enums/kitchenstatus"
	"github.com/restobarhq/restobar/pkg/enums/orderstatus"
	"github.com/restobarhq/restobar/pkg/event"
	"github.com/restobarhq/restobar/pkg/watermark"
)

// StateMachine drives every post-submission transition: per-item kitchen
// progress, the derived order-level kitchen aggregate, POS status moves
// and the two terminal operations. All transitions re-read persisted
// state before mutating so replays and concurrent calls converge instead
// of conflicting.
type StateMachine struct {
	repos Repos
	marks *watermark.Clock
	emitter
}

func NewStateMachine(repos Repos, marks *watermark.Clock, publisher events.Publisher, logger apt.Logger) *StateMachine {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &StateMachine{
		repos:   repos,
		marks:   marks,
		emitter: emitter{publisher: publisher, logger: logger},
	}
}

// DeriveKitchenStatus folds item statuses into the order-level aggregate:
// every item ready or past it yields ready, any item at preparing yields
// preparing, anything else yields pending. Non-kitchen items are ignored.
func DeriveKitchenStatus(items []*OrderItem) string {
	kitchen := 0
	ready := 0
	preparing := false
	for _, item := range items {
		if !item.IsKitchen {
			continue
		}
		kitchen++
		if item.ReadyOrDone() {
			ready++
		} else if item.StatusCode() == kitchenstatus.Statuses.Preparing.Name {
			preparing = true
		}
	}
	switch {
	case kitchen == 0:
		return ""
	case ready == kitchen:
		return kitchenstatus.Statuses.Ready.Name
	case preparing:
		return kitchenstatus.Statuses.Preparing.Name
	default:
		return kitchenstatus.Statuses.Pending.Name
	}
}

// StartItem moves one kitchen line to preparing. Repeating the call for
// an item already at or past preparing changes nothing and reports the
// order as-is.
func (m *StateMachine) StartItem(ctx context.Context, itemID uuid.UUID) (*Order, *OrderItem, error) {
	return m.transitionItem(ctx, itemID, (*OrderItem).StartPreparing)
}

// ReadyItem moves one kitchen line to ready.
func (m *StateMachine) ReadyItem(ctx context.Context, itemID uuid.UUID) (*Order, *OrderItem, error) {
	return m.transitionItem(ctx, itemID, (*OrderItem).MarkReady)
}

func (m *StateMachine) transitionItem(ctx context.Context, itemID uuid.UUID, apply func(*OrderItem) bool) (*Order, *OrderItem, error) {
	item, err := m.repos.OrderItems.Get(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, ErrOrderItemNotFound
	}
	if !item.IsKitchen {
		return nil, nil, ErrNotKitchenItem
	}

	o, err := m.repos.Orders.Get(ctx, item.OrderID)
	if err != nil {
		return nil, nil, err
	}
	if o == nil {
		return nil, nil, ErrOrderNotFound
	}
	if o.Terminal() {
		return nil, nil, ErrOrderTerminal
	}

	previous := item.StatusCode()
	if !apply(item) {
		// Already at or past the target: idempotent no-op.
		return o, item, nil
	}

	if err := m.repos.OrderItems.Save(ctx, item); err != nil {
		return nil, nil, err
	}

	o, err = m.RecomputeAggregate(ctx, o)
	if err != nil {
		return nil, nil, err
	}

	m.marks.Orders.Bump()
	m.itemEvent(ctx, item, previous)

	return o, item, nil
}

// RecomputeAggregate re-derives the order's kitchen status from its
// persisted items and saves the order when the aggregate moved. It never
// touches terminal orders.
func (m *StateMachine) RecomputeAggregate(ctx context.Context, o *Order) (*Order, error) {
	if !o.HasKitchenItems || o.Terminal() {
		return o, nil
	}

	items, err := m.repos.OrderItems.ListByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	derived := DeriveKitchenStatus(items)
	if derived == "" || derived == o.KitchenStatusCode() {
		return o, nil
	}

	o.SetKitchenStatus(derived)
	o.BeforeUpdate()
	if err := m.repos.Orders.Save(ctx, o); err != nil {
		return nil, err
	}
	m.orderEvent(ctx, o, event.EventOrderStatusChanged)
	return o, nil
}

// MarkOrderReady force-marks every kitchen item of the order ready in one
// sweep and sets the aggregate to ready. The POS status is untouched; the
// cashier still completes the order explicitly.
func (m *StateMachine) MarkOrderReady(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	o, err := m.repos.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if o.Terminal() {
		return nil, ErrOrderTerminal
	}
	if !o.HasKitchenItems {
		return nil, ErrNotKitchenItem
	}

	items, err := m.repos.OrderItems.ListByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	changed := false
	for _, item := range items {
		previous := item.StatusCode()
		if !item.MarkReady() {
			continue
		}
		if err := m.repos.OrderItems.Save(ctx, item); err != nil {
			return nil, err
		}
		m.itemEvent(ctx, item, previous)
		changed = true
	}

	if o.KitchenStatusCode() != kitchenstatus.Statuses.Ready.Name {
		o.SetKitchenStatus(kitchenstatus.Statuses.Ready.Name)
		o.BeforeUpdate()
		if err := m.repos.Orders.Save(ctx, o); err != nil {
			return nil, err
		}
		m.orderEvent(ctx, o, event.EventOrderStatusChanged)
		changed = true
	}

	if changed {
		m.marks.Orders.Bump()
	}
	return o, nil
}

// StartOrder advances the POS status pending -> preparing.
func (m *StateMachine) StartOrder(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	return m.transitionOrder(ctx, orderID, orderstatus.Statuses.Preparing.Name, (*Order).MarkAsPreparing)
}

// ReadyOrder advances the POS status preparing -> ready.
func (m *StateMachine) ReadyOrder(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	return m.transitionOrder(ctx, orderID, orderstatus.Statuses.Ready.Name, (*Order).MarkAsReady)
}

func (m *StateMachine) transitionOrder(ctx context.Context, orderID uuid.UUID, target string, apply func(*Order)) (*Order, error) {
	o, err := m.repos.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if o.Terminal() {
		return nil, ErrOrderTerminal
	}
	if !orderstatus.CanTransition(o.Status, target) {
		return nil, ErrInvalidTransition
	}

	apply(o)
	o.BeforeUpdate()
	if err := m.repos.Orders.Save(ctx, o); err != nil {
		return nil, err
	}

	m.marks.Orders.Bump()
	m.orderEvent(ctx, o, event.EventOrderStatusChanged)
	return o, nil
}

// CompleteOrder closes the sale. The completion gate holds regardless of
// the POS status: an order with kitchen items completes only once every
// kitchen line is ready or past it, otherwise the call fails listing the
// blocking lines and the order is left untouched. Completion cascades
// ready kitchen items to completed.
func (m *StateMachine) CompleteOrder(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	o, err := m.repos.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if o.Terminal() {
		return nil, ErrOrderTerminal
	}

	var items []*OrderItem
	if o.HasKitchenItems {
		items, err = m.repos.OrderItems.ListByOrder(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		var blocking []BlockingItem
		for _, item := range items {
			if item.IsKitchen && !item.ReadyOrDone() {
				blocking = append(blocking, BlockingItem{Name: item.Name, Status: item.StatusCode()})
			}
		}
		if len(blocking) > 0 {
			return nil, &KitchenItemsNotReadyError{OrderID: o.ID, Blocking: blocking}
		}
	}

	o.Complete()
	saved, err := m.repos.Orders.SaveIfActive(ctx, o)
	if err != nil {
		return nil, err
	}
	if !saved {
		// Lost the race to another terminal transition.
		return nil, ErrOrderTerminal
	}

	for _, item := range items {
		if item.CompletePreparation() {
			if err := m.repos.OrderItems.Save(ctx, item); err != nil {
				m.logger.Error("cannot cascade item completion", "order_item_id", item.ID.String(), "error", err)
			}
		}
	}

	m.marks.Orders.Bump()
	m.orderEvent(ctx, o, event.EventOrderStatusChanged)
	return o, nil
}

// CancelOrder aborts the sale from any non-terminal status. Stock is not
// restored: by the time an order is cancelled the goods are usually
// already poured or plated, so write-offs stay a manual decision.
func (m *StateMachine) CancelOrder(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	o, err := m.repos.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if o.Terminal() {
		return nil, ErrOrderTerminal
	}

	o.Cancel()
	saved, err := m.repos.Orders.SaveIfActive(ctx, o)
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, ErrOrderTerminal
	}

	m.marks.Orders.Bump()
	m.orderEvent(ctx, o, event.EventOrderStatusChanged)
	return o, nil
}
