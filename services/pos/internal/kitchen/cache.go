package kitchen

import (
	"context"
	"sync"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/restobarhq/restobar/services/pos/internal/order"
)

// ActiveOrderCache mirrors the active orders and their items in memory so
// the kitchen display endpoints never hit the database on the hot path.
// The database stays authoritative; the cache is refreshed per order on
// every order event and re-warmed wholesale at startup.
type ActiveOrderCache struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*order.Order
	items  map[uuid.UUID][]*order.OrderItem

	repos  order.Repos
	logger apt.Logger
}

func NewActiveOrderCache(repos order.Repos, logger apt.Logger) *ActiveOrderCache {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &ActiveOrderCache{
		orders: make(map[uuid.UUID]*order.Order),
		items:  make(map[uuid.UUID][]*order.OrderItem),
		repos:  repos,
		logger: logger,
	}
}

// Warm loads every active order and its items from the repository,
// replacing the cache contents. Called once at startup before the
// service accepts traffic.
func (c *ActiveOrderCache) Warm(ctx context.Context) error {
	active, err := c.repos.Orders.ListActive(ctx)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(active))
	for _, o := range active {
		ids = append(ids, o.ID)
	}

	var allItems []*order.OrderItem
	if len(ids) > 0 {
		allItems, err = c.repos.OrderItems.ListByOrders(ctx, ids)
		if err != nil {
			return err
		}
	}

	orders := make(map[uuid.UUID]*order.Order, len(active))
	items := make(map[uuid.UUID][]*order.OrderItem, len(active))
	for _, o := range active {
		orders[o.ID] = o
	}
	for _, item := range allItems {
		items[item.OrderID] = append(items[item.OrderID], item)
	}

	c.mu.Lock()
	c.orders = orders
	c.items = items
	c.mu.Unlock()

	c.logger.Info("kitchen cache warmed", "orders", len(orders))
	return nil
}

// Refresh re-reads one order and its items from the repository. Terminal
// or deleted orders are evicted.
func (c *ActiveOrderCache) Refresh(ctx context.Context, orderID uuid.UUID) {
	o, err := c.repos.Orders.Get(ctx, orderID)
	if err != nil {
		c.logger.Error("cannot refresh cached order", "order_id", orderID.String(), "error", err)
		return
	}
	if o == nil || o.Terminal() {
		c.Remove(orderID)
		return
	}

	items, err := c.repos.OrderItems.ListByOrder(ctx, orderID)
	if err != nil {
		c.logger.Error("cannot refresh cached order items", "order_id", orderID.String(), "error", err)
		return
	}

	c.mu.Lock()
	c.orders[orderID] = o
	c.items[orderID] = items
	c.mu.Unlock()
}

func (c *ActiveOrderCache) Remove(orderID uuid.UUID) {
	c.mu.Lock()
	delete(c.orders, orderID)
	delete(c.items, orderID)
	c.mu.Unlock()
}

// Snapshot returns copies of the cached order and item sets, safe to read
// without holding the cache lock.
func (c *ActiveOrderCache) Snapshot() ([]*order.Order, map[string][]*order.OrderItem) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	orders := make([]*order.Order, 0, len(c.orders))
	for _, o := range c.orders {
		orders = append(orders, o)
	}
	items := make(map[string][]*order.OrderItem, len(c.items))
	for id, list := range c.items {
		items[id.String()] = append([]*order.OrderItem(nil), list...)
	}
	return orders, items
}

// Len reports the number of cached active orders.
func (c *ActiveOrderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.orders)
}
