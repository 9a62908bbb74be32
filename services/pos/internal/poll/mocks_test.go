package poll

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/restobarhq/restobar/services/pos/internal/catalog"
	"github.com/restobarhq/restobar/services/pos/internal/order"
)

// MockItemRepo is a mock implementation of catalog.ItemRepo for testing
type MockItemRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*catalog.Item
}

func NewMockItemRepo() *MockItemRepo {
	return &MockItemRepo{
		items: make(map[uuid.UUID]*catalog.Item),
	}
}

func (m *MockItemRepo) Create(ctx context.Context, item *catalog.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *MockItemRepo) Get(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (m *MockItemRepo) List(ctx context.Context) ([]*catalog.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*catalog.Item
	for _, item := range m.items {
		result = append(result, item)
	}
	return result, nil
}

func (m *MockItemRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*catalog.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*catalog.Item
	for _, item := range m.items {
		if item.CategoryID == categoryID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *MockItemRepo) Save(ctx context.Context, item *catalog.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *MockItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *MockItemRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (*catalog.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok || item.Stock == nil || *item.Stock < qty {
		return nil, catalog.ErrInsufficientStock
	}
	*item.Stock -= qty
	return item, nil
}

func (m *MockItemRepo) IncrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if ok && item.Stock != nil {
		*item.Stock += qty
	}
	return nil
}

// MockCategoryRepo is a mock implementation of catalog.CategoryRepo for testing
type MockCategoryRepo struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]*catalog.Category
}

func NewMockCategoryRepo() *MockCategoryRepo {
	return &MockCategoryRepo{
		categories: make(map[uuid.UUID]*catalog.Category),
	}
}

func (m *MockCategoryRepo) Create(ctx context.Context, category *catalog.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepo) Get(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	category, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	return category, nil
}

func (m *MockCategoryRepo) List(ctx context.Context) ([]*catalog.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*catalog.Category
	for _, category := range m.categories {
		result = append(result, category)
	}
	return result, nil
}

func (m *MockCategoryRepo) Save(ctx context.Context, category *catalog.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.categories, id)
	return nil
}

// MockOrderRepo is a mock implementation of order.OrderRepo for testing
type MockOrderRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*order.Order
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{
		orders: make(map[uuid.UUID]*order.Order),
	}
}

func (m *MockOrderRepo) Create(ctx context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
	return nil
}

func (m *MockOrderRepo) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return o, nil
}

func (m *MockOrderRepo) List(ctx context.Context) ([]*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*order.Order
	for _, o := range m.orders {
		result = append(result, o)
	}
	return result, nil
}

func (m *MockOrderRepo) ListActive(ctx context.Context) ([]*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*order.Order
	for _, o := range m.orders {
		if !o.Terminal() {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *MockOrderRepo) ListCreatedAfter(ctx context.Context, after time.Time) ([]*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*order.Order
	for _, o := range m.orders {
		if o.CreatedAt.After(after) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *MockOrderRepo) Save(ctx context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
	return nil
}

func (m *MockOrderRepo) SaveIfActive(ctx context.Context, o *order.Order) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.orders[o.ID]
	if !ok || stored.Terminal() {
		return false, nil
	}
	m.orders[o.ID] = o
	return true, nil
}

func (m *MockOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.orders, id)
	return nil
}

// MockOrderItemRepo is a mock implementation of order.OrderItemRepo for testing
type MockOrderItemRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*order.OrderItem
}

func NewMockOrderItemRepo() *MockOrderItemRepo {
	return &MockOrderItemRepo{
		items: make(map[uuid.UUID]*order.OrderItem),
	}
}

func (m *MockOrderItemRepo) Create(ctx context.Context, item *order.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *MockOrderItemRepo) BulkCreate(ctx context.Context, items []*order.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		m.items[item.ID] = item
	}
	return nil
}

func (m *MockOrderItemRepo) Get(ctx context.Context, id uuid.UUID) (*order.OrderItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (m *MockOrderItemRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*order.OrderItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*order.OrderItem
	for _, item := range m.items {
		if item.OrderID == orderID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *MockOrderItemRepo) ListByOrders(ctx context.Context, orderIDs []uuid.UUID) ([]*order.OrderItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	wanted := make(map[uuid.UUID]bool, len(orderIDs))
	for _, id := range orderIDs {
		wanted[id] = true
	}
	var result []*order.OrderItem
	for _, item := range m.items {
		if wanted[item.OrderID] {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *MockOrderItemRepo) Save(ctx context.Context, item *order.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *MockOrderItemRepo) DeleteByOrder(ctx context.Context, orderID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, item := range m.items {
		if item.OrderID == orderID {
			delete(m.items, id)
		}
	}
	return nil
}
