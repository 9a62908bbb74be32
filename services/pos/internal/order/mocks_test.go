package order

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/restobarhq/restobar/services/pos/internal/catalog"
)

// MockPublisher is a mock implementation of events.Publisher for testing
type MockPublisher struct {
	mu          sync.Mutex
	Published   [][]byte
	Topics      []string
	PublishFunc func(ctx context.Context, topic string, msg []byte) error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Topics = append(m.Topics, topic)
	m.Published = append(m.Published, msg)
	return nil
}

// MockOrderRepo is a mock implementation of OrderRepo for testing
type MockOrderRepo struct {
	mu         sync.RWMutex
	orders     map[uuid.UUID]*Order
	CreateFunc func(ctx context.Context, order *Order) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*Order, error)
	SaveFunc   func(ctx context.Context, order *Order) error
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{
		orders: make(map[uuid.UUID]*Order),
	}
}

func (m *MockOrderRepo) Create(ctx context.Context, order *Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

// cloneOrder hands out a private copy, the way a real repository decode
// does. Callers mutating a fetched order must not share memory with the
// stored record, or SaveIfActive would compare the order against itself.
func cloneOrder(o *Order) *Order {
	cp := *o
	if o.KitchenStatus != nil {
		status := *o.KitchenStatus
		cp.KitchenStatus = &status
	}
	if o.CompletedAt != nil {
		completed := *o.CompletedAt
		cp.CompletedAt = &completed
	}
	return &cp
}

func (m *MockOrderRepo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (m *MockOrderRepo) List(ctx context.Context) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, o := range m.orders {
		result = append(result, o)
	}
	return result, nil
}

func (m *MockOrderRepo) ListActive(ctx context.Context) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, o := range m.orders {
		if !o.Terminal() {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *MockOrderRepo) ListCreatedAfter(ctx context.Context, after time.Time) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, o := range m.orders {
		if o.CreatedAt.After(after) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *MockOrderRepo) Save(ctx context.Context, order *Order) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepo) SaveIfActive(ctx context.Context, order *Order) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.orders[order.ID]
	if !ok || stored.Terminal() {
		return false, nil
	}
	m.orders[order.ID] = order
	return true, nil
}

func (m *MockOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.orders, id)
	return nil
}

// MockOrderItemRepo is a mock implementation of OrderItemRepo for testing
type MockOrderItemRepo struct {
	mu             sync.RWMutex
	items          map[uuid.UUID]*OrderItem
	BulkCreateFunc func(ctx context.Context, items []*OrderItem) error
	GetFunc        func(ctx context.Context, id uuid.UUID) (*OrderItem, error)
	SaveFunc       func(ctx context.Context, item *OrderItem) error
}

func NewMockOrderItemRepo() *MockOrderItemRepo {
	return &MockOrderItemRepo{
		items: make(map[uuid.UUID]*OrderItem),
	}
}

func (m *MockOrderItemRepo) Create(ctx context.Context, item *OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *MockOrderItemRepo) BulkCreate(ctx context.Context, items []*OrderItem) error {
	if m.BulkCreateFunc != nil {
		return m.BulkCreateFunc(ctx, items)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		m.items[item.ID] = item
	}
	return nil
}

func (m *MockOrderItemRepo) Get(ctx context.Context, id uuid.UUID) (*OrderItem, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (m *MockOrderItemRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*OrderItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*OrderItem
	for _, item := range m.items {
		if item.OrderID == orderID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *MockOrderItemRepo) ListByOrders(ctx context.Context, orderIDs []uuid.UUID) ([]*OrderItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	wanted := make(map[uuid.UUID]bool, len(orderIDs))
	for _, id := range orderIDs {
		wanted[id] = true
	}
	var result []*OrderItem
	for _, item := range m.items {
		if wanted[item.OrderID] {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *MockOrderItemRepo) Save(ctx context.Context, item *OrderItem) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, item)
	}
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

// MockPaymentMethodRepo is a mock implementation of PaymentMethodRepo for testing
type MockPaymentMethodRepo struct {
	mu      sync.RWMutex
	methods map[uuid.UUID]*PaymentMethod
}

func NewMockPaymentMethodRepo() *MockPaymentMethodRepo {
	return &MockPaymentMethodRepo{
		methods: make(map[uuid.UUID]*PaymentMethod),
	}
}

func (m *MockPaymentMethodRepo) Create(ctx context.Context, method *PaymentMethod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.methods[method.ID] = method
	return nil
}

func (m *MockPaymentMethodRepo) List(ctx context.Context) ([]*PaymentMethod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*PaymentMethod
	for _, method := range m.methods {
		result = append(result, method)
	}
	return result, nil
}

func (m *MockPaymentMethodRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.methods[id]
	return ok, nil
}

// MockCounterRepo is a mock implementation of CounterRepo for testing
type MockCounterRepo struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func NewMockCounterRepo() *MockCounterRepo {
	return &MockCounterRepo{
		seqs: make(map[string]int64),
	}
}

func (m *MockCounterRepo) Next(ctx context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seqs[name]++
	return m.seqs[name], nil
}

// MockItemRepo is a mock implementation of catalog.ItemRepo for testing
type MockItemRepo struct {
	mu                sync.RWMutex
	items             map[uuid.UUID]*catalog.Item
	DecrementStockFunc func(ctx context.Context, id uuid.UUID, qty int) (*catalog.Item, error)
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

// cloneItem hands out a private copy, the way a real repository decode
// does. Callers reading an item concurrently with a stock update must
// not share memory with the stored record.
func cloneItem(item *catalog.Item) *catalog.Item {
	cp := *item
	if item.Stock != nil {
		stock := *item.Stock
		cp.Stock = &stock
	}
	return &cp
}

func (m *MockItemRepo) Get(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return cloneItem(item), nil
}

func (m *MockItemRepo) List(ctx context.Context) ([]*catalog.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*catalog.Item
	for _, item := range m.items {
		result = append(result, cloneItem(item))
	}
	return result, nil
}

func (m *MockItemRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*catalog.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*catalog.Item
	for _, item := range m.items {
		if item.CategoryID == categoryID {
			result = append(result, cloneItem(item))
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
	if m.DecrementStockFunc != nil {
		return m.DecrementStockFunc(ctx, id, qty)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok || item.Stock == nil || *item.Stock < qty {
		return nil, catalog.ErrInsufficientStock
	}
	remaining := *item.Stock - qty
	item.Stock = &remaining
	return cloneItem(item), nil
}

func (m *MockItemRepo) IncrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok || item.Stock == nil {
		return nil
	}
	restored := *item.Stock + qty
	item.Stock = &restored
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
