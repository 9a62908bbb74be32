package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockPublisher is a mock implementation of events.Publisher for testing
type MockPublisher struct {
	mu        sync.Mutex
	Topics    []string
	Published [][]byte
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Topics = append(m.Topics, topic)
	m.Published = append(m.Published, msg)
	return nil
}

// MockItemRepo is a mock implementation of ItemRepo for testing
type MockItemRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Item
}

func NewMockItemRepo() *MockItemRepo {
	return &MockItemRepo{
		items: make(map[uuid.UUID]*Item),
	}
}

func (m *MockItemRepo) Create(ctx context.Context, item *Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *MockItemRepo) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (m *MockItemRepo) List(ctx context.Context) ([]*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Item
	for _, item := range m.items {
		result = append(result, item)
	}
	return result, nil
}

func (m *MockItemRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Item
	for _, item := range m.items {
		if item.CategoryID == categoryID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *MockItemRepo) Save(ctx context.Context, item *Item) error {
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

func (m *MockItemRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok || item.Stock == nil || *item.Stock < qty {
		return nil, ErrInsufficientStock
	}
	remaining := *item.Stock - qty
	item.Stock = &remaining
	return item, nil
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

// MockCategoryRepo is a mock implementation of CategoryRepo for testing
type MockCategoryRepo struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]*Category
}

func NewMockCategoryRepo() *MockCategoryRepo {
	return &MockCategoryRepo{
		categories: make(map[uuid.UUID]*Category),
	}
}

func (m *MockCategoryRepo) Create(ctx context.Context, category *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepo) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	category, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	return category, nil
}

func (m *MockCategoryRepo) List(ctx context.Context) ([]*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Category
	for _, category := range m.categories {
		result = append(result, category)
	}
	return result, nil
}

func (m *MockCategoryRepo) Save(ctx context.Context, category *Category) error {
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
