package order

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderRepo interface {
	Create(ctx context.Context, order *Order) error
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	// ListActive returns orders not yet completed or cancelled.
	ListActive(ctx context.Context) ([]*Order, error)
	ListCreatedAfter(ctx context.Context, after time.Time) ([]*Order, error)
	Save(ctx context.Context, order *Order) error
	// SaveIfActive persists the order only while its stored status is
	// still non-terminal, returning false when the guard rejects the
	// write. This is the row-level gate that keeps concurrent complete
	// and cancel calls from clobbering a terminal state.
	SaveIfActive(ctx context.Context, order *Order) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderItemRepo interface {
	Create(ctx context.Context, item *OrderItem) error
	BulkCreate(ctx context.Context, items []*OrderItem) error
	Get(ctx context.Context, id uuid.UUID) (*OrderItem, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*OrderItem, error)
	ListByOrders(ctx context.Context, orderIDs []uuid.UUID) ([]*OrderItem, error)
	Save(ctx context.Context, item *OrderItem) error
	DeleteByOrder(ctx context.Context, orderID uuid.UUID) error
}

// PaymentMethodRepo validates the payment method referenced by a
// submission. Managing payment methods is back-office surface outside
// the core.
type PaymentMethodRepo interface {
	Create(ctx context.Context, method *PaymentMethod) error
	List(ctx context.Context) ([]*PaymentMethod, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// CounterRepo hands out the monotonic sequence behind order numbers.
type CounterRepo interface {
	Next(ctx context.Context, name string) (int64, error)
}

type Repos struct {
	Orders     OrderRepo
	OrderItems OrderItemRepo
	Payments   PaymentMethodRepo
	Counters   CounterRepo
}
