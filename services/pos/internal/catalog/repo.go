package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrInsufficientStock is returned by DecrementStock when the conditional
// update matches no document, meaning the decrement would drive stock
// negative.
var ErrInsufficientStock = errors.New("insufficient stock")

type ItemRepo interface {
	Create(ctx context.Context, item *Item) error
	Get(ctx context.Context, id uuid.UUID) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*Item, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock atomically decrements a tracked item's stock by qty,
	// succeeding only when the resulting stock stays non-negative. It
	// returns the updated item, or ErrInsufficientStock when the guard
	// rejects the decrement.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (*Item, error)

	// IncrementStock returns previously decremented stock, used to
	// compensate a failed order submission.
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) error
}

type CategoryRepo interface {
	Create(ctx context.Context, category *Category) error
	Get(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
