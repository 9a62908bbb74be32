package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderItemNotFound    = errors.New("order item not found")
	ErrEmptyCart            = errors.New("cart must contain at least one line")
	ErrQuantityInvalid      = errors.New("quantity must be greater than zero")
	ErrPriceInvalid         = errors.New("unit price must not be negative")
	ErrUnknownItem          = errors.New("unknown item")
	ErrItemUnavailable      = errors.New("item is not available for sale")
	ErrInvalidCategory      = errors.New("item references an unknown category")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
	ErrInvalidDiscount      = errors.New("invalid discount")
	ErrNotKitchenItem       = errors.New("item does not require kitchen preparation")
	ErrInvalidTransition    = errors.New("illegal status transition")
	ErrOrderTerminal        = errors.New("order already completed or cancelled")
)

// InsufficientStockError names the offending item and the quantity still
// available so the client can re-fetch the catalog and resubmit.
type InsufficientStockError struct {
	ItemID    uuid.UUID
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Name, e.Requested, e.Available)
}

// BlockingItem describes one unready kitchen line preventing completion.
type BlockingItem struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// KitchenItemsNotReadyError rejects order completion while kitchen items
// remain unready. The order is left untouched.
type KitchenItemsNotReadyError struct {
	OrderID  uuid.UUID
	Blocking []BlockingItem
}

func (e *KitchenItemsNotReadyError) Error() string {
	parts := make([]string, 0, len(e.Blocking))
	for _, b := range e.Blocking {
		parts = append(parts, fmt.Sprintf("%s (%s)", b.Name, b.Status))
	}
	return fmt.Sprintf("kitchen items not ready: %s", strings.Join(parts, ", "))
}
