package catalog

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Item is a sellable catalog entry. Stock is nil for untracked items
// (unlimited); when set it is never negative.
type Item struct {
	ID                uuid.UUID `json:"id" bson:"_id"`
	Name              string    `json:"name" bson:"name"`
	Price             float64   `json:"price" bson:"price"`
	CategoryID        uuid.UUID `json:"category_id" bson:"category_id"`
	Available         bool      `json:"available" bson:"available"`
	Stock             *int      `json:"stock,omitempty" bson:"stock,omitempty"`
	LowStockThreshold int       `json:"low_stock_threshold" bson:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
}

func (i *Item) GetID() uuid.UUID {
	return i.ID
}

func (i *Item) ResourceType() string {
	return "item"
}

func (i *Item) SetID(id uuid.UUID) {
	i.ID = id
}

func NewItem() *Item {
	return &Item{
		ID:        apt.GenerateNewID(),
		Available: true,
	}
}

func (i *Item) EnsureID() {
	if i.ID == uuid.Nil {
		i.ID = apt.GenerateNewID()
	}
}

func (i *Item) BeforeCreate() {
	i.EnsureID()
	i.CreatedAt = time.Now()
	i.UpdatedAt = time.Now()
}

func (i *Item) BeforeUpdate() {
	i.UpdatedAt = time.Now()
}

// Tracked reports whether stock is counted for this item.
func (i *Item) Tracked() bool {
	return i.Stock != nil
}

// InStock reports whether qty units can be sold right now. Items toggled
// unavailable cannot be sold; untracked available items always can.
func (i *Item) InStock(qty int) bool {
	if !i.Available {
		return false
	}
	if !i.Tracked() {
		return true
	}
	return *i.Stock >= qty
}

// StockAvailable returns the current counted stock, or -1 for untracked
// items.
func (i *Item) StockAvailable() int {
	if !i.Tracked() {
		return -1
	}
	return *i.Stock
}
