package order

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/restobarhq/restobar/pkg/enums/kitchenstatus"
)

// OrderItem is one line of a sale. Name and UnitPrice are snapshots taken
// at submission time so historical invoices stay accurate when the
// catalog changes. KitchenStatus exists only for items whose category is
// kitchen-relevant and moves monotonically through
// pending < preparing < ready < completed.
type OrderItem struct {
	ID         uuid.UUID `json:"id" bson:"_id"`
	OrderID    uuid.UUID `json:"order_id" bson:"order_id"`
	ItemID     uuid.UUID `json:"item_id" bson:"item_id"`
	CategoryID uuid.UUID `json:"category_id" bson:"category_id"`
	Name       string    `json:"name" bson:"name"`
	Quantity   int       `json:"quantity" bson:"quantity"`
	UnitPrice  float64   `json:"unit_price" bson:"unit_price"`
	LineTotal  float64   `json:"line_total" bson:"line_total"`
	Notes      string    `json:"notes,omitempty" bson:"notes,omitempty"`

	IsKitchen     bool    `json:"is_kitchen" bson:"is_kitchen"`
	KitchenStatus *string `json:"kitchen_status,omitempty" bson:"kitchen_status,omitempty"`

	StartedAt  *time.Time `json:"started_at,omitempty" bson:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
}

func (oi *OrderItem) GetID() uuid.UUID {
	return oi.ID
}

func (oi *OrderItem) ResourceType() string {
	return "order-item"
}

func (oi *OrderItem) SetID(id uuid.UUID) {
	oi.ID = id
}

func NewOrderItem() *OrderItem {
	return &OrderItem{
		ID: apt.GenerateNewID(),
	}
}

func (oi *OrderItem) EnsureID() {
	if oi.ID == uuid.Nil {
		oi.ID = apt.GenerateNewID()
	}
}

func (oi *OrderItem) BeforeCreate() {
	oi.EnsureID()
	oi.CreatedAt = time.Now()
	oi.UpdatedAt = time.Now()
}

func (oi *OrderItem) BeforeUpdate() {
	oi.UpdatedAt = time.Now()
}

// StatusCode returns the item's kitchen status, or "" for non-kitchen
// items.
func (oi *OrderItem) StatusCode() string {
	if oi.KitchenStatus == nil {
		return ""
	}
	return *oi.KitchenStatus
}

// RouteToKitchen flags the item as kitchen-relevant and gives it its
// initial pending status. Called once at intake.
func (oi *OrderItem) RouteToKitchen() {
	pending := kitchenstatus.Statuses.Pending.Name
	oi.IsKitchen = true
	oi.KitchenStatus = &pending
}

// StartPreparing moves the item to preparing and stamps StartedAt. It is
// a no-op when the item is already at or past preparing, so replays never
// re-stamp the timestamp.
func (oi *OrderItem) StartPreparing() bool {
	if !oi.IsKitchen || kitchenstatus.AtLeast(oi.StatusCode(), kitchenstatus.Statuses.Preparing.Name) {
		return false
	}
	now := time.Now()
	preparing := kitchenstatus.Statuses.Preparing.Name
	oi.KitchenStatus = &preparing
	oi.StartedAt = &now
	oi.UpdatedAt = now
	return true
}

// MarkReady moves the item to ready and stamps FinishedAt. Re-applying
// to an already ready or completed item is a harmless no-op.
func (oi *OrderItem) MarkReady() bool {
	if !oi.IsKitchen || kitchenstatus.AtLeast(oi.StatusCode(), kitchenstatus.Statuses.Ready.Name) {
		return false
	}
	now := time.Now()
	ready := kitchenstatus.Statuses.Ready.Name
	oi.KitchenStatus = &ready
	oi.FinishedAt = &now
	oi.UpdatedAt = now
	return true
}

// CompletePreparation moves a ready item to completed. Only order
// completion cascades into this; it is never triggered per item.
func (oi *OrderItem) CompletePreparation() bool {
	if !oi.IsKitchen || kitchenstatus.AtLeast(oi.StatusCode(), kitchenstatus.Statuses.Completed.Name) {
		return false
	}
	completed := kitchenstatus.Statuses.Completed.Name
	oi.KitchenStatus = &completed
	oi.UpdatedAt = time.Now()
	return true
}

// ReadyOrDone reports whether the item no longer blocks order completion.
func (oi *OrderItem) ReadyOrDone() bool {
	return kitchenstatus.AtLeast(oi.StatusCode(), kitchenstatus.Statuses.Ready.Name)
}
