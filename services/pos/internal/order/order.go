package order

import (
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/restobarhq/restobar/pkg/enums/kitchenstatus"
	"github.com/restobarhq/restobar/pkg/enums/orderstatus"
)

const (
	TypeDineIn   = "dine_in"
	TypeTakeout  = "takeout"
	TypeDelivery = "delivery"
	TypeHotel    = "hotel"
)

// Order is a submitted sale. KitchenStatus is nil iff the order contains
// zero kitchen-category items; otherwise it tracks the aggregate state of
// the kitchen line items and converges with Status at "completed". Orders
// are never hard-deleted: completion and cancellation are terminal status
// values, not row removals.
type Order struct {
	ID       uuid.UUID `json:"id" bson:"_id"`
	Number   string    `json:"number" bson:"number"`
	Type     string    `json:"type" bson:"type"`
	Customer string    `json:"customer,omitempty" bson:"customer,omitempty"`
	// RoomNumber is set only for hotel orders, which carry a service
	// charge for room billing.
	RoomNumber     string    `json:"room_number,omitempty" bson:"room_number,omitempty"`
	PeopleCount    int       `json:"people_count" bson:"people_count"`
	CardsPresented int       `json:"cards_presented" bson:"cards_presented"`
	PaymentMethod  uuid.UUID `json:"payment_method_id" bson:"payment_method_id"`

	Subtotal       float64 `json:"subtotal" bson:"subtotal"`
	CardDiscount   float64 `json:"card_discount" bson:"card_discount"`
	ManualDiscount float64 `json:"manual_discount" bson:"manual_discount"`
	ServiceCharge  float64 `json:"service_charge" bson:"service_charge"`
	Total          float64 `json:"total" bson:"total"`

	Status          string  `json:"status" bson:"status"`
	KitchenStatus   *string `json:"kitchen_status,omitempty" bson:"kitchen_status,omitempty"`
	HasKitchenItems bool    `json:"has_kitchen_items" bson:"has_kitchen_items"`

	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}

func (o *Order) GetID() uuid.UUID {
	return o.ID
}

func (o *Order) ResourceType() string {
	return "order"
}

func (o *Order) SetID(id uuid.UUID) {
	o.ID = id
}

func NewOrder() *Order {
	return &Order{
		ID:     apt.GenerateNewID(),
		Status: orderstatus.Statuses.Pending.Name,
	}
}

func (o *Order) EnsureID() {
	if o.ID == uuid.Nil {
		o.ID = apt.GenerateNewID()
	}
}

func (o *Order) BeforeCreate() {
	o.EnsureID()
	o.CreatedAt = time.Now()
	o.UpdatedAt = time.Now()
}

func (o *Order) BeforeUpdate() {
	o.UpdatedAt = time.Now()
}

// Hotel reports whether this sale is billed to a room.
func (o *Order) Hotel() bool {
	return o.Type == TypeHotel
}

// Terminal reports whether the order has reached completed or cancelled.
func (o *Order) Terminal() bool {
	s := orderstatus.ByName(o.Status)
	return s != nil && s.Terminal()
}

func (o *Order) MarkAsPreparing() {
	o.Status = orderstatus.Statuses.Preparing.Name
	o.UpdatedAt = time.Now()
}

func (o *Order) MarkAsReady() {
	o.Status = orderstatus.Statuses.Ready.Name
	o.UpdatedAt = time.Now()
}

// Complete moves the order to its terminal completed state, converging
// the kitchen aggregate with it when kitchen items exist.
func (o *Order) Complete() {
	now := time.Now()
	o.Status = orderstatus.Statuses.Completed.Name
	if o.HasKitchenItems {
		completed := kitchenstatus.Statuses.Completed.Name
		o.KitchenStatus = &completed
	}
	o.CompletedAt = &now
	o.UpdatedAt = now
}

func (o *Order) Cancel() {
	o.Status = orderstatus.Statuses.Cancelled.Name
	o.UpdatedAt = time.Now()
}

// SetKitchenStatus overwrites the aggregate kitchen state. Only the state
// machine's recompute and force operations may call this.
func (o *Order) SetKitchenStatus(status string) {
	o.KitchenStatus = &status
	o.UpdatedAt = time.Now()
}

// KitchenStatusCode returns the aggregate kitchen status, or "" for
// orders without kitchen items.
func (o *Order) KitchenStatusCode() string {
	if o.KitchenStatus == nil {
		return ""
	}
	return *o.KitchenStatus
}

// FormatNumber renders a zero-padded display number for a sequence value,
// e.g. ORD-000042.
func FormatNumber(seq int64) string {
	return fmt.Sprintf("ORD-%06d", seq)
}
