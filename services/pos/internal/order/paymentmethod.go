package order

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// PaymentMethod is a reference-table row (cash, card, room charge). The
// core only reads it to validate submissions.
type PaymentMethod struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (p *PaymentMethod) GetID() uuid.UUID {
	return p.ID
}

func (p *PaymentMethod) ResourceType() string {
	return "payment-method"
}

func (p *PaymentMethod) SetID(id uuid.UUID) {
	p.ID = id
}

func NewPaymentMethod() *PaymentMethod {
	return &PaymentMethod{
		ID:     apt.GenerateNewID(),
		Active: true,
	}
}

func (p *PaymentMethod) EnsureID() {
	if p.ID == uuid.Nil {
		p.ID = apt.GenerateNewID()
	}
}

func (p *PaymentMethod) BeforeCreate() {
	p.EnsureID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
}

func (p *PaymentMethod) BeforeUpdate() {
	p.UpdatedAt = time.Now()
}
