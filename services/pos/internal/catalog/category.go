package catalog

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Category groups catalog items. IsKitchen marks categories whose items
// require kitchen preparation; it is the sole signal deciding whether an
// order is routed to the kitchen display.
type Category struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Active    bool      `json:"active" bson:"active"`
	IsKitchen bool      `json:"is_kitchen" bson:"is_kitchen"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (c *Category) GetID() uuid.UUID {
	return c.ID
}

func (c *Category) ResourceType() string {
	return "category"
}

func (c *Category) SetID(id uuid.UUID) {
	c.ID = id
}

func NewCategory() *Category {
	return &Category{
		ID:     apt.GenerateNewID(),
		Active: true,
	}
}

func (c *Category) EnsureID() {
	if c.ID == uuid.Nil {
		c.ID = apt.GenerateNewID()
	}
}

func (c *Category) BeforeCreate() {
	c.EnsureID()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
}

func (c *Category) BeforeUpdate() {
	c.UpdatedAt = time.Now()
}
