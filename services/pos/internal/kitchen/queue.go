package kitchen

import (
	"sort"
	"time"

	"github.com/restobarhq/restobar/pkg/enums/kitchenstatus"
	"github.com/restobarhq/restobar/services/pos/internal/order"
)

// UrgencyAfter is how long a kitchen line may sit pending before the
// queue flags it urgent.
const UrgencyAfter = 10 * time.Minute

// QueueLine is one kitchen item as the kitchen display shows it.
type QueueLine struct {
	OrderItemID string `json:"order_item_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
	Status      string `json:"status"`
	Urgent      bool   `json:"urgent"`
}

// QueueEntry is one active order on the kitchen display. Only kitchen
// lines appear; orders whose kitchen lines are all filtered away are
// dropped from the queue entirely.
type QueueEntry struct {
	OrderID       string      `json:"order_id"`
	Number        string      `json:"number"`
	Customer      string      `json:"customer,omitempty"`
	OrderType     string      `json:"order_type"`
	Hotel         bool        `json:"hotel"`
	RoomNumber    string      `json:"room_number,omitempty"`
	KitchenStatus string      `json:"kitchen_status"`
	PlacedAt      time.Time   `json:"placed_at"`
	Urgent        bool        `json:"urgent"`
	Lines         []QueueLine `json:"lines"`
}

// BuildQueue projects active orders and their items into the kitchen
// display ordering: oldest first. An entry is urgent while the order's
// kitchen status is still pending past the urgency window; an order
// already in preparation is never urgent even if individual lines lag.
func BuildQueue(orders []*order.Order, itemsByOrder map[string][]*order.OrderItem, now time.Time) []QueueEntry {
	entries := make([]QueueEntry, 0, len(orders))
	for _, o := range orders {
		if !o.HasKitchenItems || o.Terminal() {
			continue
		}

		items := itemsByOrder[o.ID.String()]
		lines := make([]QueueLine, 0, len(items))
		for _, item := range items {
			if !item.IsKitchen {
				continue
			}
			lines = append(lines, QueueLine{
				OrderItemID: item.ID.String(),
				Name:        item.Name,
				Quantity:    item.Quantity,
				Notes:       item.Notes,
				Status:      item.StatusCode(),
				Urgent:      lineIsUrgent(o, item, now),
			})
		}
		if len(lines) == 0 {
			continue
		}

		entries = append(entries, QueueEntry{
			OrderID:       o.ID.String(),
			Number:        o.Number,
			Customer:      o.Customer,
			OrderType:     o.Type,
			Hotel:         o.Hotel(),
			RoomNumber:    o.RoomNumber,
			KitchenStatus: o.KitchenStatusCode(),
			PlacedAt:      o.CreatedAt,
			Urgent:        entryIsUrgent(o, now),
			Lines:         lines,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].PlacedAt.Before(entries[j].PlacedAt)
	})
	return entries
}

func entryIsUrgent(o *order.Order, now time.Time) bool {
	if o.KitchenStatusCode() != kitchenstatus.Statuses.Pending.Name {
		return false
	}
	return now.Sub(o.CreatedAt) > UrgencyAfter
}

func lineIsUrgent(o *order.Order, item *order.OrderItem, now time.Time) bool {
	if item.StatusCode() != kitchenstatus.Statuses.Pending.Name {
		return false
	}
	return now.Sub(o.CreatedAt) > UrgencyAfter
}
