package order

import (
	"context"
	"errors"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"

	"github.com/restobarhq/restobar/pkg/enums/kitchenstatus"
	"github.com/restobarhq/restobar/pkg/event"
	"github.com/restobarhq/restobar/pkg/watermark"
	"github.com/restobarhq/restobar/services/pos/internal/catalog"
)

const orderCounterName = "orders"

// CartLine is one submitted cart entry. UnitPrice is the price as quoted
// by the client and is used unverified, preserving the original trust
// boundary; the catalog is consulted only for the name/category snapshot
// and the stock check.
type CartLine struct {
	ItemID    uuid.UUID `json:"item_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Notes     string    `json:"notes,omitempty"`
}

type DiscountInput struct {
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
}

type SubmitInput struct {
	Lines           []CartLine     `json:"lines"`
	Type            string         `json:"type"`
	Customer        string         `json:"customer"`
	RoomNumber      string         `json:"room_number,omitempty"`
	PeopleCount     int            `json:"people_count"`
	CardsPresented  int            `json:"cards_presented"`
	Discount        *DiscountInput `json:"discount,omitempty"`
	PaymentMethodID uuid.UUID      `json:"payment_method_id"`
}

// Intake validates a cart, prices it, decides kitchen routing and
// persists the order with its line items.
type Intake struct {
	repos      Repos
	categories catalog.CategoryRepo
	keeper     *catalog.StockKeeper
	marks      *watermark.Clock
	emitter
	serviceChargePct float64
	now              func() time.Time
}

func NewIntake(repos Repos, categories catalog.CategoryRepo, keeper *catalog.StockKeeper, marks *watermark.Clock, publisher events.Publisher, serviceChargePct float64, logger apt.Logger) *Intake {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Intake{
		repos:            repos,
		categories:       categories,
		keeper:           keeper,
		marks:            marks,
		emitter:          emitter{publisher: publisher, logger: logger},
		serviceChargePct: serviceChargePct,
		now:              time.Now,
	}
}

type resolvedLine struct {
	line    CartLine
	item    *catalog.Item
	kitchen bool
}

// Submit runs the full intake pipeline: validation, pricing, kitchen
// detection, persistence, stock decrement and the watermark bump. No
// partial order is ever visible: a failure after any step undoes the
// steps before it.
func (s *Intake) Submit(ctx context.Context, in SubmitInput) (*Order, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	resolved, err := s.resolveLines(ctx, in.Lines)
	if err != nil {
		return nil, err
	}

	hasKitchen := false
	subtotal := 0.0
	for _, rl := range resolved {
		subtotal += rl.line.UnitPrice * float64(rl.line.Quantity)
		if rl.kitchen {
			hasKitchen = true
		}
	}

	discountKind, discountValue := DiscountNone, 0.0
	if in.Discount != nil {
		discountKind, discountValue = in.Discount.Kind, in.Discount.Value
	}
	chargePct := 0.0
	if in.Type == TypeHotel {
		chargePct = s.serviceChargePct
	}

	bill, err := ComputeBill(subtotal, in.PeopleCount, in.CardsPresented, discountKind, discountValue, chargePct)
	if err != nil {
		return nil, err
	}

	// The decrement is the authoritative stock check: a conditional
	// update that fails instead of going negative, closing the
	// check-then-act race between concurrent submissions.
	decremented, err := s.decrementStock(ctx, resolved)
	if err != nil {
		return nil, err
	}

	o, orderItems, err := s.buildOrder(ctx, in, resolved, bill, hasKitchen)
	if err != nil {
		s.restoreStock(ctx, decremented)
		return nil, err
	}

	if err := s.persist(ctx, o, orderItems); err != nil {
		s.restoreStock(ctx, decremented)
		return nil, err
	}

	s.marks.Orders.Bump()
	if len(decremented) > 0 {
		s.keeper.Touch(ctx)
	}
	s.orderEvent(ctx, o, event.EventOrderCreated)

	s.logger.Info("order submitted",
		"order_id", o.ID.String(),
		"number", o.Number,
		"total", o.Total,
		"kitchen", o.HasKitchenItems,
	)

	return o, nil
}

func (s *Intake) validate(ctx context.Context, in SubmitInput) error {
	if len(in.Lines) == 0 {
		return ErrEmptyCart
	}
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return ErrQuantityInvalid
		}
		if line.UnitPrice < 0 {
			return ErrPriceInvalid
		}
	}

	if in.PaymentMethodID == uuid.Nil {
		return ErrInvalidPaymentMethod
	}
	exists, err := s.repos.Payments.Exists(ctx, in.PaymentMethodID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrInvalidPaymentMethod
	}

	return nil
}

func (s *Intake) resolveLines(ctx context.Context, lines []CartLine) ([]resolvedLine, error) {
	resolved := make([]resolvedLine, 0, len(lines))
	for _, line := range lines {
		ok, item, err := s.keeper.CheckAvailable(ctx, line.ItemID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, ErrUnknownItem
		}
		if !item.Available {
			return nil, ErrItemUnavailable
		}
		if !ok {
			return nil, &InsufficientStockError{
				ItemID:    item.ID,
				Name:      item.Name,
				Requested: line.Quantity,
				Available: item.StockAvailable(),
			}
		}

		category, err := s.categories.Get(ctx, item.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrInvalidCategory
		}

		resolved = append(resolved, resolvedLine{
			line:    line,
			item:    item,
			kitchen: category.IsKitchen,
		})
	}
	return resolved, nil
}

type decrementedLine struct {
	itemID uuid.UUID
	qty    int
}

func (s *Intake) decrementStock(ctx context.Context, resolved []resolvedLine) ([]decrementedLine, error) {
	var applied []decrementedLine
	for _, rl := range resolved {
		if !rl.item.Tracked() {
			continue
		}
		if _, err := s.keeper.Decrement(ctx, rl.item, rl.line.Quantity); err != nil {
			s.restoreStock(ctx, applied)
			if errors.Is(err, catalog.ErrInsufficientStock) {
				available := rl.item.StockAvailable()
				if _, live, liveErr := s.keeper.CheckAvailable(ctx, rl.item.ID, 0); liveErr == nil && live != nil {
					available = live.StockAvailable()
				}
				return nil, &InsufficientStockError{
					ItemID:    rl.item.ID,
					Name:      rl.item.Name,
					Requested: rl.line.Quantity,
					Available: available,
				}
			}
			return nil, err
		}
		applied = append(applied, decrementedLine{itemID: rl.item.ID, qty: rl.line.Quantity})
	}
	return applied, nil
}

func (s *Intake) restoreStock(ctx context.Context, applied []decrementedLine) {
	for _, d := range applied {
		if err := s.keeper.Restore(ctx, d.itemID, d.qty); err != nil {
			s.logger.Error("cannot restore stock after failed submission", "item_id", d.itemID.String(), "qty", d.qty, "error", err)
		}
	}
}

func (s *Intake) buildOrder(ctx context.Context, in SubmitInput, resolved []resolvedLine, bill Bill, hasKitchen bool) (*Order, []*OrderItem, error) {
	seq, err := s.repos.Counters.Next(ctx, orderCounterName)
	if err != nil {
		return nil, nil, err
	}

	o := NewOrder()
	o.Number = FormatNumber(seq)
	o.Type = in.Type
	if o.Type == "" {
		o.Type = TypeDineIn
	}
	o.Customer = in.Customer
	o.RoomNumber = in.RoomNumber
	o.PeopleCount = in.PeopleCount
	o.CardsPresented = in.CardsPresented
	o.PaymentMethod = in.PaymentMethodID
	o.Subtotal = bill.Subtotal
	o.CardDiscount = bill.CardDiscount
	o.ManualDiscount = bill.ManualDiscount
	o.ServiceCharge = bill.ServiceCharge
	o.Total = bill.Total
	o.HasKitchenItems = hasKitchen
	o.BeforeCreate()

	if hasKitchen {
		o.SetKitchenStatus(kitchenstatus.Statuses.Pending.Name)
	} else {
		// Nothing to prepare: walk-up sales complete immediately.
		o.Complete()
	}

	items := make([]*OrderItem, 0, len(resolved))
	for _, rl := range resolved {
		item := NewOrderItem()
		item.OrderID = o.ID
		item.ItemID = rl.item.ID
		item.CategoryID = rl.item.CategoryID
		item.Name = rl.item.Name
		item.Quantity = rl.line.Quantity
		item.UnitPrice = rl.line.UnitPrice
		item.LineTotal = roundLineTotal(rl.line.UnitPrice, rl.line.Quantity)
		item.Notes = rl.line.Notes
		if rl.kitchen {
			item.RouteToKitchen()
		}
		item.BeforeCreate()
		items = append(items, item)
	}

	return o, items, nil
}

func (s *Intake) persist(ctx context.Context, o *Order, items []*OrderItem) error {
	if err := s.repos.Orders.Create(ctx, o); err != nil {
		return err
	}
	if err := s.repos.OrderItems.BulkCreate(ctx, items); err != nil {
		// No multi-document transactions here: compensate by removing
		// whatever landed so no partial order is ever visible.
		if cleanupErr := s.repos.OrderItems.DeleteByOrder(ctx, o.ID); cleanupErr != nil {
			s.logger.Error("cannot clean up order items after failed submission", "order_id", o.ID.String(), "error", cleanupErr)
		}
		if cleanupErr := s.repos.Orders.Delete(ctx, o.ID); cleanupErr != nil {
			s.logger.Error("cannot clean up order after failed submission", "order_id", o.ID.String(), "error", cleanupErr)
		}
		return err
	}
	return nil
}

func roundLineTotal(unitPrice float64, qty int) float64 {
	return round2(unitPrice * float64(qty))
}
