package poll

import (
	"net/http"
	"strconv"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/restobarhq/restobar/pkg/watermark"
	"github.com/restobarhq/restobar/services/pos/internal/catalog"
	"github.com/restobarhq/restobar/services/pos/internal/order"
)

// Handler serves the cheap change-detection polls. Clients hold the last
// watermark they saw; a poll with an unchanged watermark returns a tiny
// negative response and no snapshot is built.
type Handler struct {
	marks      *watermark.Clock
	items      catalog.ItemRepo
	categories catalog.CategoryRepo
	orders     order.OrderRepo
	orderItems order.OrderItemRepo
	config     *apt.Config
	logger     apt.Logger
	tlm        *telemetry.HTTP
}

func NewHandler(marks *watermark.Clock, items catalog.ItemRepo, categories catalog.CategoryRepo, orders order.OrderRepo, orderItems order.OrderItemRepo, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		marks:      marks,
		items:      items,
		categories: categories,
		orders:     orders,
		orderItems: orderItems,
		config:     config,
		logger:     logger,
		tlm:        telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/poll", func(r chi.Router) {
		r.Get("/menu", h.PollMenu)
		r.Get("/orders", h.PollOrders)
	})
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", apt.RequestIDFrom(r.Context()))
}

type unchangedResponse struct {
	Changed   bool  `json:"changed"`
	Watermark int64 `json:"watermark"`
}

// MenuPollResponse is returned when the menu moved past the client's
// watermark. The embedded snapshot already carries the new watermark.
type MenuPollResponse struct {
	Changed bool                  `json:"changed"`
	Menu    *catalog.MenuSnapshot `json:"menu"`
}

func (h *Handler) PollMenu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.PollMenu")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	seen, ok := h.parseWatermark(w, r)
	if !ok {
		return
	}

	if !h.marks.Menu.ChangedSince(seen) {
		apt.Respond(w, http.StatusOK, unchangedResponse{Watermark: h.marks.Menu.Load()}, nil)
		return
	}

	snapshot, err := catalog.BuildMenuSnapshot(ctx, h.categories, h.items, h.marks.Menu.Load())
	if err != nil {
		log.Error("cannot build menu snapshot", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not build menu")
		return
	}

	apt.Respond(w, http.StatusOK, &MenuPollResponse{Changed: true, Menu: snapshot}, nil)
}

// OrderPollEntry is one active order with its line items.
type OrderPollEntry struct {
	Order *order.Order       `json:"order"`
	Items []*order.OrderItem `json:"items"`
}

type OrdersPollResponse struct {
	Changed   bool             `json:"changed"`
	Watermark int64            `json:"watermark"`
	Orders    []OrderPollEntry `json:"orders"`
}

func (h *Handler) PollOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.PollOrders")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	seen, ok := h.parseWatermark(w, r)
	if !ok {
		return
	}

	if !h.marks.Orders.ChangedSince(seen) {
		apt.Respond(w, http.StatusOK, unchangedResponse{Watermark: h.marks.Orders.Load()}, nil)
		return
	}

	// Capture the watermark before reading so a write racing the read is
	// re-delivered on the next poll instead of lost.
	mark := h.marks.Orders.Load()

	active, err := h.orders.ListActive(ctx)
	if err != nil {
		log.Error("cannot list active orders", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	ids := make([]uuid.UUID, 0, len(active))
	for _, o := range active {
		ids = append(ids, o.ID)
	}
	itemsByOrder := make(map[uuid.UUID][]*order.OrderItem, len(active))
	if len(ids) > 0 {
		items, err := h.orderItems.ListByOrders(ctx, ids)
		if err != nil {
			log.Error("cannot list active order items", "error", err)
			apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
			return
		}
		for _, item := range items {
			itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
		}
	}

	entries := make([]OrderPollEntry, 0, len(active))
	for _, o := range active {
		entries = append(entries, OrderPollEntry{Order: o, Items: itemsByOrder[o.ID]})
	}

	apt.Respond(w, http.StatusOK, &OrdersPollResponse{
		Changed:   true,
		Watermark: mark,
		Orders:    entries,
	}, nil)
}

func (h *Handler) parseWatermark(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("watermark")
	if raw == "" {
		// No cursor yet. Below any counter value, including a fresh
		// zero, so the first poll always returns a snapshot.
		return -1, true
	}
	seen, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || seen < 0 {
		apt.RespondError(w, http.StatusBadRequest, "Invalid watermark parameter")
		return 0, false
	}
	return seen, true
}
