package kitchen

import (
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/restobarhq/restobar/pkg/watermark"
	"github.com/restobarhq/restobar/services/pos/internal/order"
)

type Handler struct {
	cache  *ActiveOrderCache
	repos  order.Repos
	marks  *watermark.Clock
	config *apt.Config
	logger apt.Logger
	tlm    *telemetry.HTTP
	now    func() time.Time
}

func NewHandler(cache *ActiveOrderCache, repos order.Repos, marks *watermark.Clock, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		cache:  cache,
		repos:  repos,
		marks:  marks,
		config: config,
		logger: logger,
		tlm:    telemetry.NewHTTP(),
		now:    time.Now,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/kitchen", func(r chi.Router) {
		r.Get("/queue", h.GetQueue)
		r.Get("/queue/new", h.GetNewOrders)
	})
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", apt.RequestIDFrom(r.Context()))
}

// QueueResponse carries the projected queue together with the orders
// watermark so displays can switch to the cheap poll endpoint afterwards.
type QueueResponse struct {
	Watermark int64        `json:"watermark"`
	Entries   []QueueEntry `json:"entries"`
}

func (h *Handler) GetQueue(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetQueue")
	defer finish()

	orders, items := h.cache.Snapshot()
	entries := BuildQueue(orders, items, h.now())

	apt.Respond(w, http.StatusOK, &QueueResponse{
		Watermark: h.marks.Orders.Load(),
		Entries:   entries,
	}, nil)
}

// NewOrdersResponse lists kitchen-relevant orders placed after the
// client's cursor, old to new.
type NewOrdersResponse struct {
	Since   time.Time    `json:"since"`
	Entries []QueueEntry `json:"entries"`
}

// GetNewOrders returns queue entries for orders placed after the since
// cursor. It reads through the repository, not the cache, so a display
// recovering from a long disconnect sees every order it missed.
func (h *Handler) GetNewOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetNewOrders")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	sinceStr := r.URL.Query().Get("since")
	if sinceStr == "" {
		apt.RespondError(w, http.StatusBadRequest, "Missing since parameter")
		return
	}
	since, err := time.Parse(time.RFC3339, sinceStr)
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid since parameter, expected RFC3339")
		return
	}

	orders, err := h.repos.Orders.ListCreatedAfter(ctx, since)
	if err != nil {
		log.Error("cannot list new orders", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve new orders")
		return
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	itemsByOrder := make(map[string][]*order.OrderItem, len(orders))
	if len(ids) > 0 {
		items, err := h.repos.OrderItems.ListByOrders(ctx, ids)
		if err != nil {
			log.Error("cannot list new order items", "error", err)
			apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve new orders")
			return
		}
		for _, item := range items {
			itemsByOrder[item.OrderID.String()] = append(itemsByOrder[item.OrderID.String()], item)
		}
	}

	apt.Respond(w, http.StatusOK, &NewOrdersResponse{
		Since:   since,
		Entries: BuildQueue(orders, itemsByOrder, h.now()),
	}, nil)
}
