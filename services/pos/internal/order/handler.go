package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	intake  *Intake
	machine *StateMachine
	repos   Repos
	config  *apt.Config
	logger  apt.Logger
	tlm     *telemetry.HTTP
}

func NewHandler(intake *Intake, machine *StateMachine, repos Repos, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		intake:  intake,
		machine: machine,
		repos:   repos,
		config:  config,
		logger:  logger,
		tlm:     telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.SubmitOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
		r.Post("/{id}/start", h.StartOrder)
		r.Post("/{id}/ready", h.ReadyOrder)
		r.Post("/{id}/kitchen-ready", h.KitchenReady)
		r.Post("/{id}/complete", h.CompleteOrder)
		r.Post("/{id}/cancel", h.CancelOrder)
	})

	r.Route("/order-items", func(r chi.Router) {
		r.Patch("/{id}/start", h.StartItem)
		r.Patch("/{id}/ready", h.ReadyItem)
	})

	r.Get("/payment-methods", h.ListPaymentMethods)
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", apt.RequestIDFrom(r.Context()))
}

func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SubmitOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req SubmitInput
	if !h.decodePayload(w, r, &req, log) {
		return
	}

	o, err := h.intake.Submit(ctx, req)
	if err != nil {
		h.respondSubmitError(w, log, err)
		return
	}

	links := apt.RESTfulLinksFor(o)
	apt.Respond(w, http.StatusCreated, o, links)
}

// OrderResponse bundles an order with its line items for the detail view.
type OrderResponse struct {
	*Order
	Items []*OrderItem `json:"items"`
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	o, err := h.repos.Orders.Get(ctx, id)
	if err != nil {
		log.Error("error loading order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if o == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	items, err := h.repos.OrderItems.ListByOrder(ctx, o.ID)
	if err != nil {
		log.Error("error loading order items", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve order items")
		return
	}

	links := apt.RESTfulLinksFor(o)
	apt.RespondSuccess(w, &OrderResponse{Order: o, Items: items}, links...)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrders")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var orders []*Order
	var err error
	if r.URL.Query().Get("active") == "true" {
		orders, err = h.repos.Orders.ListActive(ctx)
	} else {
		orders, err = h.repos.Orders.List(ctx)
	}
	if err != nil {
		log.Error("cannot list orders", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	apt.RespondCollection(w, orders, "order")
}

func (h *Handler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListPaymentMethods")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	methods, err := h.repos.Payments.List(ctx)
	if err != nil {
		log.Error("cannot list payment methods", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve payment methods")
		return
	}

	apt.RespondCollection(w, methods, "payment-method")
}

func (h *Handler) StartOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.StartOrder")
	defer finish()
	h.orderTransition(w, r, h.machine.StartOrder)
}

func (h *Handler) ReadyOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ReadyOrder")
	defer finish()
	h.orderTransition(w, r, h.machine.ReadyOrder)
}

func (h *Handler) KitchenReady(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.KitchenReady")
	defer finish()
	h.orderTransition(w, r, h.machine.MarkOrderReady)
}

func (h *Handler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CompleteOrder")
	defer finish()
	h.orderTransition(w, r, h.machine.CompleteOrder)
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CancelOrder")
	defer finish()
	h.orderTransition(w, r, h.machine.CancelOrder)
}

func (h *Handler) orderTransition(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) (*Order, error)) {
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	o, err := op(ctx, id)
	if err != nil {
		h.respondTransitionError(w, log, id, err)
		return
	}

	links := apt.RESTfulLinksFor(o)
	apt.RespondSuccess(w, o, links...)
}

func (h *Handler) StartItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.StartItem")
	defer finish()
	h.itemTransition(w, r, h.machine.StartItem)
}

func (h *Handler) ReadyItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ReadyItem")
	defer finish()
	h.itemTransition(w, r, h.machine.ReadyItem)
}

// ItemTransitionResponse returns the moved item together with the fresh
// order aggregate so kitchen displays update in one round trip.
type ItemTransitionResponse struct {
	Item  *OrderItem `json:"item"`
	Order *Order     `json:"order"`
}

func (h *Handler) itemTransition(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) (*Order, *OrderItem, error)) {
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	o, item, err := op(ctx, id)
	if err != nil {
		h.respondTransitionError(w, log, id, err)
		return
	}

	apt.RespondSuccess(w, &ItemTransitionResponse{Item: item, Order: o})
}

func (h *Handler) respondSubmitError(w http.ResponseWriter, log apt.Logger, err error) {
	var stockErr *InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		apt.Respond(w, http.StatusConflict, map[string]interface{}{
			"error":     stockErr.Error(),
			"item_id":   stockErr.ItemID.String(),
			"name":      stockErr.Name,
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		}, nil)
	case errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrQuantityInvalid),
		errors.Is(err, ErrPriceInvalid),
		errors.Is(err, ErrInvalidPaymentMethod),
		errors.Is(err, ErrInvalidDiscount),
		errors.Is(err, ErrUnknownItem),
		errors.Is(err, ErrItemUnavailable),
		errors.Is(err, ErrInvalidCategory):
		apt.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error("cannot submit order", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not submit order")
	}
}

func (h *Handler) respondTransitionError(w http.ResponseWriter, log apt.Logger, id uuid.UUID, err error) {
	var gateErr *KitchenItemsNotReadyError
	switch {
	case errors.Is(err, ErrOrderNotFound), errors.Is(err, ErrOrderItemNotFound):
		apt.RespondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &gateErr):
		apt.Respond(w, http.StatusConflict, map[string]interface{}{
			"error":    gateErr.Error(),
			"order_id": gateErr.OrderID.String(),
			"blocking": gateErr.Blocking,
		}, nil)
	case errors.Is(err, ErrOrderTerminal), errors.Is(err, ErrInvalidTransition):
		apt.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotKitchenItem):
		apt.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error("transition failed", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not update order")
	}
}

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		log.Debug("missing id parameter")
		apt.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "id", idStr)
		apt.RespondError(w, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}

	return id, true
}

func (h *Handler) decodePayload(w http.ResponseWriter, r *http.Request, target interface{}, log apt.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return false
	}

	if err := json.Unmarshal(body, target); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return false
	}

	return true
}
