package catalog

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	items      ItemRepo
	categories CategoryRepo
	keeper     *StockKeeper
	config     *apt.Config
	logger     apt.Logger
	tlm        *telemetry.HTTP
}

func NewHandler(items ItemRepo, categories CategoryRepo, keeper *StockKeeper, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		items:      items,
		categories: categories,
		keeper:     keeper,
		config:     config,
		logger:     logger,
		tlm:        telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/menu", h.GetMenu)

	r.Route("/items", func(r chi.Router) {
		r.Get("/", h.ListItems)
		r.Get("/{id}", h.GetItem)
		r.Patch("/{id}/price", h.UpdatePrice)
		r.Patch("/{id}/availability", h.UpdateAvailability)
		r.Patch("/{id}/stock", h.UpdateStock)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Patch("/{id}/kitchen", h.UpdateKitchenFlag)
	})
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", apt.RequestIDFrom(r.Context()))
}

func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetMenu")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	snapshot, err := BuildMenuSnapshot(ctx, h.categories, h.items, h.keeper.marks.Menu.Load())
	if err != nil {
		log.Error("cannot build menu snapshot", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not build menu")
		return
	}

	apt.Respond(w, http.StatusOK, snapshot, nil)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListItems")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	items, err := h.items.List(ctx)
	if err != nil {
		log.Error("cannot list items", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve items")
		return
	}

	apt.RespondCollection(w, items, "item")
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetItem")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	item, err := h.items.Get(ctx, id)
	if err != nil {
		log.Error("error loading item", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Item not found")
		return
	}

	if item == nil {
		apt.RespondError(w, http.StatusNotFound, "Item not found")
		return
	}

	links := apt.RESTfulLinksFor(item)
	apt.RespondSuccess(w, item, links...)
}

type ItemPriceRequest struct {
	Price float64 `json:"price"`
}

type ItemAvailabilityRequest struct {
	Available bool `json:"available"`
}

type ItemStockRequest struct {
	// Stock null means untracked/unlimited from now on.
	Stock             *int `json:"stock"`
	LowStockThreshold *int `json:"low_stock_threshold,omitempty"`
}

type CategoryKitchenRequest struct {
	IsKitchen bool `json:"is_kitchen"`
}

func (h *Handler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdatePrice")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req ItemPriceRequest
	if !h.decodePayload(w, r, &req, log) {
		return
	}
	if req.Price < 0 {
		apt.RespondError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	item, err := h.items.Get(ctx, id)
	if err != nil || item == nil {
		apt.RespondError(w, http.StatusNotFound, "Item not found")
		return
	}

	item.Price = req.Price
	item.BeforeUpdate()

	if err := h.items.Save(ctx, item); err != nil {
		log.Error("cannot update item price", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not update item")
		return
	}

	h.keeper.Touch(ctx)
	apt.RespondSuccess(w, item)
}

func (h *Handler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateAvailability")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req ItemAvailabilityRequest
	if !h.decodePayload(w, r, &req, log) {
		return
	}

	item, err := h.items.Get(ctx, id)
	if err != nil || item == nil {
		apt.RespondError(w, http.StatusNotFound, "Item not found")
		return
	}

	item.Available = req.Available
	item.BeforeUpdate()

	if err := h.items.Save(ctx, item); err != nil {
		log.Error("cannot update item availability", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not update item")
		return
	}

	h.keeper.Touch(ctx)
	apt.RespondSuccess(w, item)
}

func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateStock")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req ItemStockRequest
	if !h.decodePayload(w, r, &req, log) {
		return
	}
	if req.Stock != nil && *req.Stock < 0 {
		apt.RespondError(w, http.StatusBadRequest, "stock must not be negative")
		return
	}

	item, err := h.items.Get(ctx, id)
	if err != nil || item == nil {
		apt.RespondError(w, http.StatusNotFound, "Item not found")
		return
	}

	item.Stock = req.Stock
	if req.LowStockThreshold != nil {
		item.LowStockThreshold = *req.LowStockThreshold
	}
	item.BeforeUpdate()

	if err := h.items.Save(ctx, item); err != nil {
		log.Error("cannot update item stock", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not update item")
		return
	}

	h.keeper.Touch(ctx)
	apt.RespondSuccess(w, item)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListCategories")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	categories, err := h.categories.List(ctx)
	if err != nil {
		log.Error("cannot list categories", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve categories")
		return
	}

	apt.RespondCollection(w, categories, "category")
}

func (h *Handler) UpdateKitchenFlag(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateKitchenFlag")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req CategoryKitchenRequest
	if !h.decodePayload(w, r, &req, log) {
		return
	}

	category, err := h.categories.Get(ctx, id)
	if err != nil || category == nil {
		apt.RespondError(w, http.StatusNotFound, "Category not found")
		return
	}

	category.IsKitchen = req.IsKitchen
	category.BeforeUpdate()

	if err := h.categories.Save(ctx, category); err != nil {
		log.Error("cannot update category", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not update category")
		return
	}

	h.keeper.Touch(ctx)
	apt.RespondSuccess(w, category)
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
