// AngelaMos | 2026
// handler.go

package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/ntandostore/internal/catalog"
	"github.com/carterperez-dev/ntandostore/internal/core"
)

type Handler struct {
	service   *Service
	catalog   *catalog.Catalog
	validator *validator.Validate
}

func NewHandler(service *Service, cat *catalog.Catalog) *Handler {
	return &Handler{
		service:   service,
		catalog:   cat,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	csrf func(http.Handler) http.Handler,
) {
	r.Get("/services", h.ListServices)
	r.Get("/services/{serviceID}", h.GetService)
	r.Get("/track/{trackingNumber}", h.Track)

	r.Group(func(r chi.Router) {
		r.Use(csrf)
		r.Post("/submit_order", h.Submit)
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, csrf func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/admin/orders", h.ListOrders)

		r.Group(func(r chi.Router) {
			r.Use(csrf)
			r.Post("/admin/update_order_status/{orderID}", h.UpdateStatus)
		})
	})
}

func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.catalog.List())
}

func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "serviceID")

	entry, ok := h.catalog.Get(serviceID)
	if !ok {
		core.NotFound(w, "service")
		return
	}

	core.OK(w, entry)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	order, err := h.service.Submit(r.Context(), req)
	if err != nil {
		if _, ok := core.AsAppError(err); ok {
			core.JSONError(w, err)
			return
		}
		if errors.Is(err, core.ErrConflict) {
			core.Conflict(w, "could not assign a tracking number, try again")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToOrderResponse(order))
}

// Track is the public lookup: customers see status and amount, never the
// contact details stored with the order.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	trackingNumber := chi.URLParam(r, "trackingNumber")

	order, err := h.service.GetByTrackingNumber(r.Context(), trackingNumber)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "order")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTrackingResponse(order))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	params := ListOrdersParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Status:   r.URL.Query().Get("status"),
	}

	orders, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToOrderResponseList(orders),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "order")
			return
		}
		if _, ok := core.AsAppError(err); ok {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToOrderResponse(order))
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
