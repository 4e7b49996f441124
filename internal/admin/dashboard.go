// AngelaMos | 2026
// dashboard.go

package admin

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/ntandostore/internal/asset"
	"github.com/carterperez-dev/ntandostore/internal/core"
	"github.com/carterperez-dev/ntandostore/internal/order"
)

const recentOrderCount = 10

// DashboardHandler aggregates the back-office landing view: order stats,
// the most recent orders, and the uploaded assets.
type DashboardHandler struct {
	orders *order.Service
	assets *asset.Service
}

func NewDashboardHandler(
	orders *order.Service,
	assets *asset.Service,
) *DashboardHandler {
	return &DashboardHandler{orders: orders, assets: assets}
}

func (h *DashboardHandler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/admin/dashboard", h.Dashboard)
	})
}

type DashboardResponse struct {
	Stats        *order.Stats          `json:"stats"`
	RecentOrders []order.OrderResponse `json:"recent_orders"`
	Gallery      []asset.Logo          `json:"gallery"`
	CompanyLogo  *asset.CompanyLogo    `json:"company_logo,omitempty"`
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.orders.Stats(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	recent, _, err := h.orders.List(ctx, order.ListOrdersParams{
		Page:     1,
		PageSize: recentOrderCount,
	})
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	gallery, err := h.assets.ListGallery(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	companyLogo, err := h.assets.ActiveCompanyLogo(ctx)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, DashboardResponse{
		Stats:        stats,
		RecentOrders: order.ToOrderResponseList(recent),
		Gallery:      gallery,
		CompanyLogo:  companyLogo,
	})
}
