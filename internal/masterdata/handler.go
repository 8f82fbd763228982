package masterdata

import (
	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/custom-accounting/internal/masterdata/companies"
	"github.com/odyssey-erp/custom-accounting/internal/masterdata/locations"
	"github.com/odyssey-erp/custom-accounting/internal/rbac"
	"github.com/odyssey-erp/custom-accounting/internal/shared"
)

// Handler mounts the company and location endpoints.
type Handler struct {
	companies *companies.Handler
	locations *locations.Handler
	rbac      rbac.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(companies *companies.Handler, locations *locations.Handler, rbac rbac.Middleware) *Handler {
	return &Handler{companies: companies, locations: locations, rbac: rbac}
}

// MountRoutes registers master data routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermAccountView, shared.PermCostCenterView))
		r.Get("/companies", h.companies.List)
		r.Get("/companies/{name}/context", h.companies.ShowContext)
		r.Get("/locations", h.locations.List)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAll(shared.PermLocationCreate))
		r.Post("/locations", h.locations.Create)
	})
}
