package costcenters

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
	"github.com/odyssey-erp/custom-accounting/internal/platform/httpx"
	internalShared "github.com/odyssey-erp/custom-accounting/internal/shared"
	"github.com/odyssey-erp/custom-accounting/internal/uischema"
)

// Handler serves the cost center tree endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers cost center tree routes. Creation is expected to be
// guarded by the caller with the cost center create permission.
func (h *Handler) MountRoutes(r chi.Router, create func(http.Handler) http.Handler) {
	if create == nil {
		create = func(next http.Handler) http.Handler { return next }
	}
	r.Get("/settings", h.settings)
	r.Get("/nodes", h.nodes)
	r.With(create).Post("/nodes", h.addNode)
}

func (h *Handler) settings(w http.ResponseWriter, r *http.Request) {
	defaults := internalShared.SessionFromContext(r.Context()).Defaults()
	company := r.URL.Query().Get("company")
	if company == "" {
		company = defaults.Company
	}
	httpx.JSON(w, http.StatusOK, TreeSettings(defaults.Company).ForViewer(nil, uischema.Values{"company": company}))
}

func (h *Handler) nodes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	isRoot, _ := strconv.ParseBool(q.Get("is_root"))
	nodes, err := h.service.Children(r.Context(), ChildrenQuery{
		Company: q.Get("company"),
		Parent:  q.Get("parent"),
		IsRoot:  isRoot,
	})
	if err != nil {
		shared.RespondError(w, h.logger, "cost center nodes", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"nodes": nodes})
}

func (h *Handler) addNode(w http.ResponseWriter, r *http.Request) {
	var in AddCostCenterInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	in.ActorID, _ = internalShared.CurrentUserID(r.Context())
	cc, err := h.service.AddCostCenter(r.Context(), in)
	if err != nil {
		shared.RespondError(w, h.logger, "add cost center", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, cc)
}
