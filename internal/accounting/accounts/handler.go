package accounts

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
	"github.com/odyssey-erp/custom-accounting/internal/platform/httpx"
	"github.com/odyssey-erp/custom-accounting/internal/rbac"
	internalShared "github.com/odyssey-erp/custom-accounting/internal/shared"
	"github.com/odyssey-erp/custom-accounting/internal/uischema"
)

// PermissionResolver resolves the permissions of the requesting user.
type PermissionResolver interface {
	Permissions(r *http.Request) (rbac.PermissionSet, error)
}

// Handler serves the chart of accounts tree endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	perms   PermissionResolver
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service, perms PermissionResolver) *Handler {
	return &Handler{logger: logger, service: service, perms: perms}
}

// MountRoutes registers tree routes relative to the account tree prefix.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/settings", h.settings)
	r.Get("/company-context", h.companyContext)
	r.Get("/nodes", h.nodes)
	r.Post("/nodes", h.addNode)
	r.Get("/ledger", h.ledger)
}

func (h *Handler) permissions(w http.ResponseWriter, r *http.Request) (rbac.PermissionSet, bool) {
	set, err := h.perms.Permissions(r)
	if err != nil {
		h.logger.Warn("resolve permissions", slog.Any("error", err))
		httpx.RespondError(w, httpx.ErrForbidden)
		return nil, false
	}
	return set, true
}

func (h *Handler) settings(w http.ResponseWriter, r *http.Request) {
	set, ok := h.permissions(w, r)
	if !ok {
		return
	}
	defaults := internalShared.SessionFromContext(r.Context()).Defaults()
	company := r.URL.Query().Get("company")
	if company == "" {
		company = defaults.Company
	}
	httpx.JSON(w, http.StatusOK, TreeSettings(defaults.Company).ForViewer(set.Has, uischema.Values{"company": company}))
}

func (h *Handler) companyContext(w http.ResponseWriter, r *http.Request) {
	cc, err := h.service.CompanyContext(r.Context(), r.URL.Query().Get("company"))
	if err != nil {
		shared.RespondError(w, h.logger, "account tree company context", err)
		return
	}
	httpx.JSON(w, http.StatusOK, cc)
}

func (h *Handler) nodes(w http.ResponseWriter, r *http.Request) {
	set, ok := h.permissions(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	company := q.Get("company")
	parent := q.Get("parent")

	var (
		nodes []Node
		err   error
	)
	if deep, _ := strconv.ParseBool(q.Get("deep")); deep {
		depth, _ := strconv.Atoi(q.Get("depth"))
		nodes, err = h.service.Tree(r.Context(), company, parent, depth)
	} else {
		nodes, err = h.service.Children(r.Context(), ChildrenQuery{Company: company, Parent: parent})
	}
	if err != nil {
		shared.RespondError(w, h.logger, "account tree nodes", err)
		return
	}
	cc, err := h.service.CompanyContext(r.Context(), company)
	if err != nil {
		shared.RespondError(w, h.logger, "account tree nodes", err)
		return
	}
	DecorateActions(TreeSettings(""), nodes, cc, set.Has)
	httpx.JSON(w, http.StatusOK, map[string]any{"nodes": nodes})
}

func (h *Handler) addNode(w http.ResponseWriter, r *http.Request) {
	set, ok := h.permissions(w, r)
	if !ok {
		return
	}
	if !set.Has(internalShared.PermAccountCreate) {
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}
	var in AddAccountInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	in.ActorID, _ = internalShared.CurrentUserID(r.Context())
	acc, err := h.service.AddAccount(r.Context(), in, r.Header.Get(internalShared.IdempotencyHeader))
	if err != nil {
		shared.RespondError(w, h.logger, "add account", err)
		return
	}
	h.logger.Info("account created", slog.String("account", acc.Name), slog.String("company", acc.Company))
	httpx.JSON(w, http.StatusCreated, acc)
}

func (h *Handler) ledger(w http.ResponseWriter, r *http.Request) {
	set, ok := h.permissions(w, r)
	if !ok {
		return
	}
	if !set.Has(internalShared.PermGLEntryView) {
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}
	route, err := h.service.LedgerRoute(r.Context(), r.URL.Query().Get("company"), r.URL.Query().Get("value"))
	if err != nil {
		shared.RespondError(w, h.logger, "view ledger", err)
		return
	}
	httpx.JSON(w, http.StatusOK, route)
}
