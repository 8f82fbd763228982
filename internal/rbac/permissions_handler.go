package rbac

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/custom-accounting/internal/platform/httpx"
)

// PermissionsHandler exposes permission listings.
type PermissionsHandler struct {
	logger  *slog.Logger
	service *Service
	rbac    Middleware
}

// NewPermissionsHandler builds PermissionsHandler instance.
func NewPermissionsHandler(logger *slog.Logger, service *Service, rbac Middleware) *PermissionsHandler {
	return &PermissionsHandler{logger: logger, service: service, rbac: rbac}
}

// MountRoutes registers permission routes.
func (h *PermissionsHandler) MountRoutes(r chi.Router) {
	r.Get("/me", h.mine)
	r.Get("/", h.list)
}

func (h *PermissionsHandler) list(w http.ResponseWriter, r *http.Request) {
	if _, err := h.rbac.Permissions(r); err != nil {
		h.respondPrincipalError(w, err)
		return
	}
	perms, err := h.service.ListPermissions(r.Context())
	if err != nil {
		h.logger.Error("list permissions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if perms == nil {
		perms = []Permission{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"permissions": perms})
}

func (h *PermissionsHandler) mine(w http.ResponseWriter, r *http.Request) {
	set, err := h.rbac.Permissions(r)
	if err != nil {
		h.respondPrincipalError(w, err)
		return
	}
	names := set.Names()
	sort.Strings(names)
	httpx.JSON(w, http.StatusOK, map[string]any{"permissions": names})
}

func (h *PermissionsHandler) respondPrincipalError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNoPrincipal) {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	h.logger.Error("resolve permissions", slog.Any("error", err))
	httpx.RespondError(w, err)
}
