package balances

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
	"github.com/odyssey-erp/custom-accounting/internal/platform/httpx"
	"github.com/odyssey-erp/custom-accounting/internal/rbac"
	internalShared "github.com/odyssey-erp/custom-accounting/internal/shared"
)

// PermissionResolver resolves the permissions of the requesting user.
type PermissionResolver interface {
	Permissions(r *http.Request) (rbac.PermissionSet, error)
}

// Handler serves balance annotation for the account tree.
type Handler struct {
	logger  *slog.Logger
	service *Service
	perms   PermissionResolver
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service, perms PermissionResolver) *Handler {
	return &Handler{logger: logger, service: service, perms: perms}
}

// MountRoutes registers the balance route on the account tree router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/balances", h.annotate)
}

func (h *Handler) annotate(w http.ResponseWriter, r *http.Request) {
	set, err := h.perms.Permissions(r)
	if err != nil {
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}
	var in AnnotateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	in.CanReadGL = set.Has(internalShared.PermGLEntryView)
	annotations, err := h.service.Annotate(r.Context(), in)
	if err != nil {
		shared.RespondError(w, h.logger, "annotate balances", err)
		return
	}
	if annotations == nil {
		annotations = []Annotation{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"annotations": annotations})
}
