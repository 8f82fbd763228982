package rbac

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/odyssey-erp/custom-accounting/internal/platform/httpx"
	"github.com/odyssey-erp/custom-accounting/internal/shared"
)

// ErrNoPrincipal indicates a request without an authenticated user.
var ErrNoPrincipal = errors.New("rbac: no authenticated user")

// PermissionSource returns the permissions granted to a user.
type PermissionSource interface {
	EffectivePermissions(ctx context.Context, userID int64) ([]string, error)
}

// Middleware guards accounting routes by the doctype permissions of the
// signed-in user. Anonymous requests get 401, missing grants get 403.
type Middleware struct {
	Service PermissionSource
	Logger  *slog.Logger
}

// Permissions resolves the permission set of the requesting user.
func (m Middleware) Permissions(r *http.Request) (PermissionSet, error) {
	userID, ok := shared.CurrentUserID(r.Context())
	if !ok {
		return nil, ErrNoPrincipal
	}
	granted, err := m.Service.EffectivePermissions(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	return NewPermissionSet(granted...), nil
}

// RequireAny passes requests whose user holds at least one of perms.
func (m Middleware) RequireAny(perms ...string) func(http.Handler) http.Handler {
	return m.guard("rbac require any", perms, PermissionSet.HasAny)
}

// RequireAll passes requests whose user holds every one of perms.
func (m Middleware) RequireAll(perms ...string) func(http.Handler) http.Handler {
	return m.guard("rbac require all", perms, PermissionSet.HasAll)
}

func (m Middleware) guard(op string, perms []string, allowed func(PermissionSet, ...string) bool) func(http.Handler) http.Handler {
	required := normalizePermissions(perms)
	return func(next http.Handler) http.Handler {
		if len(required) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			set, err := m.Permissions(r)
			switch {
			case errors.Is(err, ErrNoPrincipal):
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "Sign in to continue")
				return
			case err != nil:
				if m.Logger != nil {
					m.Logger.Error(op, slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			if !allowed(set, required...) {
				if m.Logger != nil {
					m.Logger.Debug(op+" denied", slog.String("path", r.URL.Path), slog.Any("required", required))
				}
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "Insufficient Permission")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func normalizePermissions(perms []string) []string {
	seen := make(map[string]struct{}, len(perms))
	normalized := make([]string, 0, len(perms))
	for _, p := range perms {
		p = strings.TrimSpace(strings.ToLower(p))
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		normalized = append(normalized, p)
	}
	return normalized
}
