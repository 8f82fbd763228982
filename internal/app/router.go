package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/accounts"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/balances"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/costcenters"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/reports"
	auth "github.com/odyssey-erp/custom-accounting/internal/auth"
	"github.com/odyssey-erp/custom-accounting/internal/masterdata"
	"github.com/odyssey-erp/custom-accounting/internal/observability"
	"github.com/odyssey-erp/custom-accounting/internal/rbac"
	"github.com/odyssey-erp/custom-accounting/internal/shared"
	"github.com/odyssey-erp/custom-accounting/jobs"
	"github.com/odyssey-erp/custom-accounting/report"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	SessionManager     *shared.SessionManager
	CSRFManager        *shared.CSRFManager
	AuthHandler        *auth.Handler
	AccountsHandler    *accounts.Handler
	BalancesHandler    *balances.Handler
	CostCentersHandler *costcenters.Handler
	ReportsHandler     *reports.Handler
	MasterDataHandler  *masterdata.Handler
	PermissionsHandler *rbac.PermissionsHandler
	RBACMiddleware     rbac.Middleware

	ReportHandler *report.Handler
	JobHandler    *jobs.Handler
	Metrics       *observability.Metrics
}

// NewRouter constructs the chi.Router with the service defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/accounting", func(r chi.Router) {
		if params.AccountsHandler != nil {
			r.Route("/tree/account", func(r chi.Router) {
				r.Use(params.RBACMiddleware.RequireAny(shared.PermAccountView))
				params.AccountsHandler.MountRoutes(r)
				if params.BalancesHandler != nil {
					params.BalancesHandler.MountRoutes(r)
				}
			})
		}
		if params.CostCentersHandler != nil {
			r.Route("/tree/cost-center", func(r chi.Router) {
				r.Use(params.RBACMiddleware.RequireAny(shared.PermCostCenterView))
				params.CostCentersHandler.MountRoutes(r, params.RBACMiddleware.RequireAll(shared.PermCostCenterCreate))
			})
		}
		if params.ReportsHandler != nil {
			r.Route("/reports/account-inquiry", func(r chi.Router) {
				r.Use(params.RBACMiddleware.RequireAny(shared.PermReportAccountInquiry))
				params.ReportsHandler.MountRoutes(r)
			})
		}
	})

	if params.MasterDataHandler != nil {
		r.Route("/masterdata", params.MasterDataHandler.MountRoutes)
	}
	if params.PermissionsHandler != nil {
		r.Route("/permissions", params.PermissionsHandler.MountRoutes)
	}
	if params.ReportHandler != nil {
		r.Route("/report", params.ReportHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", func(r chi.Router) {
			params.JobHandler.MountRoutes(r, params.RBACMiddleware.RequireAny(shared.PermGLEntryView))
		})
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
