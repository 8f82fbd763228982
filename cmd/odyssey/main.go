package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/accounts"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/balances"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/costcenters"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/periods"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/reports"
	"github.com/odyssey-erp/custom-accounting/internal/app"
	"github.com/odyssey-erp/custom-accounting/internal/auth"
	"github.com/odyssey-erp/custom-accounting/internal/masterdata"
	"github.com/odyssey-erp/custom-accounting/internal/masterdata/companies"
	"github.com/odyssey-erp/custom-accounting/internal/masterdata/locations"
	"github.com/odyssey-erp/custom-accounting/internal/observability"
	"github.com/odyssey-erp/custom-accounting/internal/platform/cache"
	"github.com/odyssey-erp/custom-accounting/internal/platform/db"
	"github.com/odyssey-erp/custom-accounting/internal/rbac"
	"github.com/odyssey-erp/custom-accounting/internal/shared"
	"github.com/odyssey-erp/custom-accounting/jobs"
	"github.com/odyssey-erp/custom-accounting/report"
)

func main() {
	_ = godotenv.Load()

	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, db.Options{MaxConns: 20, MinConns: 2, MaxConnIdleTime: 5 * time.Minute, ApplicationName: "accounting-api"})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.Redis())
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	fiscalStart, err := cfg.FiscalYearStart()
	if err != nil {
		logger.Error("parse fiscal year start", slog.Any("error", err))
		os.Exit(1)
	}

	sessionManager := shared.NewSessionManager(redisClient, "accounting_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	metrics := observability.NewMetrics()

	authService := auth.NewService(auth.NewRepository(dbpool))
	authHandler := auth.NewHandler(logger, authService, sessionManager, csrfManager)

	rbacService := rbac.NewService(dbpool)
	rbacMiddleware := rbac.Middleware{Service: rbacService, Logger: logger}

	companyService := companies.NewService(companies.NewRepository(dbpool))
	locationService := locations.NewService(locations.NewRepository(dbpool), companyService)
	masterDataHandler := masterdata.NewHandler(
		companies.NewHandler(logger, companyService),
		locations.NewHandler(logger, locationService),
		rbacMiddleware,
	)

	periodService := periods.NewService(periods.NewRepository(dbpool), &fiscalStart)

	accountService := accounts.NewService(accounts.NewStore(dbpool), companyService, periodService)
	accountService.WithRecorder(metrics)
	accountsHandler := accounts.NewHandler(logger, accountService, rbacMiddleware)

	balanceCache := cache.NewVersioned(redisClient, "balances", cfg.BalanceCacheTTL)
	balanceService := balances.NewService(balances.NewRepository(dbpool), companyService, balanceCache)
	balanceService.WithRecorder(metrics)
	balancesHandler := balances.NewHandler(logger, balanceService, rbacMiddleware)

	costCenterService := costcenters.NewService(costcenters.NewStore(dbpool), companyService)
	costCentersHandler := costcenters.NewHandler(logger, costCenterService)

	reportClient := report.NewClient(cfg.GotenbergURL)
	reportHandler := report.NewHandler(reportClient, logger)

	inquiryService := reports.NewService(reports.NewRepository(dbpool), periodService, cfg.DefaultCurrency)
	reportsHandler := reports.NewHandler(logger, inquiryService, reportClient)

	redisOpts := cfg.Redis().AsynqOpt()
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobClient, err := jobs.NewClient(redisOpts)
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, jobClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		CSRFManager:        csrfManager,
		AuthHandler:        authHandler,
		AccountsHandler:    accountsHandler,
		BalancesHandler:    balancesHandler,
		CostCentersHandler: costCentersHandler,
		ReportsHandler:     reportsHandler,
		MasterDataHandler:  masterDataHandler,
		PermissionsHandler: rbac.NewPermissionsHandler(logger, rbacService, rbacMiddleware),
		RBACMiddleware:     rbacMiddleware,
		ReportHandler:      reportHandler,
		JobHandler:         jobHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
