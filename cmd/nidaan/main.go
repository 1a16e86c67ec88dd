package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/nidaan-his/nidaan-his/internal/admissions"
	"github.com/nidaan-his/nidaan-his/internal/app"
	"github.com/nidaan-his/nidaan-his/internal/billing"
	"github.com/nidaan-his/nidaan-his/internal/certificates"
	"github.com/nidaan-his/nidaan-his/internal/masterdata"
	"github.com/nidaan-his/nidaan-his/internal/masterdata/doctors"
	"github.com/nidaan-his/nidaan-his/internal/masterdata/labtests"
	"github.com/nidaan-his/nidaan-his/internal/masterdata/patients"
	"github.com/nidaan-his/nidaan-his/internal/masterdata/referrers"
	"github.com/nidaan-his/nidaan-his/internal/observability"
	"github.com/nidaan-his/nidaan-his/internal/platform/cache"
	"github.com/nidaan-his/nidaan-his/internal/platform/db"
	"github.com/nidaan-his/nidaan-his/internal/reports"
	"github.com/nidaan-his/nidaan-his/internal/shared"
	"github.com/nidaan-his/nidaan-his/jobs"
	"github.com/nidaan-his/nidaan-his/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	roles := shared.RoleMiddleware{Default: shared.Role(cfg.DefaultRole)}

	billingService := billing.NewService(billing.NewRepository(dbpool), nil)
	billingHandler := billing.NewHandler(logger, billingService, roles)

	patientService := patients.NewService(patients.NewRepository(dbpool))
	doctorService := doctors.NewService(doctors.NewRepository(dbpool))
	referrerService := referrers.NewService(referrers.NewRepository(dbpool))
	labTestService := labtests.NewService(labtests.NewRepository(dbpool))
	masterDataHandler := masterdata.NewHandler(logger, patientService, doctorService, referrerService, labTestService, roles)

	admissionService := admissions.NewService(admissions.NewRepository(dbpool), billingService, nil)
	admissionsHandler := admissions.NewHandler(logger, admissionService, roles)

	certificateService := certificates.NewService(certificates.NewStore(redisClient, cfg.Tenant), nil)
	certificatesHandler := certificates.NewHandler(logger, certificateService, roles)

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportService := reports.NewService(billingService, reportCache)
	reportsHandler := reports.NewHandler(logger, reportService)

	renderer := report.NewClient(cfg.GotenbergURL)
	printHandler := report.NewHandler(logger, renderer, billingService, certificateService, patientService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		BillingHandler:      billingHandler,
		MasterDataHandler:   masterDataHandler,
		AdmissionsHandler:   admissionsHandler,
		CertificatesHandler: certificatesHandler,
		ReportsHandler:      reportsHandler,
		PrintHandler:        printHandler,
		JobHandler:          jobHandler,
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
