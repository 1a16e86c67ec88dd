package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/nidaan-his/nidaan-his/internal/app"
	"github.com/nidaan-his/nidaan-his/internal/billing"
	"github.com/nidaan-his/nidaan-his/internal/platform/cache"
	"github.com/nidaan-his/nidaan-his/internal/platform/db"
	"github.com/nidaan-his/nidaan-his/internal/reports"
	"github.com/nidaan-his/nidaan-his/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

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

	billingService := billing.NewService(billing.NewRepository(pool), nil)
	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportService := reports.NewService(billingService, reportCache)

	deps := jobs.ReportDeps{Reports: reportService, Logger: logger}

	summaryTask, err := jobs.NewDailySummaryTask(jobs.DailySummaryPayload{})
	if err != nil {
		logger.Error("build summary task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskDailySummary, Handler: jobs.NewDailySummaryHandler(deps)},
			{Type: jobs.TaskCacheWarmup, Handler: jobs.NewCacheWarmupHandler(deps)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "10 0 * * *", Task: summaryTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "0 7 * * *", Task: jobs.NewCacheWarmupTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
