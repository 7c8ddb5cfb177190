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
	"github.com/redis/go-redis/v9"

	"github.com/scaledesk/scaledesk/internal/app"
	"github.com/scaledesk/scaledesk/internal/observability"
	"github.com/scaledesk/scaledesk/internal/platform/cache"
	"github.com/scaledesk/scaledesk/jobs"
	"github.com/scaledesk/scaledesk/report"
)

func main() {
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

	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("open stores", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := stores.Close(closeCtx); err != nil {
			logger.Warn("close stores", slog.Any("error", err))
		}
	}()

	var redisClient *redis.Client
	if client, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		logger.Warn("redis unavailable, stats cache disabled", slog.Any("error", err))
	} else {
		redisClient = client
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	services := app.NewServices(app.ServiceParams{
		Logger: logger,
		Stores: stores,
		Redis:  redisClient,
		TTL:    cfg.StatsCacheTTL,
		Clock:  cfg.Clock(),
	})

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobClient := jobs.NewClient(redisOpts)
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	params, err := app.Handlers(logger, services, report.NewClient(cfg.GotenbergURL), jobs.NewHandler(inspector, jobClient, logger))
	if err != nil {
		logger.Error("build handlers", slog.Any("error", err))
		os.Exit(1)
	}
	params.Config = cfg
	params.Metrics = observability.NewMetrics()

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      app.NewRouter(params),
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("store", cfg.StoreDriver))
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
