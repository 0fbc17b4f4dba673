package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/camunda"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/config"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/database"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/logger"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/observability"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/profile"
	"github.com/Nurbek-dev001/World-banking-system/pkg/registry"

	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// retryWithBackoff runs operation up to maxRetries times, doubling the delay
// between attempts.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(operationName+" failed, retrying",
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.NewFromConfig(cfg.Logging)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting worker manager",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, nil, log)
	ctx := context.Background()

	// --- Zeebe ---
	var zb *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zb, err = camunda.NewClientWithConfig(camunda.ConfigFrom(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("zeebe client connected", zap.String("gateway", cfg.Camunda.BrokerAddress))

	// --- PostgreSQL ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres client creation failed", zap.Error(err))
	}
	err = retryWithBackoff(func() error {
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "postgres connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	if cfg.Database.Postgres.MigrationsPath != "" {
		if err := pg.Migrate(); err != nil {
			zapLog.Fatal("postgres migrations failed", zap.Error(err))
		}
		zapLog.Info("postgres migrations applied", zap.String("source", cfg.Database.Postgres.MigrationsPath))
	}

	// --- Elasticsearch ---
	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		zapLog.Fatal("elasticsearch client creation failed", zap.Error(err))
	}
	err = retryWithBackoff(func() error {
		return es.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	if ok, err := es.IndexExists(ctx, cfg.Database.Elasticsearch.TransactionsIndex); err != nil || !ok {
		zapLog.Warn("transactions index not available, signal aggregation will fail until it exists",
			zap.String("index", cfg.Database.Elasticsearch.TransactionsIndex),
			zap.Error(err),
		)
	}

	// --- Redis ---
	rdb, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		zapLog.Fatal("redis client creation failed", zap.Error(err))
	}
	err = retryWithBackoff(func() error {
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}

	deps := &dependencies{
		cfg:      cfg,
		store:    profile.NewStore(pg.GetDB(), rdb.GetClient(), cfg.Scoring.CacheTTLDuration(), log),
		resolver: profile.NewResolver(cfg.Scoring.Defaults),
		es:       es.Client,
		log:      log,
	}

	workers := startWorkers(zb, deps, obs, zapLog)
	zapLog.Info("workers registered", zap.Int("count", len(workers)))

	checkRegistry(cfg.Registry.Path, workers, zapLog)

	srv := newServer(cfg.Server.Address, readinessChecks{
		"zeebe":         zb.HealthCheck,
		"postgres":      pg.Ping,
		"elasticsearch": es.Ping,
		"redis":         rdb.Ping,
	})
	go func() {
		zapLog.Info("health/metrics server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("health/metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("shutdown signal received, stopping workers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("error stopping health server", zap.Error(err))
	}
	if err := zb.Close(); err != nil {
		zapLog.Error("error closing zeebe client", zap.Error(err))
	}
	if err := pg.Close(); err != nil {
		zapLog.Error("error closing postgres", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		zapLog.Error("error closing redis", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("error shutting down meter provider", zap.Error(err))
	}

	zapLog.Info("worker manager stopped")
}

// checkRegistry warns about task types that run here but are not described
// in the activity registry. A missing registry file is not fatal.
func checkRegistry(path string, workers []*camunda.CamundaWorker, log *zap.Logger) {
	if path == "" {
		return
	}
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("activity registry not loaded", zap.String("path", path), zap.Error(err))
		return
	}
	if err := reg.Validate(); err != nil {
		log.Warn("activity registry is invalid", zap.String("path", path), zap.Error(err))
	}

	taskTypes := make([]string, 0, len(workers))
	for _, w := range workers {
		taskTypes = append(taskTypes, w.TaskType())
	}
	if missing := reg.Missing(taskTypes); len(missing) > 0 {
		log.Warn("workers missing from activity registry", zap.Strings("taskTypes", missing))
	}
}
