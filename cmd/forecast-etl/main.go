package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/forecast-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/forecast-etl/internal/adapter/kafka"
	"github.com/couchcryptid/forecast-etl/internal/adapter/openmeteo"
	"github.com/couchcryptid/forecast-etl/internal/adapter/tzdb"
	"github.com/couchcryptid/forecast-etl/internal/config"
	"github.com/couchcryptid/forecast-etl/internal/domain"
	"github.com/couchcryptid/forecast-etl/internal/observability"
	"github.com/couchcryptid/forecast-etl/internal/pipeline"
	"github.com/couchcryptid/forecast-etl/internal/scheduler"
)

// Locations rarely span more than a handful of zones.
const zoneCacheSize = 64

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if len(cfg.Locations) == 0 {
		logger.Warn("no locations configured, syncs will be no-ops", "locations_file", cfg.LocationsFile)
	}

	fetcher := openmeteo.NewClient(openmeteo.OptionsFromConfig(cfg), logger, metrics)
	zones := tzdb.NewCachedLoader(nil, zoneCacheSize)
	parser := domain.Parser{LoadZone: zones.Load}
	clock := clockwork.NewRealClock()
	transformer := pipeline.NewTransformer(parser, cfg.Topic, clock, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)

	p := pipeline.New(fetcher, transformer, writer, pipeline.Options{
		Locations:   cfg.Locations,
		Cadences:    cfg.Cadences,
		Concurrency: cfg.SyncConcurrency,
	}, logger, metrics, clock)

	sched := scheduler.New(cfg.SyncCron, cfg.SyncOnStart, p, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, sched, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if err := sched.Start(ctx); err != nil {
		logger.Error("scheduler start failed", "error", err)
		stop()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	sched.Stop()
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
