// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

// Command server runs the GameRank HTTP API: safety-filtered personalized
// recommendations and periodically refreshed charts.
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

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/playforge/gamerank/internal/api"
	"github.com/playforge/gamerank/internal/charts"
	"github.com/playforge/gamerank/internal/config"
	"github.com/playforge/gamerank/internal/logging"
	"github.com/playforge/gamerank/internal/memstore"
	"github.com/playforge/gamerank/internal/ranking"
	"github.com/playforge/gamerank/internal/scheduler"
)

const shutdownGrace = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logger := logging.Logger()

	store := memstore.New()
	memstore.Seed(store, time.Now())

	var source charts.MetricsSource = store
	if cfg.Charts.FetchRatePerSecond > 0 {
		source = charts.NewThrottledSource(source, cfg.Charts.FetchRatePerSecond, cfg.Charts.FetchBurst)
	}
	source = charts.NewBreakerSource(source, charts.BreakerSettings{
		Name:        "chart-metrics",
		MaxFailures: cfg.Charts.BreakerMaxFailures,
		OpenTimeout: cfg.Charts.BreakerOpenTimeout,
	})

	engine, err := ranking.NewEngine(cfg.Ranking, store, store, logger)
	if err != nil {
		return fmt.Errorf("ranking engine: %w", err)
	}

	ranker := charts.NewRanker(source, cfg.Charts.Concurrency, logger)
	chartStore := scheduler.NewStore()
	refresher := scheduler.NewRefresher(
		ranker, chartStore,
		cfg.Charts.RefreshInterval, cfg.Charts.Limit, cfg.Charts.Platforms,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sup := suture.New("gamerank", suture.Spec{
		EventHook: (&sutureslog.Handler{Logger: logging.NewSlogLogger()}).MustHook(),
	})
	sup.Add(refresher)
	supErr := sup.ServeBackground(ctx)

	handler := api.NewHandler(engine, ranker, chartStore)
	router := api.NewRouter(handler, api.RouterConfig{
		Timeout:         cfg.Server.Timeout,
		RateLimitReqs:   cfg.Server.RateLimitReqs,
		RateLimitWindow: cfg.Server.RateLimitWindow,
		CORSOrigins:     cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("http server listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		stop()
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		logging.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Warn().Err(err).Msg("http shutdown incomplete")
	}

	if err := <-supErr; err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}
	return nil
}
