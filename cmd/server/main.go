// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package main is the Marquee HTTP server.
//
// Marquee recommends yesterday's Korean box office titles to a viewer based
// on how the viewer's age group rated each genre in a MovieLens dataset.
//
// # Startup
//
//  1. Configuration: defaults, config.yaml, environment (koanf)
//  2. Dataset: the three MovieLens files are read once
//  3. Scorer: in-memory, or DuckDB when RECOMMEND_SCORER=duckdb
//  4. KOBIS client behind a circuit breaker, with optional detail cache
//  5. HTTP server under the suture supervisor tree
//
// # Example
//
//	export KOBIS_API_KEY=your-key
//	export MOVIELENS_DIR=./ml-1m
//	./marquee-server
//	curl -X POST localhost:8501/api/v1/recommendations -d '{"name":"Mina","age":25}'
//
// SIGINT and SIGTERM stop the tree; in-flight requests get 10s to finish.
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

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/app"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

const (
	shutdownTimeout = 10 * time.Second
	cacheGCInterval = 10 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("dataset_dir", cfg.Dataset.Dir).
		Str("scorer", cfg.Recommend.Scorer).
		Str("kobis_url", cfg.KOBIS.URL).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Marquee")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS in production")
	}

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	components, err := app.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := components.Close(); err != nil {
			logging.Error().Err(err).Msg("Error releasing resources")
		}
	}()

	var pinger api.Pinger
	if components.DB != nil {
		pinger = components.DB
	}
	handler := api.NewHandler(components.Engine, cfg, pinger)
	handler.SetReady(true)

	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	if components.Cache != nil {
		tree.AddDataService(services.NewCacheGCService(components.Cache, cacheGCInterval))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	var serveErr error
	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		serveErr = err
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return serveErr
}
