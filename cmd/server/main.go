// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package main is the entry point for the Reelmatch server.
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, config.yaml and environment (koanf)
//  2. Logging: global zerolog logger
//  3. Database: DuckDB catalog, optionally seeded with a demo catalog
//  4. Like store: DuckDB or Badger, per profiles.store
//  5. Recommendation engine: circuit breaker, index cache and metrics
//  6. HTTP server and index warmer under a suture supervisor tree
//
// SIGINT and SIGTERM cancel the tree; the HTTP server drains in-flight
// requests within server.shutdown_timeout before the stores are closed.
//
// Example:
//
//	export DUCKDB_PATH=/data/reelmatch.duckdb
//	export SEED_DEMO_DATA=true
//	./reelmatch
//	curl localhost:3858/api/v1/recommendations/user/1
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/database"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/profiles"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
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
		Output:    os.Stderr,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("profile_store", cfg.Profiles.Store).
		Bool("index_cache", cfg.Recommend.Cache.Enabled).
		Bool("circuit_breaker", cfg.Recommend.CircuitBreaker.Enabled).
		Msg("Starting Reelmatch")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires the components and blocks until a shutdown signal.
func run(cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	if cfg.Database.SeedDemoData {
		n, err := db.SeedDemoCatalog(context.Background())
		if err != nil {
			return err
		}
		logging.Info().Int("movies", n).Msg("Demo catalog seeded")
	}

	store, closeStore, err := profiles.NewStore(&cfg.Profiles, db)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing like store")
		}
	}()
	likes := profiles.NewService(store, db, logging.WithComponent("profiles"))

	engine, err := initRecommend(&cfg.Recommend, db, likes)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	if interval := cfg.Recommend.Cache.WarmInterval; cfg.Recommend.Cache.Enabled && interval > 0 {
		tree.AddMaintenanceService(services.NewIndexWarmerService(
			engine, interval, cfg.Recommend.Timeout, logging.WithComponent("supervisor")))
		logging.Info().Dur("interval", interval).Msg("Index warmer added to supervisor tree")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(api.NewHandler(db, engine, likes), &cfg.Security),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("supervisor")))
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

	serveErr := tree.Run(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return serveErr
}
