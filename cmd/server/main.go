// Kitchen Compass - Pantry-Aware Recipe Recommendations
// Copyright 2026 Tanvi Sivaraj (tanvisivaraj)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tanvisivaraj/kitchen-compass

// Package main is the entry point for the Kitchen Compass server.
//
// Kitchen Compass recommends recipes based on what is currently in the
// pantry. It tracks a recipe catalog with per-recipe ingredient lists,
// a live pantry inventory, and cooking feedback, and ranks candidate
// recipes by pantry coverage, past ratings, repeat-cook rate, cooking
// time, and cuisine preference.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Database: Initialize DuckDB holding recipes, ingredients, pantry, and feedback
//  3. Recommendation engine: Weighted scoring with a version-keyed response cache
//  4. Ingestion service: Recipe creation with case-insensitive ingredient reuse
//  5. HTTP Server: REST API under /api/v1 plus Prometheus metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (HTTP_PORT, DUCKDB_PATH, RECOMMEND_WEIGHT_PANTRY, ...)
//   - Config file (config.yaml, or the path in CONFIG_PATH)
//   - Built-in defaults
//
// Leaving DUCKDB_PATH empty runs the database in memory, which is
// useful for local development and CI.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (configurable timeout)
//   - Closes the database connection
//
// # Example Usage
//
// Local development with an in-memory database:
//
//	export DUCKDB_PATH=
//	export LOG_FORMAT=console
//	export LOG_LEVEL=debug
//	./kitchen-compass
//
// Production with a persistent database:
//
//	export DUCKDB_PATH=/data/kitchen-compass.duckdb
//	export CORS_ORIGINS=https://kitchen.example.com
//	./kitchen-compass
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tanvisivaraj/kitchen-compass/internal/api"
	"github.com/tanvisivaraj/kitchen-compass/internal/config"
	"github.com/tanvisivaraj/kitchen-compass/internal/database"
	"github.com/tanvisivaraj/kitchen-compass/internal/ingest"
	"github.com/tanvisivaraj/kitchen-compass/internal/logging"
	"github.com/tanvisivaraj/kitchen-compass/internal/recommend"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Kitchen Compass")

	if cfg.Database.Path == "" {
		logging.Warn().Msg("DUCKDB_PATH is empty - running with an in-memory database, data will not survive restarts")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	engine, err := recommend.NewEngine(&cfg.Recommend, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	ingestSvc := ingest.NewService(db, logging.WithComponent("ingest"))

	handler := api.NewHandler(db, engine, ingestSvc)
	router := api.NewRouter(handler, &cfg.API)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	serveErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("HTTP server shutdown error")
		}
		<-serveErr
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
