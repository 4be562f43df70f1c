// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

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

	"github.com/aterii/practice-4/internal/api"
	"github.com/aterii/practice-4/internal/auth"
	"github.com/aterii/practice-4/internal/catalog"
	"github.com/aterii/practice-4/internal/config"
	"github.com/aterii/practice-4/internal/logging"
	"github.com/aterii/practice-4/internal/recommend"
	"github.com/aterii/practice-4/internal/store"
	"github.com/aterii/practice-4/internal/supervisor"
	"github.com/aterii/practice-4/internal/supervisor/services"
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
		Str("environment", cfg.Server.Environment).
		Str("storage", storageDescription(&cfg.Storage)).
		Str("catalog", cfg.Catalog.BaseURL).
		Msg("Starting CarSelect")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin while credentials are enabled; set CORS_ORIGINS in production")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (RATE_LIMIT_DISABLED=true)")
	}

	db, err := store.Open(store.Options{Path: cfg.Storage.Path, InMemory: cfg.Storage.InMemory})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	router, err := buildRouter(cfg, db)
	if err != nil {
		// Fatal skips the deferred Close.
		_ = db.Close()
		logging.Fatal().Err(err).Msg("Failed to build API")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		_ = db.Close()
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	if !cfg.Storage.InMemory {
		tree.AddDataService(services.NewGCService(db, services.GCServiceConfig{
			Interval: cfg.Storage.GCInterval,
		}, logging.WithComponent("store")))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if err := tree.Run(ctx); err != nil {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	logging.Info().Msg("CarSelect stopped")
}

// buildRouter wires the catalog, engine and auth around db.
func buildRouter(cfg *config.Config, db *store.Store) (http.Handler, error) {
	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return nil, fmt.Errorf("jwt manager: %w", err)
	}

	cars := catalog.New(&cfg.Catalog)

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), cars, db, db,
		recommend.WithNotFound(func(err error) bool { return errors.Is(err, store.ErrNotFound) }))
	if err != nil {
		return nil, fmt.Errorf("recommendation engine: %w", err)
	}

	handler := api.NewHandler(api.Deps{
		Users:       db,
		Preferences: db,
		Comparisons: db,
		AHP:         db,
		Catalog:     cars,
		Recommender: engine,
		JWT:         jwtManager,
		Hasher:      auth.NewHasher(cfg.Security.BcryptCost),
	})

	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security))
	return api.NewRouter(handler, mw), nil
}

func storageDescription(s *config.StorageConfig) string {
	if s.InMemory {
		return "memory"
	}
	return s.Path
}
