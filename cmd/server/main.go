// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/recommender/internal/api"
	"github.com/tomtom215/recommender/internal/cache"
	"github.com/tomtom215/recommender/internal/config"
	"github.com/tomtom215/recommender/internal/logging"
	"github.com/tomtom215/recommender/internal/recommend"
	"github.com/tomtom215/recommender/internal/supervisor"
	"github.com/tomtom215/recommender/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("config", cfg.String()).Msg("Starting recommender with supervisor tree")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Server stopped")
}

//nolint:gocyclo // sequential setup steps
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, &cfg.Database, logging.Logger())
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	backend, err := cache.New(&cfg.Cache, logging.Logger())
	if err != nil {
		return err
	}
	cacheName := "cache"
	var resultCache recommend.ResultCache
	if backend != nil {
		cacheName = backend.Name()
		resultCache = backend
		defer func() {
			if err := backend.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing result cache")
			}
		}()
	} else {
		logging.Warn().Msg("Result cache disabled (CACHE_BACKEND=none), every request recomputes")
	}

	engine := recommend.NewEngine(store, logging.Logger())
	svc := recommend.NewService(engine, store, resultCache, recommendConfig(cfg), logging.Logger())

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	if gc, ok := backend.(*cache.BadgerResultCache); ok {
		tree.AddCacheService(gc)
		logging.Info().Msg("Badger value-log GC added to supervisor tree")
	}

	handler := api.NewHandler(svc, store, cacheName)

	evComponents, err := initEvents(&cfg.Events, svc, defaultEmbeddedPort)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		evComponents.Shutdown(shutdownCtx)
	}()
	if pub := evComponents.Publisher(); pub != nil {
		handler.SetRecalcPublisher(pub)
		tree.AddEventsService(evComponents.Consumer())
		logging.Info().Msg("Recalculation consumer added to supervisor tree")
	}

	if cfg.Server.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromServer(&cfg.Server))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout).
		WithLogger(logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil {
		for _, u := range unstopped {
			logging.Warn().Str("service", u.Name).Msg("Service failed to stop within timeout")
		}
	}

	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		return serveErr
	}
	return nil
}
