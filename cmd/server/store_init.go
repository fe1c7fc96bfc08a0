// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recommender/internal/config"
	"github.com/tomtom215/recommender/internal/database"
	"github.com/tomtom215/recommender/internal/database/pgstore"
	"github.com/tomtom215/recommender/internal/recommend"
)

// recommendStore is what the server needs from a database backend.
type recommendStore interface {
	recommend.DataProvider
	recommend.UserDirectory
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ recommendStore = (*database.DB)(nil)
	_ recommendStore = (*pgstore.Store)(nil)
)

// openStore opens the backend selected by cfg.Driver.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func openStore(ctx context.Context, cfg *config.DatabaseConfig, logger zerolog.Logger) (recommendStore, error) {
	if cfg.Driver == config.DriverPostgres {
		store, err := pgstore.Open(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// recommendConfig maps the loaded settings onto the service config.
func recommendConfig(cfg *config.Config) *recommend.Config {
	rc := recommend.DefaultConfig()
	if cfg.Recommend.DefaultCount > 0 {
		rc.DefaultCount = cfg.Recommend.DefaultCount
	}
	if cfg.Recommend.MaxCount > 0 {
		rc.MaxCount = cfg.Recommend.MaxCount
	}
	if cfg.Recommend.ComputeTimeout > 0 {
		rc.ComputeTimeout = cfg.Recommend.ComputeTimeout
	}
	if cfg.Cache.TTL > 0 {
		rc.CacheTTL = cfg.Cache.TTL
	}
	return rc
}
