// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

// Package testinfra starts throwaway Redis and Postgres containers for
// integration tests.
//
// Everything here builds only with the integration tag:
//
//	go test -tags integration ./internal/testinfra/...
//
// Tests skip when Docker is not reachable.
//
// # Redis
//
//	rc, err := testinfra.NewRedisContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(t, ctx, rc.Container)
//
//	c := cache.NewRedisResultCache(&rc.Config, zerolog.Nop())
//
// # Postgres
//
//	pg, err := testinfra.NewPostgresContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(t, ctx, pg.Container)
//
//	store, err := pgstore.Open(ctx, &config.DatabaseConfig{
//	    Driver: config.DriverPostgres,
//	    URL:    pg.URL,
//	}, zerolog.Nop())
//
// First runs pull the images; later runs use the local image cache.
package testinfra
