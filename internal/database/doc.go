// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

// Package database provides the embedded relational store behind the
// recommendation service.
//
// # Overview
//
// DB wraps database/sql over one of two embedded engines:
//   - DuckDB (github.com/duckdb/duckdb-go/v2, CGO), the default
//   - SQLite (modernc.org/sqlite, pure Go)
//
// Postgres deployments use the GORM-backed store in the pgstore subpackage,
// which serves the same interfaces.
//
// # Files
//
//   - database.go: lifecycle (open, ping, close) and DSN construction
//   - database_connection.go: pool configuration and connection-loss detection
//   - database_schema.go: storefront tables and indexes
//   - migrations.go: versioned schema application tracked in schema_migrations
//   - recommend_provider.go: recommend.DataProvider and recommend.UserDirectory
//   - seed.go: bulk loading and the deterministic demo dataset
//
// # Usage
//
//	db, err := database.New(&cfg.Database, logging.Logger())
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	engine := recommend.NewEngine(db, logger)
//	svc := recommend.NewService(engine, db, cache, recCfg, logger)
//
// # Thread Safety
//
// DB is safe for concurrent use. The recommendation engine loads order items
// and interactions in parallel through the same pool.
package database
