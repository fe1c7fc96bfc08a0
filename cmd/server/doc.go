// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

/*
Package main is the entry point for the recommender server.

The server answers "what should this shopper buy next" from purchase and
interaction history, caching finished lists and falling back to a
popularity ranking when personalization is not possible.

# Application Architecture

Long-running components run under a Suture v4 supervisor tree:

	RootSupervisor ("recommender")
	├── CacheSupervisor ("cache-layer")
	│   └── Badger value-log GC (CACHE_BACKEND=badger)
	├── EventsSupervisor ("events-layer")
	│   └── Recalculation consumer (NATS_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, .env, environment)
 2. Logging: zerolog with JSON/console output
 3. Store: DuckDB or SQLite (database/sql) or Postgres (GORM)
 4. Result cache: Redis, Badger, in-process LRU or none
 5. Recommendation engine and service
 6. Events (optional): embedded or external NATS JetStream
 7. HTTP Server: Chi router with middleware stack

# Configuration

	# Server
	HTTP_PORT=8000
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Store
	DB_DRIVER=duckdb             # duckdb, sqlite or postgres
	DUCKDB_PATH=/data/recommender.duckdb
	DATABASE_URL=postgres://...  # postgres only
	SEED_DEMO_DATA=false

	# Cache
	CACHE_BACKEND=redis          # redis, badger, memory or none
	REDIS_HOST=localhost
	REDIS_PORT=6379

	# Events
	NATS_ENABLED=false
	NATS_EMBEDDED=false
	NATS_URL=nats://127.0.0.1:4222

# Endpoints

	GET  /                                            Welcome message
	GET  /health                                      Store and cache status
	GET  /health/live                                 Liveness probe
	GET  /metrics                                     Prometheus metrics
	GET  /api/v1/recommendations/{userID}             Recommendations
	POST /api/v1/recommendations/recalculate/{userID} Forced recalculation

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server gracefully, then the events components, store and cache are closed.

# Example Usage

Local development with the bundled demo data and no Redis:

	export DB_DRIVER=sqlite
	export SQLITE_PATH=./data/recommender.db
	export SEED_DEMO_DATA=true
	export CACHE_BACKEND=memory
	export LOG_FORMAT=console
	./recommender

With Postgres, Redis and an embedded event broker:

	export DB_DRIVER=postgres
	export DATABASE_URL=postgres://shop:secret@db:5432/shop?sslmode=disable
	export REDIS_HOST=redis
	export NATS_ENABLED=true
	export NATS_EMBEDDED=true
	./recommender
*/
package main
