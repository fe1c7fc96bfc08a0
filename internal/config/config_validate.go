// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package config

import (
	"fmt"
	"strings"
)

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Server.RateLimitReqs)
		}
		if c.Server.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Server.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverDuckDB, DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for driver %s", c.Database.Driver)
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
		if err := validatePostgresURL(c.Database.URL); err != nil {
			return fmt.Errorf("DATABASE_URL is invalid: %w", err)
		}
	default:
		return fmt.Errorf("DB_DRIVER must be one of duckdb, sqlite, postgres, got %q", c.Database.Driver)
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0, got %d", c.Database.Threads)
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be positive, got %v", c.Database.QueryTimeout)
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case CacheRedis:
		if c.Cache.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required when CACHE_BACKEND=redis")
		}
		if c.Cache.Redis.Port < 1 || c.Cache.Redis.Port > 65535 {
			return fmt.Errorf("REDIS_PORT must be between 1 and 65535, got %d", c.Cache.Redis.Port)
		}
		if c.Cache.Redis.DB < 0 {
			return fmt.Errorf("REDIS_DB must be >= 0, got %d", c.Cache.Redis.DB)
		}
	case CacheBadger:
		if !c.Cache.Badger.InMemory && c.Cache.Badger.Path == "" {
			return fmt.Errorf("BADGER_PATH is required unless BADGER_IN_MEMORY=true")
		}
	case CacheMemory:
		if c.Cache.Memory.MaxEntries < 1 {
			return fmt.Errorf("MEMORY_CACHE_SIZE must be positive, got %d", c.Cache.Memory.MaxEntries)
		}
	case CacheNone:
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of redis, badger, memory, none, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %v", c.Cache.TTL)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.DefaultCount < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_COUNT must be positive, got %d", r.DefaultCount)
	}
	if r.MaxCount < r.DefaultCount {
		return fmt.Errorf("RECOMMEND_MAX_COUNT (%d) must be >= RECOMMEND_DEFAULT_COUNT (%d)", r.MaxCount, r.DefaultCount)
	}
	if r.ComputeTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_COMPUTE_TIMEOUT must be positive, got %v", r.ComputeTimeout)
	}
	// a read that may run until its own deadline must leave budget for the
	// popularity fallback, or the computation ends as a context error
	if q := c.Database.QueryTimeout; q > 0 && r.ComputeTimeout <= q {
		return fmt.Errorf("RECOMMEND_COMPUTE_TIMEOUT (%v) must be greater than DB_QUERY_TIMEOUT (%v)", r.ComputeTimeout, q)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if !c.Events.Embedded {
		if err := validateNATSURL(c.Events.URL); err != nil {
			return fmt.Errorf("NATS_URL is invalid: %w", err)
		}
	} else if c.Events.StoreDir == "" {
		return fmt.Errorf("NATS_STORE_DIR is required when NATS_EMBEDDED=true")
	}
	if strings.TrimSpace(c.Events.Topic) == "" {
		return fmt.Errorf("NATS_TOPIC is required when NATS_ENABLED=true")
	}
	if strings.ContainsAny(c.Events.Topic, "*> ") {
		return fmt.Errorf("NATS_TOPIC must be a concrete subject, got %q", c.Events.Topic)
	}
	if c.Events.SubscribersCount < 1 {
		return fmt.Errorf("NATS_SUBSCRIBERS must be positive, got %d", c.Events.SubscribersCount)
	}
	if c.Events.AckWait <= 0 {
		return fmt.Errorf("NATS_ACK_WAIT must be positive, got %v", c.Events.AckWait)
	}
	if c.Events.MaxPerSecond < 0 {
		return fmt.Errorf("NATS_MAX_PER_SECOND must be >= 0, got %v", c.Events.MaxPerSecond)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
