// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	Events    EventsConfig    `koanf:"events"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT
//   - CORS_ORIGINS: comma-separated list (default: *)
//   - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	Timeout           time.Duration `koanf:"timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Database drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig selects and tunes the relational store.
//
// Environment Variables:
//   - DB_DRIVER: duckdb, sqlite, postgres (default: duckdb)
//   - DUCKDB_PATH / SQLITE_PATH: database file for embedded drivers
//   - DATABASE_URL: Postgres DSN
//   - SEED_DEMO_DATA: insert the demo dataset on an empty database
type DatabaseConfig struct {
	Driver       string        `koanf:"driver"`
	Path         string        `koanf:"path"`
	URL          string        `koanf:"url"`
	MaxMemory    string        `koanf:"max_memory"`
	Threads      int           `koanf:"threads"`
	MaxOpenConns int           `koanf:"max_open_conns"`
	QueryTimeout time.Duration `koanf:"query_timeout"`
	SeedDemo     bool          `koanf:"seed_demo"`

	// CompletedStatuses limits purchase evidence to orders in these states.
	// Empty means every order counts.
	CompletedStatuses []string `koanf:"completed_statuses"`
}

// Cache backends.
const (
	CacheRedis  = "redis"
	CacheBadger = "badger"
	CacheMemory = "memory"
	CacheNone   = "none"
)

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Backend string        `koanf:"backend"`
	TTL     time.Duration `koanf:"ttl"`
	Redis   RedisConfig   `koanf:"redis"`
	Badger  BadgerConfig  `koanf:"badger"`
	Memory  MemoryConfig  `koanf:"memory"`
}

// RedisConfig holds Redis connection settings.
//
// Environment Variables:
//   - REDIS_HOST (default: localhost), REDIS_PORT (default: 6379)
//   - REDIS_DB (default: 0), REDIS_PASSWORD
type RedisConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	DB          int           `koanf:"db"`
	Password    string        `koanf:"password"`
	DialTimeout time.Duration `koanf:"dial_timeout"`
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
}

// BadgerConfig holds embedded cache settings.
type BadgerConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// MemoryConfig holds in-process cache settings.
type MemoryConfig struct {
	MaxEntries int `koanf:"max_entries"`
}

// RecommendConfig holds recommendation request limits.
type RecommendConfig struct {
	DefaultCount   int           `koanf:"default_count"`
	MaxCount       int           `koanf:"max_count"`
	ComputeTimeout time.Duration `koanf:"compute_timeout"`
}

// EventsConfig configures the NATS recalculation consumer.
//
// Environment Variables:
//   - NATS_ENABLED (default: false), NATS_URL
//   - NATS_EMBEDDED: run an in-process JetStream server
//   - NATS_TOPIC (default: recommend.recalculate)
type EventsConfig struct {
	Enabled          bool          `koanf:"enabled"`
	URL              string        `koanf:"url"`
	Topic            string        `koanf:"topic"`
	SubscribersCount int           `koanf:"subscribers_count"`
	DurableName      string        `koanf:"durable_name"`
	QueueGroup       string        `koanf:"queue_group"`
	AckWait          time.Duration `koanf:"ack_wait"`
	MaxPerSecond     float64       `koanf:"max_per_second"`
	Embedded         bool          `koanf:"embedded"`
	StoreDir         string        `koanf:"store_dir"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, file, .env and environment.
// See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// String renders a short, secret-free summary for the startup log.
func (c *Config) String() string {
	return fmt.Sprintf("db=%s cache=%s events=%t addr=%s",
		c.Database.Driver, c.Cache.Backend, c.Events.Enabled, c.Server.Addr())
}
