// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/recommender/config.yaml",
	"/etc/recommender/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvFileEnvVar overrides the .env file path.
const EnvFileEnvVar = "ENV_FILE"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Database: DatabaseConfig{
			Driver:       DriverDuckDB,
			Path:         "/data/recommender.duckdb",
			MaxMemory:    "1GB",
			Threads:      0, // 0 = runtime.NumCPU()
			MaxOpenConns: 10,
			QueryTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Backend: CacheRedis,
			TTL:     3600 * time.Second,
			Redis: RedisConfig{
				Host:        "localhost",
				Port:        6379,
				DB:          0,
				DialTimeout: 5 * time.Second,
			},
			Badger: BadgerConfig{
				Path: "/data/cache",
			},
			Memory: MemoryConfig{
				MaxEntries: 10000,
			},
		},
		Recommend: RecommendConfig{
			DefaultCount:   5,
			MaxCount:       100,
			ComputeTimeout: 30 * time.Second,
		},
		Events: EventsConfig{
			Enabled:          false,
			URL:              "nats://127.0.0.1:4222",
			Topic:            "recommend.recalculate",
			SubscribersCount: 2,
			DurableName:      "recommender",
			QueueGroup:       "recalculators",
			AckWait:          30 * time.Second,
			MaxPerSecond:     50,
			StoreDir:         "/data/nats",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration in layers: defaults, optional YAML file,
// optional .env file, then environment variables. The result is validated.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadDotEnv copies .env entries into the process environment. Variables
// already set in the environment win.
func loadDotEnv() error {
	path := os.Getenv(EnvFileEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

var sliceConfigPaths = []string{
	"server.cors_origins",
	"database.completed_statuses",
}

// processSliceFields splits comma-separated env values for slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps flat environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_timeout":        "server.timeout",
	"shutdown_timeout":    "server.shutdown_timeout",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_reqs",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",

	// Database
	"db_driver":             "database.driver",
	"duckdb_path":           "database.path",
	"sqlite_path":           "database.path",
	"database_url":          "database.url",
	"duckdb_max_memory":     "database.max_memory",
	"duckdb_threads":        "database.threads",
	"db_max_open_conns":     "database.max_open_conns",
	"db_query_timeout":      "database.query_timeout",
	"seed_demo_data":        "database.seed_demo",
	"order_status_complete": "database.completed_statuses",

	// Cache
	"cache_backend":      "cache.backend",
	"cache_ttl":          "cache.ttl",
	"redis_host":         "cache.redis.host",
	"redis_port":         "cache.redis.port",
	"redis_db":           "cache.redis.db",
	"redis_password":     "cache.redis.password",
	"redis_dial_timeout": "cache.redis.dial_timeout",
	"badger_path":        "cache.badger.path",
	"badger_in_memory":   "cache.badger.in_memory",
	"memory_cache_size":  "cache.memory.max_entries",

	// Recommend
	"recommend_default_count":   "recommend.default_count",
	"recommend_max_count":       "recommend.max_count",
	"recommend_compute_timeout": "recommend.compute_timeout",

	// Events
	"nats_enabled":        "events.enabled",
	"nats_url":            "events.url",
	"nats_topic":          "events.topic",
	"nats_subscribers":    "events.subscribers_count",
	"nats_durable_name":   "events.durable_name",
	"nats_queue_group":    "events.queue_group",
	"nats_ack_wait":       "events.ack_wait",
	"nats_max_per_second": "events.max_per_second",
	"nats_embedded":       "events.embedded",
	"nats_store_dir":      "events.store_dir",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped names return "" and are skipped.
//
//   - REDIS_HOST -> cache.redis.host
//   - DATABASE_URL -> database.url
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
