// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/tomtom215/recommender/internal/config"
)

// ErrUnsupportedDriver is returned by New for drivers served elsewhere
// (postgres lives in the pgstore package).
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// defaultQueryTimeout bounds provider queries when the config leaves it unset.
const defaultQueryTimeout = 30 * time.Second

// DB wraps an embedded SQL connection (DuckDB or SQLite) and serves the
// recommendation inputs and identity lookups.
type DB struct {
	conn   *sql.DB
	cfg    *config.DatabaseConfig
	driver string
	logger zerolog.Logger
}

// New opens the configured embedded database, applies the schema and, when
// enabled, seeds the demo dataset into an empty store.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg *config.DatabaseConfig, logger zerolog.Logger) (*DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = config.DriverDuckDB
	}

	driverName, dsn, err := connString(driver, cfg)
	if err != nil {
		return nil, err
	}

	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	if !isMemoryPath(cfg.Path) {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:   conn,
		cfg:    cfg,
		driver: driver,
		logger: logger.With().Str("component", "database").Str("driver", driver).Logger(),
	}

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	db.logger.Info().Str("path", cfg.Path).Msg("Database ready")
	return db, nil
}

// connString maps the config onto a database/sql driver name and DSN.
func connString(driver string, cfg *config.DatabaseConfig) (driverName, dsn string, err error) {
	switch driver {
	case config.DriverDuckDB:
		threads := cfg.Threads
		if threads <= 0 {
			threads = runtime.NumCPU()
		}
		maxMemory := cfg.MaxMemory
		if maxMemory == "" {
			maxMemory = "1GB"
		}
		// Auto-install stays off so startup never reaches out to the network
		return "duckdb", fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
			cfg.Path, threads, maxMemory), nil
	case config.DriverSQLite:
		if isMemoryPath(cfg.Path) {
			return "sqlite", ":memory:", nil
		}
		return "sqlite", cfg.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

func isMemoryPath(path string) bool {
	return path == "" || path == ":memory:"
}

// Conn exposes the underlying pool for callers that need raw SQL.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Driver returns the configured driver name.
func (db *DB) Driver() string {
	return db.driver
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	if db.driver == config.DriverDuckDB {
		// Flush the WAL so the next start does not need to replay it
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
			db.logger.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()
	}
	return db.conn.Close()
}

// Ping checks if the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// initialize applies migrations and the optional demo seed.
func (db *DB) initialize() error {
	ctx, cancel := schemaContext()
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	if err := db.runVersionedMigrations(ctx); err != nil {
		return err
	}

	if db.cfg.SeedDemo {
		if err := db.SeedDemoData(ctx); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}
	return nil
}

// queryContext derives the per-query deadline.
func (db *DB) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := db.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
