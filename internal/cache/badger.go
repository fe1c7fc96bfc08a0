// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/recommender/internal/config"
)

const (
	badgerGCInterval = 10 * time.Minute
	badgerGCRatio    = 0.5
)

// ErrCacheClosed is returned by operations on a closed cache.
var ErrCacheClosed = errors.New("cache is closed")

// BadgerResultCache stores lists in an embedded BadgerDB using native TTL.
type BadgerResultCache struct {
	db       *badger.DB
	inMemory bool
	logger   zerolog.Logger
}

// NewBadgerResultCache opens (or creates) the store at cfg.Path, or an
// in-memory store when cfg.InMemory is set.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBadgerResultCache(cfg *config.BadgerConfig, logger zerolog.Logger) (*BadgerResultCache, error) {
	logger = logger.With().Str("component", "cache").Str("backend", "badger").Logger()

	path := cfg.Path
	if cfg.InMemory {
		path = ""
	}
	opts := badger.DefaultOptions(path).
		WithInMemory(cfg.InMemory).
		WithLogger(&badgerLogger{logger: logger})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}

	return &BadgerResultCache{db: db, inMemory: cfg.InMemory, logger: logger}, nil
}

// Name implements Backend.
func (c *BadgerResultCache) Name() string { return "badger" }

// Get reads a list; expired and absent keys are a miss.
func (c *BadgerResultCache) Get(_ context.Context, key string) ([]int64, bool, error) {
	if c.db.IsClosed() {
		return nil, false, ErrCacheClosed
	}

	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger get %s: %w", key, err)
	}

	ids, err := decodeIDs(data)
	if err != nil {
		return nil, false, err
	}
	return ids, true, nil
}

// Set writes a list with the given TTL.
func (c *BadgerResultCache) Set(_ context.Context, key string, ids []int64, ttl time.Duration) error {
	if c.db.IsClosed() {
		return ErrCacheClosed
	}

	data, err := encodeIDs(ids)
	if err != nil {
		return err
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), data).WithTTL(ttl))
	})
	if err != nil {
		return fmt.Errorf("badger set %s: %w", key, err)
	}
	return nil
}

// Delete removes a list. A missing key is not an error.
func (c *BadgerResultCache) Delete(_ context.Context, key string) error {
	if c.db.IsClosed() {
		return ErrCacheClosed
	}

	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("badger delete %s: %w", key, err)
	}
	return nil
}

// Ping reports whether the store is open.
func (c *BadgerResultCache) Ping(context.Context) error {
	if c.db.IsClosed() {
		return ErrCacheClosed
	}
	return nil
}

// Close closes the store.
func (c *BadgerResultCache) Close() error {
	if c.db.IsClosed() {
		return nil
	}
	return c.db.Close()
}

// Serve runs value log garbage collection until ctx is done. It satisfies
// suture.Service so the supervisor can own the GC loop.
func (c *BadgerResultCache) Serve(ctx context.Context) error {
	if c.inMemory {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(badgerGCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.runGC(); err != nil {
				c.logger.Warn().Err(err).Msg("Value log GC failed")
			}
		}
	}
}

// String implements fmt.Stringer for suture.
func (c *BadgerResultCache) String() string { return "badger-cache-gc" }

func (c *BadgerResultCache) runGC() error {
	for {
		err := c.db.RunValueLogGC(badgerGCRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// badgerLogger routes badger's printf-style logging into zerolog. Info is
// demoted to debug; badger is chatty at startup.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(format, args...)
}
