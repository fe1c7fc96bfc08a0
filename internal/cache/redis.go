// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/recommender/internal/config"
	"github.com/tomtom215/recommender/internal/metrics"
)

const redisBreakerName = "redis-cache"

// RedisResultCache stores lists as JSON strings in Redis.
//
// The client is created on first use and shared afterwards; go-redis dials
// lazily so a Redis outage at startup does not block the service. All
// operations go through a circuit breaker so a dead Redis costs one fast
// rejection per request instead of a dial timeout.
type RedisResultCache struct {
	cfg    config.RedisConfig
	logger zerolog.Logger

	once   sync.Once
	client *redis.Client

	cb *gobreaker.CircuitBreaker[[]byte]
}

// NewRedisResultCache prepares a Redis-backed cache. No connection is made
// until the first operation.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRedisResultCache(cfg *config.RedisConfig, logger zerolog.Logger) *RedisResultCache {
	logger = logger.With().Str("component", "cache").Str("backend", "redis").Logger()
	return &RedisResultCache{
		cfg:    *cfg,
		logger: logger,
		cb:     newBreaker(redisBreakerName, logger),
	}
}

// NewRedisResultCacheFromClient wraps an existing client.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRedisResultCacheFromClient(client *redis.Client, logger zerolog.Logger) *RedisResultCache {
	c := NewRedisResultCache(&config.RedisConfig{}, logger)
	c.once.Do(func() { c.client = client })
	return c
}

// Client returns the shared client, creating it on first call. It returns
// nil when Close ran before any operation.
func (c *RedisResultCache) Client() *redis.Client {
	c.once.Do(func() {
		c.client = redis.NewClient(&redis.Options{
			Addr:        c.cfg.Addr(),
			Password:    c.cfg.Password,
			DB:          c.cfg.DB,
			DialTimeout: c.cfg.DialTimeout,
		})
		c.logger.Info().Str("addr", c.cfg.Addr()).Int("db", c.cfg.DB).Msg("Redis client created")
	})
	return c.client
}

// Name implements Backend.
func (c *RedisResultCache) Name() string { return "redis" }

// Get reads a list. redis.Nil is a miss, not an error.
func (c *RedisResultCache) Get(ctx context.Context, key string) ([]int64, bool, error) {
	client := c.Client()
	if client == nil {
		return nil, false, ErrCacheClosed
	}

	data, err := c.cb.Execute(func() ([]byte, error) {
		return client.Get(ctx, key).Bytes()
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	ids, err := decodeIDs(data)
	if err != nil {
		return nil, false, err
	}
	return ids, true, nil
}

// Set writes a list with the given TTL.
func (c *RedisResultCache) Set(ctx context.Context, key string, ids []int64, ttl time.Duration) error {
	client := c.Client()
	if client == nil {
		return ErrCacheClosed
	}

	data, err := encodeIDs(ids)
	if err != nil {
		return err
	}

	_, err = c.cb.Execute(func() ([]byte, error) {
		return nil, client.Set(ctx, key, data, ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes a list. A missing key is not an error.
func (c *RedisResultCache) Delete(ctx context.Context, key string) error {
	client := c.Client()
	if client == nil {
		return ErrCacheClosed
	}

	_, err := c.cb.Execute(func() ([]byte, error) {
		return nil, client.Del(ctx, key).Err()
	})
	if err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Ping checks connectivity, bypassing the breaker so health checks always
// reflect the real state.
func (c *RedisResultCache) Ping(ctx context.Context) error {
	client := c.Client()
	if client == nil {
		return ErrCacheClosed
	}
	return client.Ping(ctx).Err()
}

// Close closes the client if it was ever created. No client is created
// after Close.
func (c *RedisResultCache) Close() error {
	c.once.Do(func() {})
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// BreakerState returns the circuit breaker state name.
func (c *RedisResultCache) BreakerState() string {
	return c.cb.State().String()
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newBreaker(name string, logger zerolog.Logger) *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
