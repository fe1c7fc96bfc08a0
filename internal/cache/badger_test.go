// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recommender/internal/config"
)

func newTestBadger(t *testing.T) *BadgerResultCache {
	t.Helper()
	c, err := NewBadgerResultCache(&config.BadgerConfig{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewBadgerResultCache() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestBadgerResultCache_SetGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newTestBadger(t)

	if _, ok, err := c.Get(ctx, "user:7:recommendations"); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	want := []int64{5, 3, 9}
	if err := c.Set(ctx, "user:7:recommendations", want, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := c.Get(ctx, "user:7:recommendations")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if !equalIDs(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestBadgerResultCache_TTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newTestBadger(t)

	if err := c.Set(ctx, "short", []int64{1}, time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	// badger TTL has one second granularity
	time.Sleep(2100 * time.Millisecond)

	if _, ok, err := c.Get(ctx, "short"); ok || err != nil {
		t.Errorf("expected expired miss, got ok=%v err=%v", ok, err)
	}
}

func TestBadgerResultCache_Closed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newTestBadger(t)

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping() on open store error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := c.Ping(ctx); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Ping() after close = %v, want ErrCacheClosed", err)
	}
	if err := c.Set(ctx, "k", []int64{1}, time.Hour); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set() after close = %v, want ErrCacheClosed", err)
	}
	if _, _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get() after close = %v, want ErrCacheClosed", err)
	}
	if err := c.Delete(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Delete() after close = %v, want ErrCacheClosed", err)
	}
}

func TestBadgerResultCache_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newTestBadger(t)

	if err := c.Delete(ctx, "user:7:recommendations"); err != nil {
		t.Errorf("Delete() of absent key error = %v", err)
	}
	if err := c.Set(ctx, "user:7:recommendations", []int64{5, 3}, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "user:7:recommendations"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, err := c.Get(ctx, "user:7:recommendations"); ok || err != nil {
		t.Errorf("expected miss after delete, got ok=%v err=%v", ok, err)
	}
}

func TestBadgerResultCache_ServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	c := newTestBadger(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- c.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
