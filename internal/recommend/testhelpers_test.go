// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package recommend

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// mockDataProvider implements DataProvider for testing.
type mockDataProvider struct {
	orderItems   []OrderItem
	interactions []Interaction
	catalog      []int64
	volumes      []ItemVolume

	orderItemsErr   error
	interactionsErr error
	catalogErr      error
	volumesErr      error

	calls atomic.Int32
}

func (m *mockDataProvider) OrderItems(ctx context.Context) ([]OrderItem, error) {
	m.calls.Add(1)
	if m.orderItemsErr != nil {
		return nil, m.orderItemsErr
	}
	return m.orderItems, nil
}

func (m *mockDataProvider) Interactions(ctx context.Context) ([]Interaction, error) {
	m.calls.Add(1)
	if m.interactionsErr != nil {
		return nil, m.interactionsErr
	}
	return m.interactions, nil
}

func (m *mockDataProvider) CatalogItemIDs(ctx context.Context) ([]int64, error) {
	m.calls.Add(1)
	if m.catalogErr != nil {
		return nil, m.catalogErr
	}
	return m.catalog, nil
}

func (m *mockDataProvider) PurchaseVolume(ctx context.Context) ([]ItemVolume, error) {
	m.calls.Add(1)
	if m.volumesErr != nil {
		return nil, m.volumesErr
	}
	return m.volumes, nil
}

// mockUsers implements UserDirectory for testing.
type mockUsers struct {
	known map[int64]bool
	err   error
}

func (m *mockUsers) UserExists(ctx context.Context, userID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.known[userID], nil
}

func usersOf(ids ...int64) *mockUsers {
	known := make(map[int64]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return &mockUsers{known: known}
}

// mockCache implements ResultCache for testing.
type mockCache struct {
	mu      sync.Mutex
	entries map[string][]int64
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	delErr  error
	pingErr error
	sets    int
	deletes int
}

func newMockCache() *mockCache {
	return &mockCache{
		entries: make(map[string][]int64),
		ttls:    make(map[string]time.Duration),
	}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	ids, ok := m.entries[key]
	return ids, ok, nil
}

func (m *mockCache) Set(ctx context.Context, key string, ids []int64, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = append([]int64(nil), ids...)
	m.ttls[key] = ttl
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.entries, key)
	delete(m.ttls, key)
	return nil
}

func (m *mockCache) Ping(ctx context.Context) error {
	return m.pingErr
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
