// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	key       string
	ids       []int64
	expiresAt time.Time
	prev      *memoryEntry
	next      *memoryEntry
}

// MemoryResultCache is a thread-safe LRU with per-entry TTL.
//
// A doubly-linked list keeps recency order (head.next is the most recent)
// and a map gives O(1) lookup. Expired entries are dropped lazily on read.
type MemoryResultCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*memoryEntry
	head     *memoryEntry
	tail     *memoryEntry
	now      func() time.Time
}

// NewMemoryResultCache creates a cache holding at most capacity lists.
func NewMemoryResultCache(capacity int) *MemoryResultCache {
	if capacity <= 0 {
		capacity = 10000
	}
	c := &MemoryResultCache{
		capacity: capacity,
		items:    make(map[string]*memoryEntry, capacity),
		head:     &memoryEntry{},
		tail:     &memoryEntry{},
		now:      time.Now,
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Name implements Backend.
func (c *MemoryResultCache) Name() string { return "memory" }

// Get returns a copy of the cached list.
func (c *MemoryResultCache) Get(_ context.Context, key string) ([]int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		c.remove(entry)
		return nil, false, nil
	}

	c.moveToFront(entry)
	return append([]int64(nil), entry.ids...), true, nil
}

// Set stores a copy of ids, evicting the least recently used list when full.
func (c *MemoryResultCache) Set(_ context.Context, key string, ids []int64, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(ttl)
	stored := append([]int64(nil), ids...)

	if entry, ok := c.items[key]; ok {
		entry.ids = stored
		entry.expiresAt = expiresAt
		c.moveToFront(entry)
		return nil
	}

	entry := &memoryEntry{key: key, ids: stored, expiresAt: expiresAt}
	c.addToFront(entry)
	c.items[key] = entry

	for len(c.items) > c.capacity {
		c.remove(c.tail.prev)
	}
	return nil
}

// Delete drops key if present.
func (c *MemoryResultCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		c.remove(entry)
	}
	return nil
}

// Ping always succeeds.
func (c *MemoryResultCache) Ping(context.Context) error { return nil }

// Close drops every entry.
func (c *MemoryResultCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*memoryEntry, c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
	return nil
}

// Len returns the number of stored lists, expired ones included.
func (c *MemoryResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// must be called with mu held

func (c *MemoryResultCache) addToFront(entry *memoryEntry) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *MemoryResultCache) moveToFront(entry *memoryEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

func (c *MemoryResultCache) remove(entry *memoryEntry) {
	if entry == c.head || entry == c.tail {
		return
	}
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}
