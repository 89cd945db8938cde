// Package cache provides a small in-memory cache with per-entry expiry.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	createdAt time.Time
	value     V
}

// TTL is a mutex-guarded map whose entries expire a fixed duration after being set.
type TTL[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[V]
	now     func() time.Time
}

// NewTTL creates a cache whose entries live for ttl.
func NewTTL[V any](ttl time.Duration) *TTL[V] {
	return &TTL[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// WithClock replaces the clock used for expiry.
func (c *TTL[V]) WithClock(now func() time.Time) *TTL[V] {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
	return c
}

// Get returns the value stored under key if it has not expired.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if c.now().Before(e.createdAt.Add(c.ttl)) {
			return e.value, true
		}
		delete(c.entries, key)
	}
	var zero V
	return zero, false
}

// Set stores value under key, replacing any previous entry.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{createdAt: c.now(), value: value}
	c.mu.Unlock()
}

// Delete removes key.
func (c *TTL[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired or not.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
