// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package catalog

import (
	"sync"
	"time"

	"github.com/aterii/practice-4/internal/metrics"
)

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// responseCache is a thread-safe TTL cache of upstream response bodies.
// Expired entries are dropped on read and swept on write at most once per
// ttl.
type responseCache struct {
	mu        sync.RWMutex
	entries   map[string]cacheEntry
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *responseCache) enabled() bool {
	return c != nil && c.ttl > 0
}

func (c *responseCache) get(key string) ([]byte, bool) {
	if !c.enabled() {
		return nil, false
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expiresAt) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		metrics.RecordCatalogCache(false)
		return nil, false
	}

	metrics.RecordCatalogCache(true)
	return entry.data, true
}

func (c *responseCache) set(key string, data []byte) {
	if !c.enabled() {
		return
	}

	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	if now.Sub(c.lastSweep) > c.ttl {
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
			}
		}
		c.lastSweep = now
	}
	c.entries[key] = cacheEntry{data: data, expiresAt: now.Add(c.ttl)}
}

func (c *responseCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
