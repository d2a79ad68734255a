// Package cache implements ports.Cache on Redis for multi-instance deployments
// and on an in-process store for single instances and tests.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps entries in process memory.
type MemoryCache struct {
	backend    *gocache.Cache
	defaultTTL time.Duration
}

// NewMemoryCache creates an in-process cache. Expired entries are purged every
// cleanupInterval; a non-positive interval uses defaultTTL.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if cleanupInterval <= 0 {
		cleanupInterval = defaultTTL
	}

	return &MemoryCache{
		backend:    gocache.New(defaultTTL, cleanupInterval),
		defaultTTL: defaultTTL,
	}
}

// Get returns a copy of the stored value.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	raw, ok := c.backend.Get(key)
	if !ok {
		return nil, false, nil
	}

	value, ok := raw.([]byte)
	if !ok {
		return nil, false, nil
	}

	return clone(value), true, nil
}

// Set stores a copy of value. A non-positive ttl uses the default.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.backend.Set(key, clone(value), ttl)
	return nil
}

// Delete removes the keys. Missing keys are ignored.
func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		c.backend.Delete(key)
	}
	return nil
}

// Len returns the number of stored entries, including expired ones not yet purged.
func (c *MemoryCache) Len() int {
	return c.backend.ItemCount()
}

func clone(value []byte) []byte {
	buf := make([]byte, len(value))
	copy(buf, value)
	return buf
}
