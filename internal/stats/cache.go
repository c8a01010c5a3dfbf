// Package stats serves public aggregate counters.
package stats

import (
	"context"
	"sync"
	"time"
)

const DefaultTTL = 5 * time.Minute

// CountFunc loads the current value from storage.
type CountFunc func(ctx context.Context) (int, error)

// CountCache memoizes a count for TTL. It is owned by the composition root
// and can be reset between tests.
type CountCache struct {
	Load CountFunc
	TTL  time.Duration

	mu        sync.Mutex
	value     int
	fetchedAt time.Time
	valid     bool
	now       func() time.Time
}

func NewCountCache(load CountFunc, ttl time.Duration) *CountCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CountCache{Load: load, TTL: ttl, now: time.Now}
}

// Get returns the cached value while fresh, reloading it otherwise. Errors
// are not cached.
func (c *CountCache) Get(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock()
	if c.valid && now.Sub(c.fetchedAt) < c.TTL {
		return c.value, nil
	}
	value, err := c.Load(ctx)
	if err != nil {
		return 0, err
	}
	c.value = value
	c.fetchedAt = now
	c.valid = true
	return value, nil
}

// Reset drops the cached value.
func (c *CountCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.value = 0
	c.fetchedAt = time.Time{}
}

func (c *CountCache) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}
