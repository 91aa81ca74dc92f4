package cache

import (
	"context"
	"path"
	"sync"
	"time"
)

// entry is a stored value plus its expiry deadline.
type entry struct {
	value   string
	expires time.Time
}

// memoryCache is an in-process Cache backed by a mutex-guarded map.
// It is the substitute backend for tests and cache-less deployments.
// Expired entries are evicted lazily on access.
type memoryCache struct {
	mu    sync.Mutex
	items map[string]entry
	cfg   config
}

var _ Cache = (*memoryCache)(nil)

// NewMemory returns an in-memory Cache implementation.
func NewMemory(opts ...Option) Cache {
	return &memoryCache{
		items: make(map[string]entry),
		cfg:   applyOptions(opts),
	}
}

// Get implements Cache.Get.
func (c *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return "", false, nil
	}
	if !e.expires.After(c.cfg.timeFunc()) {
		delete(c.items, key)
		return "", false, nil
	}
	return e.value, true, nil
}

// Set implements Cache.Set.
func (c *memoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry{
		value:   value,
		expires: c.cfg.timeFunc().Add(ttl),
	}
	return nil
}

// Delete implements Cache.Delete.
func (c *memoryCache) Delete(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.items[key]
	delete(c.items, key)
	return ok, nil
}

// DeletePattern implements Cache.DeletePattern using path.Match semantics,
// which cover the glob shapes the task service produces (exact strings and
// trailing-star prefixes).
func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if ok, err := path.Match(pattern, key); err != nil {
			return err
		} else if ok {
			delete(c.items, key)
		}
	}
	return nil
}

// Close implements Cache.Close.
func (c *memoryCache) Close() error {
	return nil
}
