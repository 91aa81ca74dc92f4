package cache

import (
	"context"
	"time"
)

// DefaultQueryTimeout bounds each cache operation when no explicit timeout
// is configured. It is deliberately short: the backing store can always
// answer, so waiting on a slow cache buys nothing.
const DefaultQueryTimeout = 200 * time.Millisecond

// Cache is a string-keyed, string-valued store with per-key expiry and
// glob-pattern deletion. Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves the value stored under key.
	// The second return value is false on a miss (absent or expired key).
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key with the given time-to-live,
	// unconditionally overwriting any existing entry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes the entry stored under exactly key.
	// Returns true if an entry was removed.
	Delete(ctx context.Context, key string) (bool, error)

	// DeletePattern removes every currently-stored key matching the glob
	// pattern (e.g. "tasks:42:*"). Best-effort and not atomic with respect
	// to concurrent writers.
	DeletePattern(ctx context.Context, pattern string) error

	// Close releases resources held by the cache.
	Close() error
}

// config holds the resolved configuration for a cache implementation.
type config struct {
	queryTimeout time.Duration
	timeFunc     func() time.Time
}

// Option configures a Cache implementation.
type Option func(*config)

func applyOptions(opts []Option) config {
	cfg := config{
		queryTimeout: DefaultQueryTimeout,
		timeFunc:     time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithQueryTimeout sets the per-operation timeout for I/O-backed caches.
// Defaults to DefaultQueryTimeout.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *config) { c.queryTimeout = d }
}

// WithTimeFunc overrides the clock used for expiry decisions by the
// in-memory backend. Intended for tests that simulate the passage of time.
func WithTimeFunc(f func() time.Time) Option {
	return func(c *config) { c.timeFunc = f }
}
