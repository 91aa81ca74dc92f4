package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache implements Cache on top of a Redis instance. Expiry uses
// native Redis TTLs; DeletePattern walks the keyspace with SCAN.
type redisCache struct {
	client *redis.Client
	cfg    config
}

var _ Cache = (*redisCache)(nil)

// NewRedis returns a Cache backed by Redis.
// The caller owns the redis.Client lifecycle; Close is a no-op on the client.
func NewRedis(client *redis.Client, opts ...Option) Cache {
	return &redisCache{
		client: client,
		cfg:    applyOptions(opts),
	}
}

func (c *redisCache) queryCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, c.cfg.queryTimeout)
}

// Get implements Cache.Get.
func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	qctx, cancel := c.queryCtx(ctx)
	defer cancel()

	val, err := c.client.Get(qctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get %q: %w", key, err)
	}
	return val, true, nil
}

// Set implements Cache.Set.
func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	qctx, cancel := c.queryCtx(ctx)
	defer cancel()

	if err := c.client.Set(qctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

// Delete implements Cache.Delete.
func (c *redisCache) Delete(ctx context.Context, key string) (bool, error) {
	qctx, cancel := c.queryCtx(ctx)
	defer cancel()

	removed, err := c.client.Del(qctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("cache delete %q: %w", key, err)
	}
	return removed > 0, nil
}

// DeletePattern implements Cache.DeletePattern. It iterates matching keys
// with SCAN and deletes them one batch at a time. Keys created while the
// scan is in flight may survive; the short entry TTL bounds the resulting
// staleness.
func (c *redisCache) DeletePattern(ctx context.Context, pattern string) error {
	qctx, cancel := c.queryCtx(ctx)
	defer cancel()

	iter := c.client.Scan(qctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(qctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan %q: %w", pattern, err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(qctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete pattern %q: %w", pattern, err)
	}
	return nil
}

// Close is a no-op: the caller owns the redis.Client lifecycle.
func (c *redisCache) Close() error {
	return nil
}
