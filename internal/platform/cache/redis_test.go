package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedis(client), mr
}

func TestRedisCacheGetSet(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		c, _ := newTestRedis(t)
		require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

		val, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v", val)
	})

	t.Run("missing key is a miss, not an error", func(t *testing.T) {
		c, _ := newTestRedis(t)

		_, ok, err := c.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("entry expires after its TTL", func(t *testing.T) {
		c, mr := newTestRedis(t)
		require.NoError(t, c.Set(ctx, "k", "v", 60*time.Second))

		mr.FastForward(59 * time.Second)
		_, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)

		mr.FastForward(2 * time.Second)
		_, ok, err = c.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unreachable server returns an error", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		c := NewRedis(client)
		mr.Close()

		_, _, err := c.Get(ctx, "k")
		assert.Error(t, err)
	})
}

func TestRedisCacheDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("delete reports whether a key existed", func(t *testing.T) {
		c, _ := newTestRedis(t)
		require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

		removed, err := c.Delete(ctx, "k")
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = c.Delete(ctx, "k")
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestRedisCacheDeletePattern(t *testing.T) {
	ctx := context.Background()

	t.Run("sweeps one owner's listings only", func(t *testing.T) {
		c, _ := newTestRedis(t)
		require.NoError(t, c.Set(ctx, "tasks:owner-a:0:20", "[]", time.Minute))
		require.NoError(t, c.Set(ctx, "tasks:owner-a:0:20:done", "[]", time.Minute))
		require.NoError(t, c.Set(ctx, "tasks:owner-b:0:20", "[]", time.Minute))
		require.NoError(t, c.Set(ctx, "task:owner-a:some-id", "{}", time.Minute))

		require.NoError(t, c.DeletePattern(ctx, "tasks:owner-a:*"))

		_, ok, _ := c.Get(ctx, "tasks:owner-a:0:20")
		assert.False(t, ok)
		_, ok, _ = c.Get(ctx, "tasks:owner-a:0:20:done")
		assert.False(t, ok)
		_, ok, _ = c.Get(ctx, "tasks:owner-b:0:20")
		assert.True(t, ok)
		_, ok, _ = c.Get(ctx, "task:owner-a:some-id")
		assert.True(t, ok)
	})

	t.Run("empty keyspace is a no-op", func(t *testing.T) {
		c, _ := newTestRedis(t)
		assert.NoError(t, c.DeletePattern(ctx, "tasks:nobody:*"))
	})
}
