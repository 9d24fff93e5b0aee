package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisLimiter_AllowsUpToLimit(t *testing.T) {
	_, rdb := newTestRedis(t)
	limiter := NewRedisLimiter(rdb, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Other clients have their own budget.
	ok, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_WindowExpires(t *testing.T) {
	mr, rdb := newTestRedis(t)
	limiter := NewRedisLimiter(rdb, 1, time.Minute)
	ctx := context.Background()

	ok, _ := limiter.Allow(ctx, "client")
	assert.True(t, ok)
	ok, _ = limiter.Allow(ctx, "client")
	assert.False(t, ok)

	assert.Equal(t, time.Minute, mr.TTL("ratelimit:client"))
	mr.FastForward(time.Minute + time.Second)

	ok, err := limiter.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_Disabled(t *testing.T) {
	mr, rdb := newTestRedis(t)
	limiter := NewRedisLimiter(rdb, 0, time.Minute)

	ok, err := limiter.Allow(context.Background(), "client")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, mr.Exists("ratelimit:client"))
}

func TestRedisLimiter_Unreachable(t *testing.T) {
	mr, rdb := newTestRedis(t)
	mr.Close()

	_, err := NewRedisLimiter(rdb, 5, time.Minute).Allow(context.Background(), "client")
	assert.Error(t, err)
}
