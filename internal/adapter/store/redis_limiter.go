package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window request counter per client.
type RedisLimiter struct {
	client *redis.Client
	limit  int // Max requests per window; 0 disables limiting
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow counts one request for clientID and reports whether it fits in the
// current window.
func (r *RedisLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	if r.limit <= 0 {
		return true, nil
	}

	key := "ratelimit:" + clientID
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		// First hit opens the window
		if err := r.client.Expire(ctx, key, r.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(r.limit), nil
}
