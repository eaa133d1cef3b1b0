package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateCounter keeps fixed-window request counts in Redis so every API
// instance enforces the same limit. It satisfies middleware.RateCounter.
type RedisRateCounter struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisRateCounter stores counters under prefix+"rl:"+key
func NewRedisRateCounter(client redis.UniversalClient, prefix string) *RedisRateCounter {
	return &RedisRateCounter{client: client, prefix: prefix + "rl:"}
}

// Hit increments the window counter. The first hit of a window sets its
// expiry, so the window starts at the first request.
func (c *RedisRateCounter) Hit(ctx context.Context, key string, window time.Duration) (int, time.Duration, error) {
	k := c.prefix + key
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	reset := ttl.Val()
	if reset <= 0 {
		if err := c.client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, 0, err
		}
		reset = window
	}
	return int(incr.Val()), reset, nil
}

// Peek returns the count of the current window, zero when none is open
func (c *RedisRateCounter) Peek(ctx context.Context, key string) (int, error) {
	n, err := c.client.Get(ctx, c.prefix+key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}
