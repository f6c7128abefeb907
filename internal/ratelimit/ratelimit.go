// Package ratelimit caps public form submissions per client.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter reports whether one more request for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Noop allows everything. It is used when no Redis address is configured.
type Noop struct{}

func (Noop) Allow(context.Context, string) (bool, error) { return true, nil }

// Counter is the part of the redis client a fixed window needs.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// Redis is a fixed-window counter: the first hit in a window starts its TTL.
type Redis struct {
	client Counter
	prefix string
	limit  int64
	window time.Duration
}

func NewRedis(client Counter, prefix string, limit int, window time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, limit: int64(limit), window: window}
}

func (l *Redis) Allow(ctx context.Context, key string) (bool, error) {
	k := buildKey(l.prefix, key)

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("increment rate counter: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("set rate window: %w", err)
		}
	}
	return count <= l.limit, nil
}

func buildKey(prefix, key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", prefix, key)
}
