package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Connect opens a redis client and retries the first ping until ctx ends or the
// retry budget is spent.
func Connect(ctx context.Context, addr, password string, db int, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     20,
		MinIdleConns: 2,
	})

	policy := backoff.NewExponentialBackOff()
	policy.MaxInterval = 2 * time.Second
	policy.MaxElapsedTime = 15 * time.Second

	err := backoff.RetryNotify(
		func() error { return client.Ping(ctx).Err() },
		backoff.WithContext(policy, ctx),
		func(err error, next time.Duration) {
			logger.Warn("redis not ready, retrying", zap.String("addr", addr), zap.Duration("next", next), zap.Error(err))
		},
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}
