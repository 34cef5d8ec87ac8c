// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/rollbook/internal/platform/constants"
)

// # Redis Throttle Repository

// RedisThrottleRepository counts failed login attempts per login value.
// Counters expire on their own, so a quiet account costs nothing.
type RedisThrottleRepository struct {
	client *redis.Client
}

// NewRedisThrottleRepository creates a Redis-backed throttle store.
func NewRedisThrottleRepository(client *redis.Client) *RedisThrottleRepository {
	return &RedisThrottleRepository{client: client}
}

// Failures returns the current failed-attempt count for a login.
// A missing key reads as zero.
func (repository *RedisThrottleRepository) Failures(ctx context.Context, login string) (int64, error) {
	count, err := repository.client.Get(ctx, throttleKey(login)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read login failure counter: %w", err)
	}

	return count, nil
}

// RecordFailure increments the counter and starts the expiry window on the
// first failure. Later failures ride the existing window.
func (repository *RedisThrottleRepository) RecordFailure(ctx context.Context, login string) (int64, error) {
	key := throttleKey(login)

	count, err := repository.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment login failure counter: %w", err)
	}

	if count == 1 {
		if err := repository.client.Expire(ctx, key, constants.LoginThrottleWindow).Err(); err != nil {
			return count, fmt.Errorf("failed to set login failure counter expiry: %w", err)
		}
	}

	return count, nil
}

// Reset clears the counter after a successful login.
func (repository *RedisThrottleRepository) Reset(ctx context.Context, login string) error {
	if err := repository.client.Del(ctx, throttleKey(login)).Err(); err != nil {
		return fmt.Errorf("failed to reset login failure counter: %w", err)
	}

	return nil
}

func throttleKey(login string) string {
	return constants.RedisPrefixLoginFail + login
}
