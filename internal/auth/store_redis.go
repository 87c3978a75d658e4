// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/owuorvin/task-management-backend/internal/platform/constants"
)

// # Login Attempt Repository

// RedisAttemptRepository implements AttemptRepository using Redis.
type RedisAttemptRepository struct {
	client *redis.Client
}

// NewAttemptRepository creates a new Redis-backed AttemptRepository.
func NewAttemptRepository(client *redis.Client) *RedisAttemptRepository {
	return &RedisAttemptRepository{client: client}
}

/*
Increment bumps the failed-attempt counter and returns the new count.

Description: INCR followed by EXPIRE on first creation, so the window starts
at the first failure and the key self-destructs after the TTL.

Parameters:
  - context: context.Context
  - key: string
  - ttl: time.Duration

Returns:
  - int64: Counter value after the increment
  - error: Execution errors
*/
func (repository *RedisAttemptRepository) Increment(context context.Context, key string, ttl time.Duration) (int64, error) {

	// Use constants for key prefix
	redisKey := fmt.Sprintf("%s%s", constants.RedisPrefixLoginAttempt, key)

	// Atomically increment the counter
	count, err := repository.client.Incr(context, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_login_attempt_incr_failed: %w", err)
	}

	// Attach the TTL only when the counter was just created
	if count == 1 {
		if err := repository.client.Expire(context, redisKey, ttl).Err(); err != nil {
			return count, fmt.Errorf("redis_login_attempt_expire_failed: %w", err)
		}
	}

	// Return the post-increment value
	return count, nil
}

/*
Reset clears the failed-attempt counter for a key.

Description: Called after a successful login so an honest user does not keep
accumulating stale failures.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisAttemptRepository) Reset(context context.Context, key string) error {

	// Use constants for key prefix
	redisKey := fmt.Sprintf("%s%s", constants.RedisPrefixLoginAttempt, key)

	// Delete the counter from Redis
	if err := repository.client.Del(context, redisKey).Err(); err != nil {
		return fmt.Errorf("redis_login_attempt_reset_failed: %w", err)
	}

	// Return nil on success
	return nil
}
