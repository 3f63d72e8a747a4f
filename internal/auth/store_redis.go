// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/pressroom/internal/platform/constants"
)

// RedisSigninThrottle implements [SigninThrottle] using Redis counters.
//
// # Why Redis?
//
// Failure counters need TTL semantics and must survive a server restart
// (otherwise restarting resets an attacker's budget). They carry no
// authoritative auth state — losing them only relaxes the lockout.
type RedisSigninThrottle struct {
	client *redis.Client
}

// NewSigninThrottle creates a new Redis-backed [SigninThrottle].
func NewSigninThrottle(client *redis.Client) *RedisSigninThrottle {
	return &RedisSigninThrottle{client: client}
}

// throttleKey builds the Redis key for an email's failure counter.
func throttleKey(email string) string {
	return constants.RedisPrefixSigninFail + strings.ToLower(email)
}

// Failures returns the current failed-attempt count for the email.
//
// A missing key counts as zero failures.
func (throttle *RedisSigninThrottle) Failures(ctx context.Context, email string) (int, error) {
	count, err := throttle.client.Get(ctx, throttleKey(email)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_signin_throttle_get_failed: %w", err)
	}

	return count, nil
}

// RecordFailure increments the counter and refreshes its TTL.
func (throttle *RedisSigninThrottle) RecordFailure(ctx context.Context, email string, ttl time.Duration) error {
	key := throttleKey(email)

	// INCR + EXPIRE in one round trip.
	pipe := throttle.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis_signin_throttle_incr_failed: %w", err)
	}

	return nil
}

// Reset clears the counter after a successful sign-in.
func (throttle *RedisSigninThrottle) Reset(ctx context.Context, email string) error {
	if err := throttle.client.Del(ctx, throttleKey(email)).Err(); err != nil {
		return fmt.Errorf("redis_signin_throttle_reset_failed: %w", err)
	}

	return nil
}
