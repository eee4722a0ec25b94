package caching

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "toolnav:ratelimit:"

// RateLimiter counts submissions per client in fixed windows
type RateLimiter interface {
	// Allow records one attempt for key and reports whether it is within the limit
	Allow(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}

// counter is the subset of redis commands the limiter uses
type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

type redisRateLimiter struct {
	client counter
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewRedisClient accepts either host:port or a redis:// URL
func NewRedisClient(addr, password string, db int) *redis.Client {
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if opts, err := redis.ParseURL(addr); err == nil {
			if password != "" {
				opts.Password = password
			}
			return redis.NewClient(opts)
		}
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisRateLimiter(client counter, limit int, window time.Duration, logger *zap.Logger) RateLimiter {
	return &redisRateLimiter{client: client, limit: limit, window: window, logger: logger}
}

// Allow fails open: when redis is unreachable the attempt is allowed and the
// error returned for logging.
func (r *redisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if r.limit <= 0 {
		return true, nil
	}

	cacheKey := keyPrefix + key
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		r.logger.Warn("rate limiter unavailable", zap.String("key", cacheKey), zap.Error(err))
		return true, fmt.Errorf("incr %s: %w", cacheKey, err)
	}

	// Set expiry on first attempt of the window
	if count == 1 {
		if err := r.client.Expire(ctx, cacheKey, r.window).Err(); err != nil {
			r.logger.Warn("rate limiter expire failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return count <= int64(r.limit), nil
}

func (r *redisRateLimiter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

type noopRateLimiter struct{}

// NewNoopRateLimiter allows everything; used when redis is not configured
func NewNoopRateLimiter() RateLimiter {
	return noopRateLimiter{}
}

func (noopRateLimiter) Allow(context.Context, string) (bool, error) {
	return true, nil
}

func (noopRateLimiter) Ping(context.Context) error {
	return nil
}
