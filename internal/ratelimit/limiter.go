// Package ratelimit provides fixed-window request limiting keyed by
// client and operation. The limiter is injected rather than ambient so
// handlers stay testable and backends stay swappable.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter reports whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter implements a fixed-window counter over Redis INCR/EXPIRE.
// Windows are shared across processes; the counter increment is atomic.
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRedisLimiter builds a Redis-backed fixed-window limiter.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: int64(limit), window: window}
}

// Allow increments the window counter for key and rejects once the quota is
// exceeded. Redis failures fail open: limiting degrades, requests proceed.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := "rl:" + key
	cnt, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, err
	}
	if cnt == 1 {
		l.client.Expire(ctx, redisKey, l.window)
	}
	return cnt <= l.limit, nil
}

type windowState struct {
	count int64
	reset time.Time
}

// MemoryLimiter is a process-local fixed-window counter for development and
// tests.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int64
	window  time.Duration
	windows map[string]windowState
	now     func() time.Time
}

// NewMemoryLimiter builds an in-memory fixed-window limiter.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   int64(limit),
		window:  window,
		windows: make(map[string]windowState),
		now:     time.Now,
	}
}

// Allow increments the counter for key, resetting it at window boundaries.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	state, ok := l.windows[key]
	if !ok || now.After(state.reset) {
		state = windowState{count: 0, reset: now.Add(l.window)}
	}
	state.count++
	l.windows[key] = state
	return state.count <= l.limit, nil
}
