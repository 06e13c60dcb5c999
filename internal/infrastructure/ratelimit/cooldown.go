package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCooldown enforces a per-key cooldown window backed by Redis.
// SetNX gives atomicity across server instances.
type RedisCooldown struct {
	client *redis.Client
	prefix string
}

// NewRedisCooldown creates a cooldown limiter on the given client
func NewRedisCooldown(client *redis.Client, prefix string) *RedisCooldown {
	return &RedisCooldown{client: client, prefix: prefix}
}

// Acquire returns true when the key was free and is now held for the
// cooldown duration, false while a previous hold is still active.
func (c *RedisCooldown) Acquire(ctx context.Context, key string, cooldown time.Duration) (bool, error) {
	return c.client.SetNX(ctx, c.prefix+key, 1, cooldown).Result()
}

// NoopCooldown never limits. Used when Redis is not configured.
type NoopCooldown struct{}

// NewNoopCooldown creates a limiter that always admits
func NewNoopCooldown() *NoopCooldown {
	return &NoopCooldown{}
}

// Acquire always succeeds
func (NoopCooldown) Acquire(ctx context.Context, key string, cooldown time.Duration) (bool, error) {
	return true, nil
}
