package repositories

import (
	"context"
	"time"
)

// CooldownLimiter gates repeated verification-code sends for the same
// identifier. Acquire returns false while a previous acquisition is
// still within the cooldown window.
type CooldownLimiter interface {
	Acquire(ctx context.Context, key string, cooldown time.Duration) (bool, error)
}
