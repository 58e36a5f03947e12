// Package ratelimit provides sliding-window request rate limiting for the
// proxy boundary.
package ratelimit

import (
	"context"
	"time"
)

// RateLimiter answers whether a keyed caller may proceed within a sliding
// window. Keys are caller identities; the limiter never inspects them.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Remaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
