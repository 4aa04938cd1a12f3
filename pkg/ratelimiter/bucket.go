package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Store keeps bucket state.
type Store interface {
	// ConsumeTokens spends tokens from the bucket of key when it holds
	// enough of them. remaining is the token count after spending; a
	// negative value means nothing was spent. Zero tokens only refills.
	ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

// Result is the state of a bucket after a call.
type Result struct {
	Limit     int
	Remaining int
	// ResetAt is when the next tokens are added.
	ResetAt time.Time
}

// Allowed reports whether the call that produced the result was allowed.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// CanSpend reports whether at least one more token is available.
func (r Result) CanSpend() bool {
	return r.Remaining > 0
}

// RetryAfter is the time until the next refill, zero when a token is
// available.
func (r Result) RetryAfter() time.Duration {
	if r.CanSpend() {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// Bucket is a token bucket limiter keyed by string.
type Bucket struct {
	store Store
	cfg   Config
}

func NewBucket(store Store, cfg Config) (*Bucket, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is nil", ErrInvalidConfig)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, cfg: cfg}, nil
}

// Allow spends one token of key.
func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

func (b *Bucket) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	return b.consume(ctx, key, n)
}

// Peek returns the state of key without spending a token.
func (b *Bucket) Peek(ctx context.Context, key string) (Result, error) {
	return b.consume(ctx, key, 0)
}

// Reset refills the bucket of key.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}

func (b *Bucket) consume(ctx context.Context, key string, n int) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	remaining, resetAt, err := b.store.ConsumeTokens(ctx, key, n, b.cfg)
	if err != nil {
		return Result{}, err
	}
	return Result{Limit: b.cfg.Capacity, Remaining: remaining, ResetAt: resetAt}, nil
}
