// Package ratelimiter counts events per key with a token bucket.
//
// A bucket starts full with Capacity tokens and regains RefillRate tokens
// every RefillInterval. Allow spends a token; Peek reports the state
// without spending one. The login module uses it to throttle failed
// sign-in attempts per client:
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	if res, _ := limiter.Peek(ctx, key); !res.CanSpend() {
//		// wait res.RetryAfter()
//	}
//
// MemoryStore serves a single process; RedisStore shares the buckets between
// instances.
package ratelimiter
