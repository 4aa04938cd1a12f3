package ratelimiter

import (
	"fmt"
	"time"
)

// Config defines a token bucket.
type Config struct {
	// Capacity is the burst size: the number of events allowed in a row.
	Capacity int `env:"RATE_LIMIT_CAPACITY" envDefault:"5"`
	// RefillRate tokens are added every RefillInterval.
	RefillRate int `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	// RefillInterval has millisecond resolution; shorter intervals are rejected.
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1m"`
}

// DefaultConfig mirrors the env defaults: five attempts, then one per minute.
func DefaultConfig() Config {
	return Config{Capacity: 5, RefillRate: 1, RefillInterval: time.Minute}
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval < time.Millisecond {
		return fmt.Errorf("%w: refill interval must be at least 1ms, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// refill returns the tokens of a bucket last refilled at lastRefill, and the
// new refill time. Intervals are capped so that large gaps cannot overflow.
func (c Config) refill(tokens int, lastRefill, now time.Time) (int, time.Time) {
	maxIntervals := int64(c.Capacity/c.RefillRate + 1)
	intervals := min(int64(now.Sub(lastRefill)/c.RefillInterval), maxIntervals)
	if intervals <= 0 {
		return tokens, lastRefill
	}
	tokens = min(tokens+int(intervals)*c.RefillRate, c.Capacity)
	if intervals == maxIntervals {
		return tokens, now
	}
	return tokens, lastRefill.Add(time.Duration(intervals) * c.RefillInterval)
}
