package session

import (
	"fmt"
	"time"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds session settings.
type Config struct {
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	// ActivityThreshold is the minimum time between two expiry extensions.
	ActivityThreshold time.Duration `env:"SESSION_ACTIVITY_THRESHOLD" envDefault:"5m"`
	// Store selects the backend: memory or redis.
	Store           string        `env:"SESSION_STORE" envDefault:"memory"`
	RedisKeyPrefix  string        `env:"SESSION_REDIS_PREFIX" envDefault:"formguard:session:"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
	SecureCookies   bool          `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns the defaults of the env tags.
func DefaultConfig() Config {
	return Config{
		CookieName:        "sid",
		TTL:               12 * time.Hour,
		ActivityThreshold: 5 * time.Minute,
		Store:             StoreMemory,
		RedisKeyPrefix:    defaultKeyPrefix,
		CleanupInterval:   5 * time.Minute,
	}
}

// Validate checks the store name.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreRedis:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownStore, c.Store)
}
