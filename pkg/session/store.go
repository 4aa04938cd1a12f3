package session

import (
	"context"
	"time"
)

// Store persists sessions by token.
type Store interface {
	Create(ctx context.Context, s *Session) error
	// Get returns ErrSessionNotFound for unknown tokens and
	// ErrSessionExpired for expired sessions.
	Get(ctx context.Context, token string) (*Session, error)
	// Touch records activity and moves the expiry.
	Touch(ctx context.Context, token string, at, expiresAt time.Time) error
	Delete(ctx context.Context, token string) error
}
