package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const tokenBytes = 32

// Session is an authenticated admin session.
type Session struct {
	ID             uuid.UUID `json:"id"`
	Token          string    `json:"token"`
	Username       string    `json:"username"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// New creates a session for username valid for ttl.
func New(username string, ttl time.Duration) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		Username:       username,
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(ttl),
	}, nil
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// TTL returns the time left before expiry, zero when expired.
func (s *Session) TTL() time.Duration {
	if s == nil {
		return 0
	}
	return max(time.Until(s.ExpiresAt), 0)
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
