package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "formguard:session:"

// RedisStore keeps sessions as JSON values whose Redis TTL follows the
// session expiry.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store on client. An empty prefix selects the
// default key prefix.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return ErrInvalidSession
	}
	return r.save(ctx, s)
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := r.client.Get(ctx, r.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: redis get: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}
	if s.IsExpired() {
		_ = r.Delete(ctx, token)
		return nil, ErrSessionExpired
	}
	return &s, nil
}

func (r *RedisStore) Touch(ctx context.Context, token string, at, expiresAt time.Time) error {
	s, err := r.Get(ctx, token)
	if err != nil {
		return err
	}
	s.LastActivityAt = at
	s.ExpiresAt = expiresAt
	return r.save(ctx, s)
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}

func (r *RedisStore) save(ctx context.Context, s *Session) error {
	ttl := s.TTL()
	if ttl <= 0 {
		return ErrSessionExpired
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return errors.Join(ErrInvalidSession, err)
	}
	if err := r.client.Set(ctx, r.key(s.Token), raw, ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

func (r *RedisStore) key(token string) string {
	return r.prefix + token
}
