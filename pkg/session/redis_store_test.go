package session_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/session"
)

func TestRedisStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL is not set")
	}
	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)
	client := goredis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	store := session.NewRedisStore(client, "formguard:test:session:")

	s, err := session.New("admin@example.com", time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, s))

	ttl, err := client.TTL(ctx, "formguard:test:session:"+s.Token).Result()
	require.NoError(t, err)
	assert.InDelta(t, time.Minute.Seconds(), ttl.Seconds(), 2)

	got, err := store.Get(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "admin@example.com", got.Username)

	require.NoError(t, store.Touch(ctx, s.Token, time.Now(), time.Now().Add(time.Hour)))
	ttl, err = client.TTL(ctx, "formguard:test:session:"+s.Token).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Minute)

	require.NoError(t, store.Delete(ctx, s.Token))
	_, err = store.Get(ctx, s.Token)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	assert.ErrorIs(t, store.Create(ctx, &session.Session{}), session.ErrInvalidSession)
}
