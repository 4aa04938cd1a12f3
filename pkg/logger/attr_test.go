package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	assert.Len(t, attr.Value.Group(), 2)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, "error", logger.Error(err).Key)
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	assert.True(t, logger.Form("login-form").Equal(slog.String("form", "login-form")))
	assert.True(t, logger.Field("username").Equal(slog.String("field", "username")))
	assert.True(t, logger.Component("formbind").Equal(slog.String("component", "formbind")))
	assert.True(t, logger.RequestID("abc").Equal(slog.String("request_id", "abc")))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.True(t, logger.ClientIP("192.0.2.1").Equal(slog.String("client_ip", "192.0.2.1")))
	assert.True(t, logger.Username("admin@example.com").Equal(slog.String("username", "admin@example.com")))
	assert.Equal(t, "invalid_fields", logger.InvalidFields([]string{"username"}).Key)
}
