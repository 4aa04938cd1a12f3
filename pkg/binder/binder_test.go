package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/binder"
)

type loginRequest struct {
	Username string   `form:"username"`
	Password string   `form:"password"`
	Remember bool     `form:"remember"`
	Next     *string  `form:"next"`
	Scopes   []string `form:"scopes"`
	Attempt  int      `form:"attempt"`
	Internal string   `form:"-"`
	Untagged string
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		req := formRequest(url.Values{
			"username": {"admin@example.com"},
			"password": {"secret123"},
			"remember": {"on"},
			"next":     {"/dashboard"},
			"scopes":   {"read,write"},
			"attempt":  {"2"},
			"Internal": {"x"},
			"Untagged": {"y"},
		})

		var got loginRequest
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, "admin@example.com", got.Username)
		assert.Equal(t, "secret123", got.Password)
		assert.True(t, got.Remember)
		require.NotNil(t, got.Next)
		assert.Equal(t, "/dashboard", *got.Next)
		assert.Equal(t, []string{"read", "write"}, got.Scopes)
		assert.Equal(t, 2, got.Attempt)
		assert.Empty(t, got.Internal)
		assert.Empty(t, got.Untagged)
	})

	t.Run("query string is ignored", func(t *testing.T) {
		t.Parallel()
		req := formRequest(url.Values{"password": {"secret123"}})
		req.URL.RawQuery = "username=from-query"

		var got loginRequest
		require.NoError(t, binder.Form()(req, &got))
		assert.Empty(t, got.Username)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("username", "admin@example.com"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/login", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		var got loginRequest
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, "admin@example.com", got.Username)
	})

	t.Run("content type errors", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{}"))
		var got loginRequest
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrMissingContentType)

		req.Header.Set("Content-Type", "application/json")
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrUnsupportedMediaType)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		var got loginRequest
		err := binder.Form()(formRequest(url.Values{"attempt": {"many"}}), &got)
		assert.ErrorIs(t, err, binder.ErrInvalidForm)
	})

	t.Run("target must be a struct pointer", func(t *testing.T) {
		t.Parallel()
		var s string
		assert.ErrorIs(t, binder.Form()(formRequest(url.Values{}), &s), binder.ErrInvalidForm)
		assert.ErrorIs(t, binder.Form()(formRequest(url.Values{}), loginRequest{}), binder.ErrInvalidForm)
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	type validateRequest struct {
		Field string `path:"field"`
		Step  uint   `path:"step"`
		Skip  string `path:"-"`
	}
	params := map[string]string{"field": "username", "step": "3", "-": "nope"}
	extract := func(_ *http.Request, name string) string { return params[name] }

	t.Run("binds params", func(t *testing.T) {
		t.Parallel()
		var got validateRequest
		require.NoError(t, binder.Path(extract)(httptest.NewRequest(http.MethodPost, "/", nil), &got))
		assert.Equal(t, "username", got.Field)
		assert.Equal(t, uint(3), got.Step)
		assert.Empty(t, got.Skip)
	})

	t.Run("nil extractor", func(t *testing.T) {
		t.Parallel()
		var got validateRequest
		assert.ErrorIs(t, binder.Path(nil)(httptest.NewRequest(http.MethodPost, "/", nil), &got), binder.ErrInvalidPath)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		bad := func(_ *http.Request, name string) string { return map[string]string{"step": "-1"}[name] }
		var got validateRequest
		assert.ErrorIs(t, binder.Path(bad)(httptest.NewRequest(http.MethodPost, "/", nil), &got), binder.ErrInvalidPath)
	})
}
