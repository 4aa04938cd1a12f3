package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/handler"
	"github.com/dmitrymomot/formguard/pkg/binder"
)

type loginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("binds request and renders response", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, req loginRequest) handler.Response {
			assert.Equal(t, "/login", ctx.Request().URL.Path)
			return handler.Templ(text("hello " + req.Username))
		}, handler.WithBinders[handler.Context, loginRequest](binder.Form()))

		rec := httptest.NewRecorder()
		h(rec, postForm(url.Values{"username": {"admin@example.com"}}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello admin@example.com", rec.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("binding failure is a bad request", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(handler.Context, loginRequest) handler.Response {
			t.Error("handler must not run")
			return nil
		}, handler.WithBinders[handler.Context, loginRequest](binder.Form()))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(func(handler.Context, loginRequest) handler.Response { return nil },
			handler.WithErrorHandler[handler.Context, loginRequest](func(_ handler.Context, err error) { got = err }),
		)
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, got, handler.ErrNilResponse)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		mark := func(name string) handler.Decorator[handler.Context, loginRequest] {
			return func(next handler.HandlerFunc[handler.Context, loginRequest]) handler.HandlerFunc[handler.Context, loginRequest] {
				return func(ctx handler.Context, req loginRequest) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.Wrap(func(handler.Context, loginRequest) handler.Response {
			order = append(order, "handler")
			return handler.Templ(text("ok"))
		}, handler.WithDecorators(mark("outer"), mark("inner")))

		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"outer", "inner", "handler"}, order)
	})

	t.Run("validation error maps to 422", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(handler.Context, loginRequest) handler.Response {
			return handler.Error(handler.ValidationError{"username": {"Username is required!"}})
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "username: Username is required!")
	})
}

func TestTemplResponses(t *testing.T) {
	t.Parallel()

	t.Run("partial for datastar", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set(handler.DataStarRequestHeader, "true")
		rec := httptest.NewRecorder()

		resp := handler.WithStatus(http.StatusUnprocessableEntity,
			handler.TemplPartial(text(`<form id="login-form"></form>`), text("<html>full</html>"), handler.WithTarget("#login-form")))
		require.NoError(t, resp.Render(rec, req))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
		assert.Contains(t, rec.Body.String(), "datastar-patch-elements")
		assert.Contains(t, rec.Body.String(), `<form id="login-form"></form>`)
		assert.NotContains(t, rec.Body.String(), "full")
	})

	t.Run("full page with status", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		resp := handler.WithStatus(http.StatusUnprocessableEntity, handler.TemplPartial(text("partial"), text("full")))
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodPost, "/login", nil)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "full", rec.Body.String())
	})

	t.Run("status on other responses", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		inner := responseFunc(func(w http.ResponseWriter, _ *http.Request) error {
			_, err := io.WriteString(w, "body")
			return err
		})
		require.NoError(t, handler.WithStatus(http.StatusAccepted, inner).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusAccepted, rec.Code)
	})
}

type responseFunc func(http.ResponseWriter, *http.Request) error

func (f responseFunc) Render(w http.ResponseWriter, r *http.Request) error { return f(w, r) }

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("regular", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/").Render(rec, httptest.NewRequest(http.MethodPost, "/login", nil)))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("datastar", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("Accept", "text/event-stream")
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/").Render(rec, req))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "window.location")
	})

	t.Run("safe redirect", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "http://admin.example.com/login", nil)
		for target, want := range map[string]string{
			"/dashboard":             "/dashboard",
			"":                       "/",
			"//evil.example.com/":    "/",
			"https://evil.example/x": "/",
		} {
			rec := httptest.NewRecorder()
			require.NoError(t, handler.SafeRedirect(req, target, "/").Render(rec, req))
			assert.Equal(t, want, rec.Header().Get("Location"), target)
		}
	})
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		header, value, query string
		want                 bool
	}{
		"request header": {header: "Datastar-Request", value: "true", want: true},
		"accept":         {header: "Accept", value: "text/html, text/event-stream", want: true},
		"query":          {query: "?datastar=%7B%7D", want: true},
		"plain":          {header: "Accept", value: "text/html"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			assert.Equal(t, tc.want, handler.IsDataStar(req))
		})
	}
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	page := func(p handler.ErrorPageParams) templ.Component { return text("page: " + p.Error) }
	toast := func(p handler.ErrorToastParams) templ.Component { return text(p.Type + ": " + p.Message) }
	eh := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{ErrorPage: page, ErrorToast: toast})

	t.Run("generic error hides details", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), errors.New("db password leaked"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "leaked")
	})

	t.Run("http error", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "page: not_found", rec.Body.String())
	})

	t.Run("datastar toast", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(handler.DataStarRequestHeader, "true")
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, req), handler.ErrTooManyRequests)
		assert.Contains(t, rec.Body.String(), "warning: too_many_requests")
	})

	t.Run("plain fallback", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		plain := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{})
		plain(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrForbidden)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "forbidden\n", rec.Body.String())
	})
}
