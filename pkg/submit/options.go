package submit

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures HTTP.
type Option func(*HTTP)

// WithClient replaces the pooled client created by NewHTTP.
func WithClient(c *http.Client) Option {
	return func(h *HTTP) {
		if c != nil {
			h.client = c
		}
	}
}

// WithTimeout limits each submission. Default is 10 seconds.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTP) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(h *HTTP) {
		if key != "" && value != "" {
			h.headers.Set(key, value)
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return WithHeader("User-Agent", ua)
}

// WithoutRedirects stops at the first response instead of following
// redirects, so a 303 after a successful login is observed as is.
func WithoutRedirects() Option {
	return func(h *HTTP) {
		h.followRedirects = false
	}
}

// WithResponseHook registers a function called with every response
// received, before the status is checked. The body must not be consumed.
func WithResponseHook(fn func(*http.Response)) Option {
	return func(h *HTTP) {
		h.onResponse = fn
	}
}

// WithLogger sets the logger for submission events.
func WithLogger(l *slog.Logger) Option {
	return func(h *HTTP) {
		if l != nil {
			h.logger = l
		}
	}
}
