package submit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/dmitrymomot/formguard/pkg/document"
	"github.com/dmitrymomot/formguard/pkg/logger"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "formguard-submit/1.0"
	maxBodyExcerpt   = 200
)

// HTTP submits forms over HTTP. It is safe for concurrent use.
type HTTP struct {
	client          *http.Client
	timeout         time.Duration
	headers         http.Header
	followRedirects bool
	onResponse      func(*http.Response)
	logger          *slog.Logger
}

var _ document.Submitter = (*HTTP)(nil)

// NewHTTP creates a submitter backed by a pooled client.
func NewHTTP(opts ...Option) *HTTP {
	h := &HTTP{
		client:          cleanhttp.DefaultPooledClient(),
		timeout:         defaultTimeout,
		headers:         http.Header{"User-Agent": []string{defaultUserAgent}},
		followRedirects: true,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if !h.followRedirects {
		c := *h.client
		c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
		h.client = &c
	}
	return h
}

// Submit implements document.Submitter.
func (h *HTTP) Submit(ctx context.Context, s document.Submission) error {
	req, err := h.newRequest(ctx, s)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	req = req.WithContext(ctx)

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if h.onResponse != nil {
		h.onResponse(resp)
	}

	h.logger.DebugContext(ctx, "form submitted",
		logger.Component("submit"),
		logger.Form(s.FormID),
		slog.String("method", req.Method),
		slog.String("url", req.URL.Redacted()),
		slog.Int("status", resp.StatusCode),
		logger.Duration(time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return fmt.Errorf("%w: %d%s", ErrUnexpectedStatus, resp.StatusCode, bodyExcerpt(resp.Body))
	}
	return nil
}

func (h *HTTP) newRequest(ctx context.Context, s document.Submission) (*http.Request, error) {
	u, err := url.Parse(s.Action)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidAction, s.Action)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidAction)
	}

	var req *http.Request
	switch strings.ToUpper(s.Method) {
	case http.MethodPost:
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, u.String(), strings.NewReader(s.Values.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	case http.MethodGet, "":
		// The query string of the action is replaced by the form data.
		u.RawQuery = s.Values.Encode()
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidMethod, s.Method)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	for k, vs := range h.headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	return req, nil
}

func bodyExcerpt(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 1024))
	text := strings.Join(strings.Fields(string(body)), " ")
	if text == "" {
		return ""
	}
	if len(text) > maxBodyExcerpt {
		text = text[:maxBodyExcerpt] + "..."
	}
	return ": " + text
}
