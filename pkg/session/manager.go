package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/formguard/pkg/logger"
)

// Manager ties a Store to the session cookie.
type Manager struct {
	store  Store
	cfg    Config
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.cfg = cfg }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a manager backed by store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{store: store, cfg: DefaultConfig(), logger: logger.Discard()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start creates a session for username and sets its cookie.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, username string) (*Session, error) {
	s, err := New(username, m.cfg.TTL)
	if err != nil {
		return nil, err
	}
	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	m.setCookie(w, s.Token, m.cfg.TTL)

	m.logger.InfoContext(ctx, "session started",
		logger.Component("session"),
		logger.Username(username),
		slog.String("session_id", s.ID.String()),
	)
	return s, nil
}

// Load returns the session of the request's cookie.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	c, err := r.Cookie(m.cfg.CookieName)
	if err != nil || c.Value == "" {
		return nil, ErrSessionNotFound
	}
	return m.store.Get(r.Context(), c.Value)
}

// End deletes the request's session, if any, and clears the cookie.
func (m *Manager) End(w http.ResponseWriter, r *http.Request) error {
	defer m.setCookie(w, "", -1)

	s, err := m.Load(r)
	if err != nil {
		return nil
	}
	if err := m.store.Delete(r.Context(), s.Token); err != nil {
		return err
	}
	m.logger.InfoContext(r.Context(), "session ended",
		logger.Component("session"),
		logger.Username(s.Username),
		slog.String("session_id", s.ID.String()),
	)
	return nil
}

// extend slides the expiry when ActivityThreshold has passed.
func (m *Manager) extend(ctx context.Context, w http.ResponseWriter, s *Session) {
	now := time.Now()
	if now.Sub(s.LastActivityAt) < m.cfg.ActivityThreshold {
		return
	}
	expiresAt := now.Add(m.cfg.TTL)
	if err := m.store.Touch(ctx, s.Token, now, expiresAt); err != nil {
		m.logger.WarnContext(ctx, "failed to extend session", logger.Component("session"), logger.Error(err))
		return
	}
	s.LastActivityAt, s.ExpiresAt = now, expiresAt
	m.setCookie(w, s.Token, m.cfg.TTL)
}

func (m *Manager) setCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
