package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formguard/modules/login"
	"github.com/dmitrymomot/formguard/pkg/clientip"
	"github.com/dmitrymomot/formguard/pkg/httpserver"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/ratelimiter"
	"github.com/dmitrymomot/formguard/pkg/redis"
	"github.com/dmitrymomot/formguard/pkg/requestid"
	"github.com/dmitrymomot/formguard/pkg/session"
)

type appConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
	// TrustedProxyHeaders lists the headers carrying the client address,
	// e.g. X-Forwarded-For when running behind a single reverse proxy.
	TrustedProxyHeaders []string `env:"TRUSTED_PROXY_HEADERS" envSeparator:","`

	Server    httpserver.Config
	Login     login.Config
	Session   session.Config
	RateLimit ratelimiter.Config
	Redis     redis.Config
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	h, err := newHandler(cfg, st, log)
	if err != nil {
		return err
	}
	return httpserver.New(cfg.Server, httpserver.WithLogger(log)).Run(ctx, h)
}

// stores are the backends of sessions and sign-in attempts. Both live in
// the backend selected by SESSION_STORE.
type stores struct {
	sessions session.Store
	attempts ratelimiter.Store
	checks   []httpserver.Check
	close    func()
}

func openStores(ctx context.Context, cfg appConfig, log *slog.Logger) (*stores, error) {
	if err := cfg.Session.Validate(); err != nil {
		return nil, err
	}

	if cfg.Session.Store == session.StoreRedis {
		client, err := redis.Connect(ctx, cfg.Redis, redis.WithLogger(log))
		if err != nil {
			return nil, err
		}
		return &stores{
			sessions: session.NewRedisStore(client, cfg.Session.RedisKeyPrefix),
			attempts: ratelimiter.NewRedisStore(client, ""),
			checks:   []httpserver.Check{redis.Healthcheck(client)},
			close: func() {
				if err := client.Close(); err != nil {
					log.Warn("failed to close redis client", logger.Error(err))
				}
			},
		}, nil
	}

	sessions := session.NewMemoryStore(cfg.Session.CleanupInterval)
	attempts := ratelimiter.NewMemoryStore()
	return &stores{
		sessions: sessions,
		attempts: attempts,
		close: func() {
			_ = sessions.Close()
			attempts.Close()
		},
	}, nil
}

func newHandler(cfg appConfig, st *stores, log *slog.Logger) (http.Handler, error) {
	auth, err := login.NewStaticAuthenticator(cfg.Login.AdminUsername, cfg.Login.AdminPasswordHash)
	if err != nil {
		return nil, fmt.Errorf("admin credentials: %w", err)
	}
	limiter, err := ratelimiter.NewBucket(st.attempts, cfg.RateLimit)
	if err != nil {
		return nil, err
	}
	sessions := session.NewManager(st.sessions, session.WithConfig(cfg.Session), session.WithLogger(log))

	svc, err := login.NewService(cfg.Login, auth, sessions,
		login.WithLogger(log),
		login.WithAttemptLimiter(limiter),
	)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.New(cfg.TrustedProxyHeaders...).Middleware,
		middleware.Recoverer,
	)

	r.Get("/health/live", httpserver.Liveness())
	r.Get("/health/ready", httpserver.Readiness(log, st.checks...))
	r.Mount("/", svc.Handle())

	return r, nil
}
