package login

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formguard/handler"
	"github.com/dmitrymomot/formguard/pkg/binder"
	"github.com/dmitrymomot/formguard/pkg/clientip"
	"github.com/dmitrymomot/formguard/pkg/document"
	"github.com/dmitrymomot/formguard/pkg/formbind"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/ratelimiter"
	"github.com/dmitrymomot/formguard/pkg/session"
)

const (
	loginPath = "/login"

	credentialsMessage = "Invalid username or password"
	throttledMessage   = "Too many sign-in attempts. Try again later."
)

var (
	//go:embed assets/login.html
	loginPage []byte
	//go:embed assets/login.yaml
	loginSchema []byte
)

// Service serves the sign-in page, sign-out and the protected home page.
type Service struct {
	cfg          Config
	auth         Authenticator
	sessions     *session.Manager
	page         *document.Template
	schema       formbind.Schema
	limiter      *ratelimiter.Bucket
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAttemptLimiter throttles failed sign-ins per client address. Each
// rejected password spends a token; a successful sign-in refills the
// bucket.
func WithAttemptLimiter(b *ratelimiter.Bucket) Option {
	return func(s *Service) { s.limiter = b }
}

func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(s *Service) { s.errorHandler = h }
}

// NewService parses the embedded page and rule schema and checks that every
// field of the schema resolves in the page.
func NewService(cfg Config, auth Authenticator, sessions *session.Manager, opts ...Option) (*Service, error) {
	schema, err := formbind.ParseSchema(bytes.NewReader(loginSchema))
	if err != nil {
		return nil, err
	}
	page, err := document.NewTemplate(loginPage)
	if err != nil {
		return nil, err
	}

	s := &Service{
		cfg:      cfg,
		auth:     auth,
		sessions: sessions,
		page:     page,
		schema:   schema,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.logger, handler.ErrorHandlerConfig{})
	}
	if s.cfg.HomePath == "" {
		s.cfg.HomePath = "/"
	}

	doc, err := page.Document()
	if err != nil {
		return nil, err
	}
	if _, err := schema.Bind(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageMisconfigured, err)
	}
	return s, nil
}

// Handle returns the module router.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get(loginPath, handler.Wrap(s.showLogin,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post(loginPath, handler.Wrap(s.login,
		handler.WithBinders[handler.Context, LoginRequest](binder.Form()),
		handler.WithErrorHandler[handler.Context, LoginRequest](s.errorHandler),
	))
	r.Post(loginPath+"/validate/{field}", handler.Wrap(s.validateField,
		handler.WithBinders[handler.Context, ValidateFieldRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, ValidateFieldRequest](s.errorHandler),
	))
	r.Post("/logout", handler.Wrap(s.logout,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	r.With(s.sessions.RequireAuth(loginPath)).Get(s.cfg.HomePath, handler.Wrap(s.home,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	return r
}

// LoginRequest is the submitted sign-in form.
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (r LoginRequest) values() url.Values {
	return url.Values{"username": {r.Username}, "password": {r.Password}}
}

// ValidateFieldRequest names the field to revalidate. Field values arrive as
// DataStar signals.
type ValidateFieldRequest struct {
	Field string `path:"field"`
}

type loginSignals struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Service) showLogin(ctx handler.Context, _ struct{}) handler.Response {
	if _, err := s.sessions.Load(ctx.Request()); err == nil {
		return handler.Redirect(s.cfg.HomePath)
	}
	doc, err := s.page.Document()
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(pageView(doc))
}

func (s *Service) login(ctx handler.Context, req LoginRequest) handler.Response {
	r := ctx.Request()
	attemptKey := s.attemptKey(r)

	doc, err := s.page.Document(
		document.WithBaseURL(requestURL(r)),
		document.WithSubmitter(s.submitter(ctx.ResponseWriter(), attemptKey)),
	)
	if err != nil {
		return handler.Error(err)
	}
	binding, err := s.schema.Bind(doc, formbind.WithLogger(s.logger))
	if err != nil {
		return handler.Error(err)
	}
	form := htmlForm(binding)
	form.Fill(req.values())
	var retryAfter time.Duration
	binding.OnSuccess(func(ctx context.Context, f formbind.Form) error {
		s.logger.InfoContext(ctx, "login form accepted",
			logger.Component("login"),
			logger.Form(f.ID()),
			logger.Username(NormalizeUsername(req.Username)),
		)
		retryAfter = s.throttled(ctx, attemptKey)
		if retryAfter > 0 {
			return ErrTooManyAttempts
		}
		return nil
	})

	result, err := binding.Submit(r.Context())
	switch {
	case errors.Is(err, ErrTooManyAttempts):
		s.logger.WarnContext(r.Context(), "sign-in throttled",
			logger.Component("login"),
			logger.Username(NormalizeUsername(req.Username)),
			slog.Duration("retry_after", retryAfter),
		)
		ctx.ResponseWriter().Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Round(time.Second).Seconds())))
		s.rejectCredentials(form, binding.Config(), throttledMessage)
		return s.formResponse(doc, form, http.StatusTooManyRequests)
	case errors.Is(err, ErrInvalidCredentials):
		s.logger.WarnContext(r.Context(), "sign-in rejected",
			logger.Component("login"),
			logger.Username(NormalizeUsername(req.Username)),
		)
		s.rejectCredentials(form, binding.Config(), credentialsMessage)
		return s.formResponse(doc, form, http.StatusUnauthorized)
	case err != nil:
		return handler.Error(err)
	case !result.Valid:
		return s.formResponse(doc, form, http.StatusUnprocessableEntity)
	}

	return handler.Redirect(s.cfg.HomePath)
}

// submitter authenticates the submitted credentials and starts a session,
// setting its cookie on w. Failures are counted against attemptKey.
func (s *Service) submitter(w http.ResponseWriter, attemptKey string) document.Submitter {
	return document.SubmitterFunc(func(ctx context.Context, sub document.Submission) error {
		username := NormalizeUsername(sub.Values.Get("username"))
		if err := s.auth.Authenticate(ctx, username, sub.Values.Get("password")); err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				s.recordFailure(ctx, attemptKey)
			}
			return err
		}
		if s.limiter != nil && attemptKey != "" {
			if err := s.limiter.Reset(ctx, attemptKey); err != nil {
				s.logger.WarnContext(ctx, "failed to reset sign-in attempts", logger.Component("login"), logger.Error(err))
			}
		}
		_, err := s.sessions.Start(ctx, w, username)
		return err
	})
}

// attemptKey returns the limiter key of the requesting client, or "" when
// its address is unknown. Such requests are not throttled.
func (s *Service) attemptKey(r *http.Request) string {
	ip := clientip.FromRequest(r)
	if ip == "" {
		if s.limiter != nil {
			s.logger.WarnContext(r.Context(), "client address unknown, sign-in attempts not throttled",
				logger.Component("login"),
				slog.String("remote_addr", r.RemoteAddr),
			)
		}
		return ""
	}
	return "login:" + ip
}

// throttled returns how long key must wait before the next attempt, zero
// when it may try now. A failing limiter store does not block sign-in.
func (s *Service) throttled(ctx context.Context, key string) time.Duration {
	if s.limiter == nil || key == "" {
		return 0
	}
	res, err := s.limiter.Peek(ctx, key)
	if err != nil {
		s.logger.ErrorContext(ctx, "sign-in attempt limiter unavailable", logger.Component("login"), logger.Error(err))
		return 0
	}
	if res.CanSpend() {
		return 0
	}
	return max(res.RetryAfter(), time.Second)
}

func (s *Service) recordFailure(ctx context.Context, key string) {
	if s.limiter == nil || key == "" {
		return
	}
	if _, err := s.limiter.Allow(ctx, key); err != nil {
		s.logger.ErrorContext(ctx, "failed to record sign-in attempt", logger.Component("login"), logger.Error(err))
	}
}

func (s *Service) validateField(ctx handler.Context, req ValidateFieldRequest) handler.Response {
	r := ctx.Request()

	var signals loginSignals
	if err := handler.ReadSignals(r, &signals); err != nil {
		return handler.Error(err)
	}

	doc, err := s.page.Document()
	if err != nil {
		return handler.Error(err)
	}
	binding, err := s.schema.Bind(doc, formbind.WithLogger(s.logger), formbind.WithSubmitOnSuccess(false))
	if err != nil {
		return handler.Error(err)
	}
	form := htmlForm(binding)
	form.Fill(url.Values{"username": {signals.Username}, "password": {signals.Password}})
	if _, err := binding.RevalidateField(r.Context(), req.Field); err != nil {
		if errors.Is(err, formbind.ErrFieldNotFound) {
			return handler.Error(handler.ErrNotFound)
		}
		return handler.Error(err)
	}
	clearPassword(form)

	group := req.Field + "-group"
	return handler.Templ(elementView(doc, group), handler.WithTarget("#"+group))
}

func (s *Service) logout(ctx handler.Context, _ struct{}) handler.Response {
	if err := s.sessions.End(ctx.ResponseWriter(), ctx.Request()); err != nil {
		return handler.Error(err)
	}
	return handler.Redirect(loginPath)
}

func (s *Service) home(ctx handler.Context, _ struct{}) handler.Response {
	username, ok := session.UsernameFromContext(ctx)
	if !ok {
		return handler.Redirect(loginPath)
	}
	return handler.Templ(homeView(username))
}

// formResponse re-renders the form: a patch of the form element for
// DataStar requests, the whole page with status otherwise.
func (s *Service) formResponse(doc *document.Document, form *document.Form, status int) handler.Response {
	clearPassword(form)
	return handler.WithStatus(status, handler.TemplPartial(
		elementView(doc, form.ID()),
		pageView(doc),
		handler.WithTarget("#"+form.ID()),
	))
}

// rejectCredentials marks the password field invalid with msg after the
// fields themselves passed validation.
func (s *Service) rejectCredentials(form *document.Form, cfg formbind.Config, msg string) {
	in, ok := form.Input("password")
	if !ok {
		return
	}
	in.RemoveClass(cfg.SuccessFieldCSSClass)
	in.AddClass(cfg.ErrorFieldCSSClass)
	in.SetMessages([]string{msg})
}

// htmlForm returns the bound form. Bindings of this package are always made
// on a *document.Document.
func htmlForm(b *formbind.Binding) *document.Form {
	return b.Form().(*document.Form)
}

// clearPassword keeps the submitted password out of rendered HTML.
func clearPassword(form *document.Form) {
	if in, ok := form.Input("password"); ok {
		in.SetValue("")
	}
}

func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
