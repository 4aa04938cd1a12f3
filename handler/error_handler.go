package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/requestid"
)

// ErrorPageParams is the data of a full error page.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
}

// ErrorToastParams is the data of an inline error notification.
type ErrorToastParams struct {
	Message   string
	Type      string // "error" or "warning"
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// ErrorPage renders regular requests. Without it a plain text
	// response is written.
	ErrorPage func(ErrorPageParams) templ.Component
	// ErrorToast renders DataStar requests. Without it they get the same
	// response as regular requests.
	ErrorToast func(ErrorToastParams) templ.Component
	// ToastTarget defaults to "#toast-container".
	ToastTarget string
}

type errorInfo struct {
	status  int
	message string
}

func classifyError(err error) errorInfo {
	info := errorInfo{
		status:  http.StatusInternalServerError,
		message: "An error occurred processing your request",
	}

	var validationErr ValidationError
	var httpErr HTTPError
	switch {
	case errors.As(err, &validationErr):
		info.status = http.StatusUnprocessableEntity
		info.message = validationErr.Error()
	case errors.As(err, &httpErr):
		info.status = httpErr.Code
		info.message = httpErr.Key
	}
	return info
}

// NewErrorHandler returns an ErrorHandler that logs the error and renders
// an error page, or a toast for DataStar requests.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		reqID := requestid.FromContext(r.Context())
		info := classifyError(err)

		level := slog.LevelError
		if info.status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.Component("error_handler"),
			logger.Error(err),
			slog.Int("status_code", info.status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if IsDataStar(r) && cfg.ErrorToast != nil {
			typ := "error"
			if level == slog.LevelWarn {
				typ = "warning"
			}
			toast := cfg.ErrorToast(ErrorToastParams{Message: info.message, Type: typ, RequestID: reqID})
			resp := Templ(toast, WithTarget(cfg.ToastTarget), WithPatchMode(PatchPrepend))
			if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
				log.ErrorContext(r.Context(), "failed to render error toast", logger.Error(renderErr))
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(ctx.ResponseWriter(), info.message, info.status)
			return
		}
		page := cfg.ErrorPage(ErrorPageParams{Error: info.message, StatusCode: info.status, RequestID: reqID})
		if renderErr := WithStatus(info.status, Templ(page)).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error page", logger.Error(renderErr))
		}
	}
}
