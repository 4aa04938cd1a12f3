// Package logger builds *slog.Logger instances for formguard binaries and
// libraries.
//
// New applies functional options (format, level, output, static attributes,
// context extractors) and wraps the resulting handler with
// LogHandlerDecorator, which injects request-scoped attributes such as the
// request id on every record.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "formguard"),
//	    logger.WithContextExtractors(requestid.Extractor),
//	)
//	log.InfoContext(ctx, "login form submitted",
//	    logger.Component("login"),
//	    logger.Form("login-form"),
//	)
//
// Attribute helpers in attr.go keep key names consistent. Error and Errors
// return an empty attribute for nil errors, so callers can log
// unconditionally.
//
// Discard returns a logger that drops every record; packages use it as their
// default when no logger is injected.
package logger
