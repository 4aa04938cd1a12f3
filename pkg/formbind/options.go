package formbind

import "log/slog"

// Config holds the presentation and submission policy of a binding.
type Config struct {
	// ErrorFieldCSSClass is added to failing fields.
	ErrorFieldCSSClass string `env:"FORM_ERROR_FIELD_CLASS" envDefault:"is-invalid"`
	// SuccessFieldCSSClass is added to passing fields.
	SuccessFieldCSSClass string `env:"FORM_SUCCESS_FIELD_CLASS" envDefault:"is-valid"`
	// LockForm makes the form non-interactive during a validation pass.
	LockForm bool `env:"FORM_LOCK" envDefault:"false"`
	// SubmitOnSuccess triggers the form's native submission after a passing
	// pass and the success callback.
	SubmitOnSuccess bool `env:"FORM_SUBMIT_ON_SUCCESS" envDefault:"true"`
}

// DefaultConfig returns the policy used when no options are given.
func DefaultConfig() Config {
	return Config{
		ErrorFieldCSSClass:   "is-invalid",
		SuccessFieldCSSClass: "is-valid",
		LockForm:             false,
		SubmitOnSuccess:      true,
	}
}

// Option configures a Binding.
type Option func(*Binding)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(b *Binding) { b.cfg = cfg }
}

func WithErrorFieldClass(class string) Option {
	return func(b *Binding) { b.cfg.ErrorFieldCSSClass = class }
}

func WithSuccessFieldClass(class string) Option {
	return func(b *Binding) { b.cfg.SuccessFieldCSSClass = class }
}

func WithLockForm(lock bool) Option {
	return func(b *Binding) { b.cfg.LockForm = lock }
}

func WithSubmitOnSuccess(submit bool) Option {
	return func(b *Binding) { b.cfg.SubmitOnSuccess = submit }
}

// WithLogger sets the logger used to report validation passes. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(b *Binding) {
		if l != nil {
			b.logger = l
		}
	}
}
