package formbind

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/validator"
)

// SuccessFunc is invoked after a passing validation pass and before the
// form's native submission. A non-nil error cancels the submission.
//
// It runs while the binding is held by Submit: it may call OnSuccess, but
// calling Submit, Validate or RevalidateField on the same binding from
// inside the callback deadlocks.
type SuccessFunc func(ctx context.Context, form Form) error

// Binding associates a form with its field rules and success callback.
// Submit, Validate and RevalidateField are serialised.
type Binding struct {
	mu     sync.Mutex
	form   Form
	fields []boundField
	cfg    Config
	logger *slog.Logger

	cbMu      sync.Mutex
	onSuccess SuccessFunc
}

type boundField struct {
	id    string
	field Field
	rules []compiledRule
}

// Bind resolves formID in doc, resolves every field of fieldRuleSets inside
// that form and checks every rule. Any problem is reported as a
// *ConfigurationError and no binding is returned.
func Bind(doc Document, formID string, fieldRuleSets []FieldRuleSet, opts ...Option) (*Binding, error) {
	formID = normalizeID(formID)
	if doc == nil || formID == "" {
		return nil, &ConfigurationError{FormID: formID, Err: ErrFormNotFound}
	}

	form, ok := doc.Form(formID)
	if !ok || form == nil {
		return nil, &ConfigurationError{FormID: formID, Err: ErrFormNotFound}
	}

	b := &Binding{
		form:   form,
		cfg:    DefaultConfig(),
		logger: logger.Discard(),
		fields: make([]boundField, 0, len(fieldRuleSets)),
	}
	for _, opt := range opts {
		opt(b)
	}

	seen := make(map[string]bool, len(fieldRuleSets))
	for _, set := range fieldRuleSets {
		id := normalizeID(set.FieldID)
		if seen[id] {
			return nil, &ConfigurationError{FormID: formID, FieldID: id, Err: ErrDuplicateField}
		}
		seen[id] = true

		field, ok := form.Field(id)
		if id == "" || !ok || field == nil {
			return nil, &ConfigurationError{FormID: formID, FieldID: id, Err: ErrFieldNotFound}
		}

		bf := boundField{id: id, field: field, rules: make([]compiledRule, 0, len(set.Rules))}
		for _, r := range set.Rules {
			cr, err := compileRule(r)
			if err != nil {
				return nil, &ConfigurationError{FormID: formID, FieldID: id, Rule: r.Tag, Err: err}
			}
			bf.rules = append(bf.rules, cr)
		}
		b.fields = append(b.fields, bf)
	}

	return b, nil
}

// OnSuccess registers the success callback, replacing any previous one.
// A replacement made while a pass is running takes effect on the next pass.
func (b *Binding) OnSuccess(fn SuccessFunc) *Binding {
	b.cbMu.Lock()
	b.onSuccess = fn
	b.cbMu.Unlock()
	return b
}

func (b *Binding) successFunc() SuccessFunc {
	b.cbMu.Lock()
	defer b.cbMu.Unlock()
	return b.onSuccess
}

// Form returns the bound form.
func (b *Binding) Form() Form {
	return b.form
}

// Config returns the binding's configuration.
func (b *Binding) Config() Config {
	return b.cfg
}

// Submit runs the submit interaction. Failing fields are marked invalid and
// nothing is submitted; the returned error is nil in that case. When every
// field passes, fields are marked valid, the success callback runs once and
// the form is submitted (unless SubmitOnSuccess is off).
func (b *Binding) Submit(ctx context.Context) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	result := b.validateLocked()
	log := b.logger.With(logger.Component("formbind"), logger.Form(b.form.ID()))

	if !result.Valid {
		log.DebugContext(ctx, "form submission blocked",
			logger.InvalidFields(result.InvalidFields()),
			logger.Duration(time.Since(start)),
		)
		return result, nil
	}

	if onSuccess := b.successFunc(); onSuccess != nil {
		if err := onSuccess(ctx, b.form); err != nil {
			log.WarnContext(ctx, "success callback cancelled submission", logger.Error(err))
			return result, err
		}
	}

	if !b.cfg.SubmitOnSuccess {
		log.DebugContext(ctx, "form is valid, automatic submission disabled")
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	if err := b.form.Submit(ctx); err != nil {
		log.ErrorContext(ctx, "form submission failed", logger.Error(err))
		return result, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	result.Submitted = true

	log.DebugContext(ctx, "form submitted", logger.Duration(time.Since(start)))
	return result, nil
}

// Validate runs a validation pass and updates the fields' visual state
// without invoking the callback or submitting.
func (b *Binding) Validate(ctx context.Context) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := b.validateLocked()
	b.logger.DebugContext(ctx, "form validated",
		logger.Component("formbind"),
		logger.Form(b.form.ID()),
		slog.Bool("valid", result.Valid),
	)
	return result
}

// RevalidateField re-runs the rules of a single field and updates its
// visual state. It never submits.
func (b *Binding) RevalidateField(ctx context.Context, fieldID string) (FieldResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := normalizeID(fieldID)
	for _, bf := range b.fields {
		if bf.id != id {
			continue
		}
		fr := b.validateField(bf)
		b.logger.DebugContext(ctx, "field revalidated",
			logger.Component("formbind"),
			logger.Form(b.form.ID()),
			logger.Field(id),
			slog.Bool("valid", fr.Valid),
		)
		return fr, nil
	}
	return FieldResult{}, &ConfigurationError{FormID: b.form.ID(), FieldID: id, Err: ErrFieldNotFound}
}

func (b *Binding) validateLocked() Result {
	if b.cfg.LockForm {
		if l, ok := b.form.(Locker); ok {
			l.Lock()
			defer l.Unlock()
		}
	}

	result := Result{Valid: true, Fields: make([]FieldResult, 0, len(b.fields))}
	for _, bf := range b.fields {
		fr := b.validateField(bf)
		if !fr.Valid {
			result.Valid = false
		}
		result.Fields = append(result.Fields, fr)
	}
	return result
}

// validateField evaluates every rule of the field against its live value and
// applies the visual state.
func (b *Binding) validateField(bf boundField) FieldResult {
	value := bf.field.Value()

	var errs validator.ValidationErrors
	for _, r := range bf.rules {
		if verr, failed := r.evaluate(bf.id, value); failed {
			errs = append(errs, verr)
		}
	}

	fr := FieldResult{FieldID: bf.id, Valid: errs.IsEmpty(), Errors: errs}
	for _, e := range errs {
		fr.Messages = append(fr.Messages, e.Message)
	}

	b.applyState(bf.field, fr)
	return fr
}

func (b *Binding) applyState(f Field, fr FieldResult) {
	add, remove := b.cfg.SuccessFieldCSSClass, b.cfg.ErrorFieldCSSClass
	if !fr.Valid {
		add, remove = remove, add
	}
	if remove != "" && remove != add {
		f.RemoveClass(remove)
	}
	if add != "" {
		f.AddClass(add)
	}
	f.SetMessages(fr.Messages)
}
