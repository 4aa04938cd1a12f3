package formbind

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFormNotFound is returned when the form id does not resolve in the document.
	ErrFormNotFound = errors.New("form not found")
	// ErrFieldNotFound is returned when a field id does not resolve to exactly one input of the form.
	ErrFieldNotFound = errors.New("field not found")
	// ErrDuplicateField is returned when a field is declared more than once.
	ErrDuplicateField = errors.New("field declared more than once")
	// ErrUnknownRule is returned for a rule tag outside the supported set.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrInvalidRule is returned when a rule parameter is missing or malformed.
	ErrInvalidRule = errors.New("invalid rule parameter")
	// ErrInvalidSchema is returned when a rule schema cannot be decoded.
	ErrInvalidSchema = errors.New("invalid form schema")
	// ErrSubmitFailed wraps errors returned by the form's native submission.
	ErrSubmitFailed = errors.New("form submission failed")
)

// ConfigurationError reports a binding that cannot be constructed. It
// unwraps to one of the sentinel errors above.
type ConfigurationError struct {
	FormID  string
	FieldID string
	Rule    RuleTag
	Err     error
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("formbind: ")
	if e.FormID != "" {
		fmt.Fprintf(&b, "form %q: ", e.FormID)
	}
	if e.FieldID != "" {
		fmt.Fprintf(&b, "field %q: ", e.FieldID)
	}
	if e.Rule != "" {
		fmt.Fprintf(&b, "rule %q: ", e.Rule)
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString("invalid configuration")
	}
	return b.String()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
