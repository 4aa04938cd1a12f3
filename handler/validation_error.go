package handler

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/dmitrymomot/formguard/pkg/formbind"
	"github.com/dmitrymomot/formguard/pkg/validator"
)

// ValidationError maps field names to their messages.
type ValidationError url.Values

func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if msgs := e[field]; len(msgs) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msgs[0]))
		}
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func NewValidationError() ValidationError {
	return make(ValidationError)
}

// ValidationErrorFrom converts validator failures.
func ValidationErrorFrom(errs validator.ValidationErrors) ValidationError {
	out := NewValidationError()
	for _, e := range errs {
		out.Add(e.Field, e.Message)
	}
	return out
}

// ValidationErrorFromResult collects the messages of every failing field of
// a form validation pass. It is empty for a valid result.
func ValidationErrorFromResult(res formbind.Result) ValidationError {
	out := NewValidationError()
	for _, f := range res.Fields {
		for _, msg := range f.Messages {
			out.Add(f.FieldID, msg)
		}
	}
	return out
}

func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first message of field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}
