package formbind

import (
	"context"
	"strings"
)

// Document resolves forms by their stable id.
type Document interface {
	Form(id string) (Form, bool)
}

// Form is the bound form.
type Form interface {
	ID() string
	// Field resolves an input of this form by id. ok must be false when no
	// element or more than one element carries the id.
	Field(id string) (Field, bool)
	// Submit performs the form's native submission.
	Submit(ctx context.Context) error
}

// Field is a single input of a form.
type Field interface {
	ID() string
	// Value returns the live value of the input.
	Value() string
	AddClass(class string)
	RemoveClass(class string)
	// SetMessages replaces the messages displayed for the field. Nil clears them.
	SetMessages(messages []string)
}

// Locker is implemented by forms that can be made non-interactive while a
// validation pass runs.
type Locker interface {
	Lock()
	Unlock()
}

// normalizeID accepts both "username" and the selector form "#username".
func normalizeID(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), "#")
}
