package formbind

import "github.com/dmitrymomot/formguard/pkg/validator"

// FieldResult is the outcome of one field in a validation pass.
type FieldResult struct {
	FieldID string
	Valid   bool
	// Messages holds the messages of every failing rule, in declared order.
	Messages []string
	Errors   validator.ValidationErrors
}

// Result is the outcome of a validation pass.
type Result struct {
	Valid bool
	// Submitted reports whether the form's native submission ran.
	Submitted bool
	// Fields holds one entry per bound field, in declared order.
	Fields []FieldResult
}

// Field returns the result of the field with the given id.
func (r Result) Field(id string) (FieldResult, bool) {
	id = normalizeID(id)
	for _, f := range r.Fields {
		if f.FieldID == id {
			return f, true
		}
	}
	return FieldResult{}, false
}

// InvalidFields returns the ids of failing fields.
func (r Result) InvalidFields() []string {
	var ids []string
	for _, f := range r.Fields {
		if !f.Valid {
			ids = append(ids, f.FieldID)
		}
	}
	return ids
}

// Errors flattens every field failure into validator.ValidationErrors. It is
// empty for a valid result.
func (r Result) Errors() validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, f := range r.Fields {
		errs = append(errs, f.Errors...)
	}
	return errs
}
