// Package validator provides the rule predicates used to check form field
// values: presence, email format, password policies, length limits, numeric
// values and custom patterns.
//
// Every exported constructor captures a field name and a value and returns a
// Rule that pairs a boolean Check with translation-friendly error metadata.
// Rules are evaluated with Apply, which runs every rule (no short-circuit) and
// aggregates the failures into a ValidationErrors slice that satisfies the
// error interface.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.Required("username", username),
//	    validator.ValidEmail("username", username),
//	    validator.Password("password", password),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, field := range verrs.Fields() {
//	        fmt.Println(field, verrs.Get(field))
//	    }
//	}
//
// The default messages are written for display next to an input, so they can
// be shown to end users without translation. TranslationKey and
// TranslationValues are set on every error for applications that localise.
//
// The package is stateless and goroutine-safe.
package validator
