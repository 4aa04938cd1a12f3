package validator

import (
	"regexp"
	"strings"
)

// emailPattern accepts a dot-atom or quoted local part and a domain whose
// last label is at least two ASCII letters, or a bracketed IPv4 literal.
var emailPattern = regexp.MustCompile(
	`^(?:[^<>()\[\]\\.,;:\s@"]+(?:\.[^<>()\[\]\\.,;:\s@"]+)*|".+")` +
		`@(?:\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\]|(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,})$`,
)

// ValidEmail validates a bare address such as user@example.com. Display names,
// single-label domains and numeric top-level labels are rejected.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return isEmail(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "Email has invalid format",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func isEmail(value string) bool {
	if value == "" || strings.TrimSpace(value) != value {
		return false
	}
	return emailPattern.MatchString(value)
}
