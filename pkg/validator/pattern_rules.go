package validator

import (
	"fmt"
	"regexp"
)

// CompilePattern compiles a custom pattern, wrapping failures with ErrInvalidPattern.
// Callers compile once and pass the result to MatchesRegex.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}

func MatchesRegex(field, value string, re *regexp.Regexp) Rule {
	pattern := ""
	if re != nil {
		pattern = re.String()
	}
	return Rule{
		Check: func() bool {
			return re != nil && re.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "Value is invalid",
			TranslationKey: "validation.regex_pattern",
			TranslationValues: map[string]any{
				"field":   field,
				"pattern": pattern,
			},
		},
	}
}
