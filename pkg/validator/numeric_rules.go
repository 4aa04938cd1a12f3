package validator

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	numberRegex  = regexp.MustCompile(`^-?\d*(\.\d+)?$`)
	integerRegex = regexp.MustCompile(`^-?\d+$`)
)

// Number validates a decimal number such as "12", "-3.5" or ".5".
func Number(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return value != "" && value != "-" && numberRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "Value should be a number",
			TranslationKey: "validation.number",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func Integer(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return integerRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "Value should be an integer number",
			TranslationKey: "validation.integer",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// MinNumber validates that value parses as a number greater than or equal to min.
func MinNumber(field, value string, min float64) Rule {
	return Rule{
		Check: func() bool {
			n, err := strconv.ParseFloat(value, 64)
			return err == nil && n >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("Number should be more or equal than %v", min),
			TranslationKey: "validation.min",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

// MaxNumber validates that value parses as a number less than or equal to max.
func MaxNumber(field, value string, max float64) Rule {
	return Rule{
		Check: func() bool {
			n, err := strconv.ParseFloat(value, 64)
			return err == nil && n <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("Number should be less or equal than %v", max),
			TranslationKey: "validation.max",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}
