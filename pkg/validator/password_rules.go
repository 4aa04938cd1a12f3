package validator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Password validates the basic password format: at least eight characters
// on a single line with at least one ASCII letter and one ASCII digit.
func Password(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if utf8.RuneCountInString(value) < 8 || strings.ContainsAny(value, lineBreaks) {
				return false
			}
			var letter, digit bool
			for i := 0; i < len(value); i++ {
				switch c := value[i]; {
				case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
					letter = true
				case '0' <= c && c <= '9':
					digit = true
				}
			}
			return letter && digit
		},
		Error: ValidationError{
			Field:          field,
			Message:        "Password must contain minimum eight characters, at least one letter and one number",
			TranslationKey: "validation.password",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// lineBreaks are the line terminators a password may not contain.
const lineBreaks = "\n\r\u2028\u2029"

type PasswordStrengthConfig struct {
	MinLength        int
	MaxLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireDigits    bool
	RequireSpecial   bool
}

// DefaultPasswordStrength requires 8-128 characters drawn from all four
// character classes.
func DefaultPasswordStrength() PasswordStrengthConfig {
	return PasswordStrengthConfig{
		MinLength:        8,
		MaxLength:        128,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireDigits:    true,
		RequireSpecial:   true,
	}
}

func StrongPassword(field, value string, config PasswordStrengthConfig) Rule {
	return Rule{
		Check: func() bool {
			n := utf8.RuneCountInString(value)
			if n < config.MinLength || (config.MaxLength > 0 && n > config.MaxLength) {
				return false
			}

			classes := passwordClasses(value)
			switch {
			case config.RequireUppercase && !classes.upper:
				return false
			case config.RequireLowercase && !classes.lower:
				return false
			case config.RequireDigits && !classes.digit:
				return false
			case config.RequireSpecial && !classes.special:
				return false
			}
			return true
		},
		Error: ValidationError{
			Field: field,
			Message: fmt.Sprintf(
				"Password should contain minimum %d characters, at least one uppercase letter, one lowercase letter, one number and one special character",
				config.MinLength,
			),
			TranslationKey: "validation.password_strength",
			TranslationValues: map[string]any{
				"field":             field,
				"min_length":        config.MinLength,
				"max_length":        config.MaxLength,
				"require_uppercase": config.RequireUppercase,
				"require_lowercase": config.RequireLowercase,
				"require_digits":    config.RequireDigits,
				"require_special":   config.RequireSpecial,
			},
		},
	}
}

type charClasses struct {
	upper, lower, digit, special bool
}

// passwordClasses treats any printable rune that is not a letter, digit or
// space as special.
func passwordClasses(value string) charClasses {
	var c charClasses
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			c.upper = true
		case unicode.IsLower(r):
			c.lower = true
		case unicode.IsDigit(r):
			c.digit = true
		case unicode.IsLetter(r), unicode.IsSpace(r):
		case unicode.IsPrint(r):
			c.special = true
		}
	}
	return c
}
