package formbind

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

// RuleTag names a rule from the supported set.
type RuleTag string

const (
	RuleRequired       RuleTag = "required"
	RuleEmail          RuleTag = "email"
	RulePassword       RuleTag = "password"
	RuleStrongPassword RuleTag = "strongPassword"
	RuleMinLength      RuleTag = "minLength"
	RuleMaxLength      RuleTag = "maxLength"
	RuleNumber         RuleTag = "number"
	RuleInteger        RuleTag = "integer"
	RuleMinNumber      RuleTag = "minNumber"
	RuleMaxNumber      RuleTag = "maxNumber"
	RuleCustomRegexp   RuleTag = "customRegexp"
)

// Rule is one entry of a field's rule list: a tag, the tag's parameter
// (minLength, maxLength, minNumber, maxNumber and customRegexp take one) and
// an optional message that replaces the default one on failure.
type Rule struct {
	Tag          RuleTag
	Value        any
	ErrorMessage string
}

// WithMessage returns a copy of the rule that reports msg on failure.
func (r Rule) WithMessage(msg string) Rule {
	r.ErrorMessage = msg
	return r
}

// FieldRuleSet is the ordered rule list of one field.
type FieldRuleSet struct {
	FieldID string
	Rules   []Rule
}

// FieldRules builds a FieldRuleSet. id may be given as "username" or "#username".
func FieldRules(id string, rules ...Rule) FieldRuleSet {
	return FieldRuleSet{FieldID: id, Rules: rules}
}

func Required() Rule       { return Rule{Tag: RuleRequired} }
func Email() Rule          { return Rule{Tag: RuleEmail} }
func Password() Rule       { return Rule{Tag: RulePassword} }
func StrongPassword() Rule { return Rule{Tag: RuleStrongPassword} }
func Number() Rule         { return Rule{Tag: RuleNumber} }
func Integer() Rule        { return Rule{Tag: RuleInteger} }

func MinLength(n int) Rule { return Rule{Tag: RuleMinLength, Value: n} }
func MaxLength(n int) Rule { return Rule{Tag: RuleMaxLength, Value: n} }

func MinNumber(n float64) Rule { return Rule{Tag: RuleMinNumber, Value: n} }
func MaxNumber(n float64) Rule { return Rule{Tag: RuleMaxNumber, Value: n} }

// CustomRegexp matches the value against pattern (RE2 syntax).
func CustomRegexp(pattern string) Rule { return Rule{Tag: RuleCustomRegexp, Value: pattern} }

// check builds the validator rule for a field value.
type check func(field, value string) validator.Rule

// compiler validates a Rule's parameter once, at bind time.
type compiler func(r Rule) (check, error)

var compilers = map[RuleTag]compiler{
	RuleRequired:       static(validator.Required),
	RuleEmail:          static(validator.ValidEmail),
	RulePassword:       static(validator.Password),
	RuleNumber:         static(validator.Number),
	RuleInteger:        static(validator.Integer),
	RuleStrongPassword: static(strongPassword),
	RuleMinLength: func(r Rule) (check, error) {
		n, err := intParam(r.Value)
		if err != nil {
			return nil, err
		}
		return func(field, value string) validator.Rule { return validator.MinLen(field, value, n) }, nil
	},
	RuleMaxLength: func(r Rule) (check, error) {
		n, err := intParam(r.Value)
		if err != nil {
			return nil, err
		}
		return func(field, value string) validator.Rule { return validator.MaxLen(field, value, n) }, nil
	},
	RuleMinNumber: func(r Rule) (check, error) {
		n, err := floatParam(r.Value)
		if err != nil {
			return nil, err
		}
		return func(field, value string) validator.Rule { return validator.MinNumber(field, value, n) }, nil
	},
	RuleMaxNumber: func(r Rule) (check, error) {
		n, err := floatParam(r.Value)
		if err != nil {
			return nil, err
		}
		return func(field, value string) validator.Rule { return validator.MaxNumber(field, value, n) }, nil
	},
	RuleCustomRegexp: func(r Rule) (check, error) {
		pattern, ok := r.Value.(string)
		if !ok || pattern == "" {
			return nil, fmt.Errorf("%w: customRegexp needs a pattern", ErrInvalidRule)
		}
		re, err := validator.CompilePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRule, err)
		}
		return func(field, value string) validator.Rule { return validator.MatchesRegex(field, value, re) }, nil
	},
}

func static(fn func(field, value string) validator.Rule) compiler {
	return func(Rule) (check, error) { return fn, nil }
}

func strongPassword(field, value string) validator.Rule {
	return validator.StrongPassword(field, value, validator.DefaultPasswordStrength())
}

// compiledRule is a Rule whose tag and parameter were checked at bind time.
type compiledRule struct {
	rule  Rule
	check check
}

func compileRule(r Rule) (compiledRule, error) {
	c, ok := compilers[r.Tag]
	if !ok {
		return compiledRule{}, ErrUnknownRule
	}
	fn, err := c(r)
	if err != nil {
		return compiledRule{}, err
	}
	return compiledRule{rule: r, check: fn}, nil
}

// evaluate reports the failure of the rule for value, or false when it passes.
// Only required inspects empty values.
func (c compiledRule) evaluate(field, value string) (validator.ValidationError, bool) {
	if c.rule.Tag != RuleRequired && strings.TrimSpace(value) == "" {
		return validator.ValidationError{}, false
	}
	vr := c.check(field, value).WithMessage(c.rule.ErrorMessage)
	if vr.Check() {
		return validator.ValidationError{}, false
	}
	return vr.Error, true
}

// intParam accepts the shapes a parameter takes in Go code and in decoded YAML.
func intParam(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return nonNegative(n)
	case int64:
		return nonNegative(int(n))
	case uint64:
		return nonNegative(int(n))
	case float64:
		if n != math.Trunc(n) {
			break
		}
		return nonNegative(int(n))
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			break
		}
		return nonNegative(i)
	}
	return 0, fmt.Errorf("%w: expected a non-negative integer, got %v", ErrInvalidRule, v)
}

func nonNegative(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: expected a non-negative integer, got %d", ErrInvalidRule, n)
	}
	return n, nil
}

func floatParam(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: expected a number, got %v", ErrInvalidRule, v)
}
