package formbind

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Schema is the declarative form of a binding:
//
//	form: login-form
//	errorFieldCssClass: is-invalid
//	successFieldCssClass: is-valid
//	lockForm: false
//	fields:
//	  - id: username
//	    rules:
//	      - rule: required
//	        errorMessage: Username is required!
//	      - rule: email
//	  - id: password
//	    rules:
//	      - rule: required
//	      - rule: minLength
//	        value: 8
type Schema struct {
	Form                 string        `yaml:"form"`
	ErrorFieldCSSClass   *string       `yaml:"errorFieldCssClass,omitempty"`
	SuccessFieldCSSClass *string       `yaml:"successFieldCssClass,omitempty"`
	LockForm             *bool         `yaml:"lockForm,omitempty"`
	SubmitOnSuccess      *bool         `yaml:"submitOnSuccess,omitempty"`
	Fields               []SchemaField `yaml:"fields"`
}

type SchemaField struct {
	ID    string       `yaml:"id"`
	Rules []SchemaRule `yaml:"rules"`
}

type SchemaRule struct {
	Rule         string `yaml:"rule"`
	Value        any    `yaml:"value,omitempty"`
	ErrorMessage string `yaml:"errorMessage,omitempty"`
}

// ParseSchema decodes a YAML schema. Unknown keys are rejected so that typos
// in rule options do not silently disable a rule.
func ParseSchema(r io.Reader) (Schema, error) {
	var s Schema
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Schema{}, fmt.Errorf("%w: empty document", ErrInvalidSchema)
		}
		return Schema{}, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if normalizeID(s.Form) == "" {
		return Schema{}, fmt.Errorf("%w: form id is required", ErrInvalidSchema)
	}
	for i, f := range s.Fields {
		if normalizeID(f.ID) == "" {
			return Schema{}, fmt.Errorf("%w: fields[%d]: id is required", ErrInvalidSchema, i)
		}
	}
	return s, nil
}

// LoadSchema reads and decodes a YAML schema file.
func LoadSchema(path string) (Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return Schema{}, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	defer f.Close()
	return ParseSchema(f)
}

// FieldRuleSets converts the schema fields to rule sets.
func (s Schema) FieldRuleSets() []FieldRuleSet {
	sets := make([]FieldRuleSet, 0, len(s.Fields))
	for _, f := range s.Fields {
		rules := make([]Rule, 0, len(f.Rules))
		for _, r := range f.Rules {
			rules = append(rules, Rule{Tag: RuleTag(r.Rule), Value: r.Value, ErrorMessage: r.ErrorMessage})
		}
		sets = append(sets, FieldRuleSet{FieldID: f.ID, Rules: rules})
	}
	return sets
}

// Options returns the options for the policy keys set in the schema.
func (s Schema) Options() []Option {
	var opts []Option
	if s.ErrorFieldCSSClass != nil {
		opts = append(opts, WithErrorFieldClass(*s.ErrorFieldCSSClass))
	}
	if s.SuccessFieldCSSClass != nil {
		opts = append(opts, WithSuccessFieldClass(*s.SuccessFieldCSSClass))
	}
	if s.LockForm != nil {
		opts = append(opts, WithLockForm(*s.LockForm))
	}
	if s.SubmitOnSuccess != nil {
		opts = append(opts, WithSubmitOnSuccess(*s.SubmitOnSuccess))
	}
	return opts
}

// Bind binds the schema to doc. opts are applied after the schema's own
// options, so callers can override them.
func (s Schema) Bind(doc Document, opts ...Option) (*Binding, error) {
	return Bind(doc, s.Form, s.FieldRuleSets(), append(s.Options(), opts...)...)
}
