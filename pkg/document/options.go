package document

import (
	"fmt"
	"net/url"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultErrorLabelClass is the class of the inserted error label elements.
const DefaultErrorLabelClass = "form-error"

// Option configures a Document.
type Option func(*Document) error

// WithBaseURL sets the URL the page was served from. Form actions are
// resolved against it.
func WithBaseURL(raw string) Option {
	return func(d *Document) error {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
		}
		d.base = u
		return nil
	}
}

// WithSubmitter sets the transport used by Form.Submit.
func WithSubmitter(s Submitter) Option {
	return func(d *Document) error {
		d.submitter = s
		return nil
	}
}

// WithMessagePolicy replaces the sanitisation policy applied to error
// messages before they are inserted into the page.
func WithMessagePolicy(p *bluemonday.Policy) Option {
	return func(d *Document) error {
		if p != nil {
			d.policy = p
		}
		return nil
	}
}

// WithErrorLabelClass sets the class of inserted error labels.
func WithErrorLabelClass(class string) Option {
	return func(d *Document) error {
		if class != "" {
			d.labelClass = class
		}
		return nil
	}
}

// MessagePolicy returns the default message policy: text plus a few inline
// formatting elements.
func MessagePolicy() *bluemonday.Policy {
	return bluemonday.NewPolicy().AllowElements("b", "strong", "em", "i", "code")
}
