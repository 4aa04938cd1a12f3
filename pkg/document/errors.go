package document

import "errors"

var (
	// ErrNoSubmitter is returned by Form.Submit when the document has no Submitter.
	ErrNoSubmitter = errors.New("document: no submitter configured")
	// ErrParse is returned when the page cannot be parsed.
	ErrParse = errors.New("document: failed to parse page")
	// ErrInvalidBaseURL is returned for a base URL that cannot be parsed.
	ErrInvalidBaseURL = errors.New("document: invalid base URL")
	// ErrElementNotFound is returned by RenderElement for an id that does not
	// resolve to exactly one element.
	ErrElementNotFound = errors.New("document: element not found")
)
