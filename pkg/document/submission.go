package document

import (
	"context"
	"net/url"
)

// Submission is the payload of a native form submission.
type Submission struct {
	FormID string
	// Method is the upper-cased form method, GET when unset.
	Method string
	// Action is the form action resolved against the document base URL.
	Action string
	Values url.Values
}

// Submitter performs native form submissions.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s Submission) error

func (f SubmitterFunc) Submit(ctx context.Context, s Submission) error {
	return f(ctx, s)
}
