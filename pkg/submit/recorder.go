package submit

import (
	"context"
	"net/url"
	"sync"

	"github.com/dmitrymomot/formguard/pkg/document"
)

// Recorder keeps every submission in memory. The zero value is ready to use.
type Recorder struct {
	mu          sync.Mutex
	submissions []document.Submission
	// Err, when set, is returned from Submit after recording.
	Err error
}

var _ document.Submitter = (*Recorder)(nil)

func (r *Recorder) Submit(ctx context.Context, s document.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s.Values = cloneValues(s.Values)
	r.submissions = append(r.submissions, s)
	return r.Err
}

// Submissions returns a copy of the recorded submissions.
func (r *Recorder) Submissions() []document.Submission {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]document.Submission, len(r.submissions))
	copy(out, r.submissions)
	return out
}

// Last returns the most recent submission.
func (r *Recorder) Last() (document.Submission, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.submissions) == 0 {
		return document.Submission{}, false
	}
	return r.submissions[len(r.submissions)-1], true
}

// Len returns the number of recorded submissions.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.submissions)
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
