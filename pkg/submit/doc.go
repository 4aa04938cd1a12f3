// Package submit delivers native form submissions produced by
// pkg/document.
//
// HTTP sends the submission to the form action the way a browser would:
// POST forms as application/x-www-form-urlencoded bodies, GET forms as
// query strings. Responses outside the 2xx and 3xx ranges are reported as
// ErrUnexpectedStatus with a short excerpt of the body.
//
//	sub := submit.NewHTTP(submit.WithTimeout(5 * time.Second))
//	doc, err := document.Parse(r,
//		document.WithBaseURL("https://admin.example.com/login"),
//		document.WithSubmitter(sub),
//	)
//
// Recorder keeps submissions in memory instead of sending them. It backs
// dry runs and tests.
package submit
