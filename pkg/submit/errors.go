package submit

import "errors"

var (
	ErrInvalidAction    = errors.New("submit: invalid form action")
	ErrInvalidMethod    = errors.New("submit: unsupported form method")
	ErrRequestFailed    = errors.New("submit: request failed")
	ErrUnexpectedStatus = errors.New("submit: unexpected response status")
	ErrTimeout          = errors.New("submit: request timeout")
)
