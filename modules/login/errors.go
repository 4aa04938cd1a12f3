package login

import "errors"

var (
	ErrInvalidCredentials  = errors.New("login: invalid username or password")
	ErrInvalidPasswordHash = errors.New("login: invalid password hash")
	ErrMissingUsername     = errors.New("login: admin username is not configured")
	ErrPageMisconfigured   = errors.New("login: page does not match its rule schema")
	ErrTooManyAttempts     = errors.New("login: too many sign-in attempts")
)
