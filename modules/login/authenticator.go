package login

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
)

// Authenticator checks sign-in credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) error
}

// StaticAuthenticator accepts a single configured account.
type StaticAuthenticator struct {
	username string
	hash     []byte
}

var _ Authenticator = (*StaticAuthenticator)(nil)

// NewStaticAuthenticator returns an authenticator for username with the
// given bcrypt hash.
func NewStaticAuthenticator(username, passwordHash string) (*StaticAuthenticator, error) {
	username = NormalizeUsername(username)
	if username == "" {
		return nil, ErrMissingUsername
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPasswordHash, err)
	}
	return &StaticAuthenticator{username: username, hash: []byte(passwordHash)}, nil
}

// Authenticate returns ErrInvalidCredentials unless both the username and
// the password match. The hash is compared even when the username does not
// match, so both failures take the same time.
func (a *StaticAuthenticator) Authenticate(ctx context.Context, username, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	userOK := subtle.ConstantTimeCompare([]byte(NormalizeUsername(username)), []byte(a.username)) == 1

	err := bcrypt.CompareHashAndPassword(a.hash, []byte(password))
	switch {
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidCredentials
	case err != nil:
		return fmt.Errorf("%w: %v", ErrInvalidPasswordHash, err)
	case !userOK:
		return ErrInvalidCredentials
	}
	return nil
}

// NormalizeUsername folds compatibility characters (NFKC), trims spaces and
// lower-cases the name, so that visually equal usernames compare equal.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(username)))
}

// HashPassword returns the bcrypt hash of password with the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
