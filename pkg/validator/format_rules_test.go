package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.org",
		"user+tag@example.co.uk",
		"user@mail-01.example.io",
		`"john doe"@example.com`,
		"user@[127.0.0.1]",
	}
	for _, email := range valid {
		t.Run("accepts "+email, func(t *testing.T) {
			assert.True(t, validator.ValidEmail("username", email).Check())
		})
	}

	invalid := []string{
		"",
		"admin",
		"user@",
		"@example.com",
		"user@localhost",
		"user@.example.com",
		"user@example.com.",
		"user@example..com",
		" user@example.com",
		"User <user@example.com>",
		"a@b.c",
		"user@host.123",
		"user@example.c0m",
		"user@[127.0.0.1",
		"user@[localhost]",
		"first..last@example.com",
		".user@example.com",
		"us er@example.com",
		"user@exa_mple.com",
	}
	for _, email := range invalid {
		t.Run("rejects "+email, func(t *testing.T) {
			rule := validator.ValidEmail("username", email)
			assert.False(t, rule.Check())
			assert.Equal(t, "Email has invalid format", rule.Error.Message)
		})
	}
}
