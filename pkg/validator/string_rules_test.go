package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

func TestRequired(t *testing.T) {
	t.Run("passes for non-empty string", func(t *testing.T) {
		rule := validator.Required("username", "user@example.com")
		assert.True(t, rule.Check())
		assert.Equal(t, "username", rule.Error.Field)
		assert.Equal(t, "The field is required", rule.Error.Message)
		assert.Equal(t, map[string]any{"field": "username"}, rule.Error.TranslationValues)
	})

	t.Run("fails for empty string", func(t *testing.T) {
		assert.False(t, validator.Required("username", "").Check())
	})

	t.Run("fails for whitespace-only string", func(t *testing.T) {
		assert.False(t, validator.Required("username", " \t ").Check())
	})
}

func TestMinLen(t *testing.T) {
	t.Run("counts runes, not bytes", func(t *testing.T) {
		assert.True(t, validator.MinLen("name", "héllo", 5).Check())
		assert.False(t, validator.MinLen("name", "hé", 3).Check())
	})

	t.Run("message carries the limit", func(t *testing.T) {
		rule := validator.MinLen("name", "", 3)
		assert.Equal(t, "The field must contain a minimum of 3 characters", rule.Error.Message)
		assert.Equal(t, 3, rule.Error.TranslationValues["min"])
	})
}

func TestMaxLen(t *testing.T) {
	assert.True(t, validator.MaxLen("name", "12345", 5).Check())
	assert.False(t, validator.MaxLen("name", "123456", 5).Check())
	assert.Equal(t, "validation.max_length", validator.MaxLen("name", "", 5).Error.TranslationKey)
}
