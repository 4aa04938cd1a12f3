package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

func TestPassword(t *testing.T) {
	t.Parallel()

	for _, pw := range []string{"passw0rd", "12345abc", "Sup3rSecret!", "пароль123a", "pass word 1"} {
		assert.True(t, validator.Password("password", pw).Check(), pw)
	}

	invalid := []string{
		"", "abc123", "password", "12345678", "        ",
		"пароль123",     // no ASCII letter
		"éééééééé1",     // accented letters only
		"ПАРОЛЬпароль1", // Cyrillic letters only
		"abcdefg١",      // Arabic-Indic digit
		"abcdefgh١٢٣",   // Arabic-Indic digits
		"abcdefg\n1",
		"abcdefg\r1",
		"abcdefg\u20281",
	}
	for _, pw := range invalid {
		rule := validator.Password("password", pw)
		assert.False(t, rule.Check(), pw)
		assert.Equal(t, "Password must contain minimum eight characters, at least one letter and one number", rule.Error.Message)
	}
}

func TestDefaultPasswordStrength(t *testing.T) {
	t.Parallel()
	config := validator.DefaultPasswordStrength()

	assert.Equal(t, 8, config.MinLength)
	assert.Equal(t, 128, config.MaxLength)
	assert.True(t, config.RequireUppercase)
	assert.True(t, config.RequireLowercase)
	assert.True(t, config.RequireDigits)
	assert.True(t, config.RequireSpecial)
}

func TestStrongPassword(t *testing.T) {
	t.Parallel()
	config := validator.DefaultPasswordStrength()

	t.Run("valid strong passwords", func(t *testing.T) {
		for _, pw := range []string{"StrongP@ss123", "MySecure#Pass1", "C0mplex!Password"} {
			assert.NoError(t, validator.Apply(validator.StrongPassword("password", pw, config)), pw)
		}
	})

	t.Run("missing a class", func(t *testing.T) {
		for _, pw := range []string{"alllower1!", "ALLUPPER1!", "NoDigits!!", "NoSpecial123"} {
			err := validator.Apply(validator.StrongPassword("password", pw, config))
			require.Error(t, err, pw)
			verrs := validator.ExtractValidationErrors(err)
			require.NotNil(t, verrs)
			assert.Equal(t, "validation.password_strength", verrs[0].TranslationKey)
		}
	})

	t.Run("length limits", func(t *testing.T) {
		assert.False(t, validator.StrongPassword("password", "Ab1!", config).Check())

		relaxed := config
		relaxed.MaxLength = 0
		assert.True(t, validator.StrongPassword("password", "Ab1!Ab1!Ab1!Ab1!Ab1!", relaxed).Check())
	})
}
