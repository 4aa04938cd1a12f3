package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formguard/handler"
	"github.com/dmitrymomot/formguard/pkg/formbind"
	"github.com/dmitrymomot/formguard/pkg/validator"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	t.Run("from result", func(t *testing.T) {
		t.Parallel()
		res := formbind.Result{Fields: []formbind.FieldResult{
			{FieldID: "username", Messages: []string{"Username is required!"}},
			{FieldID: "password", Valid: true},
		}}
		verr := handler.ValidationErrorFromResult(res)
		assert.True(t, verr.Has("username"))
		assert.False(t, verr.Has("password"))
		assert.Equal(t, "validation error: username: Username is required!", verr.Error())
	})

	t.Run("from validator errors", func(t *testing.T) {
		t.Parallel()
		verr := handler.ValidationErrorFrom(validator.ValidationErrors{
			{Field: "password", Message: "Password is required!"},
			{Field: "username", Message: "Username must be a valid email address!"},
		})
		assert.Equal(t, "Password is required!", verr.Get("password"))
		assert.Equal(t, "validation error: password: Password is required!, username: Username must be a valid email address!", verr.Error())
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		verr := handler.NewValidationError()
		assert.True(t, verr.IsEmpty())
		assert.Equal(t, "validation failed", verr.Error())
	})
}
