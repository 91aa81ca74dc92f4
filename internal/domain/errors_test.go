package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	t.Run("message includes the field", func(t *testing.T) {
		err := NewValidationError("id", "has invalid format", ErrInvalidID)
		assert.Equal(t, "id has invalid format", err.Error())
	})

	t.Run("unwraps to the given sentinel", func(t *testing.T) {
		err := NewValidationError("id", "has invalid format", ErrInvalidID)
		assert.ErrorIs(t, err, ErrInvalidID)
		assert.False(t, errors.Is(err, ErrValidation))
	})

	t.Run("defaults to ErrValidation", func(t *testing.T) {
		err := NewValidationError("title", "is required", nil)
		assert.ErrorIs(t, err, ErrValidation)
	})
}
