package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("create product: %w", Reference("category %s not found", "c1"))

	assert.True(t, errors.Is(err, ErrReference))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "create product: category c1 not found", err.Error())

	msg, ok := Message(err)
	assert.True(t, ok)
	assert.Equal(t, "category c1 not found", msg)
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("vendor", 7)
	assert.Equal(t, "vendor 7 not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequired(t *testing.T) {
	err := Required("customer_email")
	assert.Equal(t, "customer_email is required", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMessageOnForeignError(t *testing.T) {
	_, ok := Message(errors.New("boom"))
	assert.False(t, ok)
}
