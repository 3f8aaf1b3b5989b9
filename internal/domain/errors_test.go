package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatching(t *testing.T) {
	err := NewNotFoundError("Order not found")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, &Error{Kind: KindNotFound, Message: "Order not found"})
	assert.NotErrorIs(t, err, &Error{Kind: KindNotFound, Message: "User not found"})
	assert.NotErrorIs(t, err, ErrValidation)

	wrapped := fmt.Errorf("loading: %w", err)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("disk full")))
	assert.Equal(t, KindEmptyResult, KindOf(NewEmptyResultError("Data is empty.")))
	assert.Equal(t, KindConflict, KindOf(NewConflictError("taken")))
}

func TestErrorMessage(t *testing.T) {
	assert.EqualError(t, &Error{Kind: KindForbidden}, "forbidden")
	assert.EqualError(t, NewValidationError("size must be between 1 and %d", 100), "size must be between 1 and 100")
}
