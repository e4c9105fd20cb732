package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFrom(t *testing.T) {
	appErr, ok := From(ErrDuplicateUsername)
	assert.True(t, ok)
	assert.Equal(t, CodeDuplicateUsername, appErr.Code)

	// Wrapped business errors are still recognised.
	wrapped := fmt.Errorf("register: %w", ErrDuplicateUsername)
	appErr, ok = From(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeDuplicateUsername, appErr.Code)

	// Plain errors are not.
	_, ok = From(errors.New("connection refused"))
	assert.False(t, ok)
}

func TestWrapDB(t *testing.T) {
	assert.NoError(t, WrapDB(nil, ErrUserNotFound, "get user"))

	// Missing records map to the supplied not-found error.
	err := WrapDB(gorm.ErrRecordNotFound, ErrUserNotFound, "get user")
	assert.ErrorIs(t, err, ErrUserNotFound)

	// Duplicate keys map to the duplicate-username error.
	err = WrapDB(gorm.ErrDuplicatedKey, ErrUserNotFound, "create user")
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	// Anything else stays an infrastructure error without a business code.
	err = WrapDB(errors.New("connection refused"), ErrUserNotFound, "get user")
	assert.Error(t, err)
	_, ok := From(err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "get user")
}
