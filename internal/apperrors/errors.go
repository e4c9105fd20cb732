package apperrors

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Business codes carried in the response envelope. Codes below 1000
// mirror their HTTP counterparts; codes from 1001 up are domain
// failures that still travel over HTTP 200.
const (
	CodeSuccess            = 200
	CodeValidation         = 400
	CodeUnauthorized       = 401
	CodeForbidden          = 403
	CodeInternal           = 500
	CodeInvalidCredentials = 1001
	CodeAccountDisabled    = 1002
	CodeDuplicateUsername  = 1003
	CodeNotFound           = 1004
	CodePasswordMismatch   = 1005
	CodeAlreadyReturned    = 1006
)

// Error is a business error with a stable envelope code.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a business error with an explicit code.
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Validation builds a parameter-validation error.
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "incorrect username or password")
	ErrAccountDisabled    = New(CodeAccountDisabled, "account is disabled, contact an administrator")
	ErrDuplicateUsername  = New(CodeDuplicateUsername, "username already exists")
	ErrUserNotFound       = New(CodeNotFound, "user not found")
	ErrEmailNotFound      = New(CodeNotFound, "no account registered with this email")
	ErrRecordNotFound     = New(CodeNotFound, "borrow record not found")
	ErrPasswordMismatch   = New(CodePasswordMismatch, "old password is incorrect")
	ErrAlreadyReturned    = New(CodeAlreadyReturned, "borrow record is already returned")
	ErrForbidden          = New(CodeForbidden, "admin privileges required")
	ErrUnauthorized       = New(CodeUnauthorized, "authentication required")
)

// From extracts the business error from err, if it carries one.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// WrapDB translates store errors into business errors. Record-not-found
// becomes notFound; anything else is wrapped as a generic internal
// failure so store details never reach the client.
func WrapDB(err error, notFound *Error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateUsername
	}
	return fmt.Errorf("%s: %w", op, err)
}
