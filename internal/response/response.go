package response

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"libris/internal/apperrors"
)

// Envelope is the uniform {code, message, data} wrapper around every
// API response. Business failures travel with HTTP 200 and a non-200
// envelope code; transport-level failures (bad token, missing header)
// keep their HTTP status.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Page is a bounded window of records plus total-count metadata for a
// listing query.
type Page[T any] struct {
	CurrentPage int64 `json:"current_page"`
	PageSize    int64 `json:"page_size"`
	Total       int64 `json:"total"`
	Records     []T   `json:"records"`
}

// NewPage assembles a page, normalising a nil record slice to an empty
// one so clients always see a JSON array.
func NewPage[T any](currentPage, pageSize, total int64, records []T) Page[T] {
	if records == nil {
		records = []T{}
	}
	return Page[T]{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		Total:       total,
		Records:     records,
	}
}

// Success writes a success envelope.
func Success(c *fiber.Ctx, data any) error {
	return c.JSON(Envelope{Code: apperrors.CodeSuccess, Message: "success", Data: data})
}

// SuccessMsg writes a success envelope with a custom message.
func SuccessMsg(c *fiber.Ctx, data any, message string) error {
	return c.JSON(Envelope{Code: apperrors.CodeSuccess, Message: message, Data: data})
}

// Fail writes a failure envelope with an explicit business code.
func Fail(c *fiber.Ctx, code int, message string) error {
	return c.JSON(Envelope{Code: code, Message: message})
}

// Error maps an error from the service layer onto the envelope.
// Business errors keep their code and message; anything else is logged
// and collapsed to a generic internal failure so store internals never
// leak to the caller.
func Error(c *fiber.Ctx, err error) error {
	if appErr, ok := apperrors.From(err); ok {
		return Fail(c, appErr.Code, appErr.Message)
	}
	log.Printf("Unexpected error handling %s %s: %v", c.Method(), c.Path(), err)
	return Fail(c, apperrors.CodeInternal, "internal server error")
}
