package handlers

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"libris/internal/apperrors"
	"libris/internal/response"
)

// Pagination defaults for endpoints that allow omitting the paging
// parameters.
const (
	defaultPage     int64 = 1
	defaultPageSize int64 = 10
)

// validationFailed maps struct-validation failures onto the envelope.
func validationFailed(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return response.Fail(c, apperrors.CodeValidation, "validation failed")
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return response.Fail(c, apperrors.CodeValidation, fmt.Sprintf("validation failed: %v", errorMessages))
}

// invalidBody maps a body-parse failure onto the envelope.
func invalidBody(c *fiber.Ctx) error {
	return response.Fail(c, apperrors.CodeValidation, "invalid request body")
}

// parsePagination reads currentPage and pageSize from the query
// string. Admin list endpoints require both; the user list endpoint
// defaults them to 1/10.
func parsePagination(c *fiber.Ctx, required bool) (int64, int64, error) {
	pageStr := c.Query("currentPage")
	sizeStr := c.Query("pageSize")

	if pageStr == "" && sizeStr == "" && !required {
		return defaultPage, defaultPageSize, nil
	}
	if pageStr == "" || sizeStr == "" {
		return 0, 0, apperrors.Validation("currentPage and pageSize are required")
	}

	page, err := strconv.ParseInt(pageStr, 10, 64)
	if err != nil || page < 1 {
		return 0, 0, apperrors.Validation("currentPage must be an integer >= 1")
	}
	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil || size < 1 {
		return 0, 0, apperrors.Validation("pageSize must be an integer >= 1")
	}
	return page, size, nil
}
