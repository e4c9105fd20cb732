package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"libris/internal/apperrors"
	"libris/internal/models"
	"libris/internal/response"
	"libris/internal/services"
)

// Locals keys carrying the request-scoped identity derived from the
// session token.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// AuthRequired is a Fiber middleware to check for a valid session
// token. On success the user id and role from the token are stored in
// the request context for downstream handlers.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(response.Envelope{
				Code:    apperrors.CodeUnauthorized,
				Message: "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(response.Envelope{
				Code:    apperrors.CodeUnauthorized,
				Message: "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(response.Envelope{
				Code:    apperrors.CodeUnauthorized,
				Message: "Invalid or expired token",
			})
		}

		userID, _ := claims[LocalUserID].(string)
		role, _ := claims[LocalRole].(string)

		// Store identity in Fiber context for subsequent handlers
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)

		return c.Next()
	}
}

// AdminRequired is the single authorization gate for every
// admin-scoped route. It runs after AuthRequired and rejects any
// caller whose role is not admin before the handler is reached.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		if role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(response.Envelope{
				Code:    apperrors.CodeForbidden,
				Message: apperrors.ErrForbidden.Message,
			})
		}
		return c.Next()
	}
}

// CurrentUserID returns the authenticated user's id from the request
// context.
func CurrentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
