package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"libris/internal/middleware"
	"libris/internal/response"
	"libris/internal/services"
)

// UserHandler handles the authenticated /user endpoints.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authenticated /user routes.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	userRoutes := router.Group("/user", authRequired)
	userRoutes.Get("/info", h.HandleInfo)
	userRoutes.Get("/list", h.HandleList)
	userRoutes.Put("/status/:id", h.HandleUpdateStatus)
	userRoutes.Put("/password", h.HandleUpdatePassword)
	userRoutes.Put("/profile", h.HandleUpdateProfile)
}

// HandleInfo returns the authenticated user's profile. A missing user
// renders success with empty data.
func (h *UserHandler) HandleInfo(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(middleware.CurrentUserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	if user == nil {
		return response.Success(c, nil)
	}
	return response.Success(c, user.Summary())
}

// HandleList returns a page of user summaries. Paging defaults to
// page 1 with 10 entries when the parameters are omitted.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	page, pageSize, err := parsePagination(c, false)
	if err != nil {
		return response.Error(c, err)
	}

	users, total, err := h.userService.ListUsers(page, pageSize, c.Query("keyword"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, response.NewPage(page, pageSize, total, users))
}

// StatusRequest represents the request body for a status toggle.
// Status 1 disables the account; any other value re-enables it.
type StatusRequest struct {
	Status int `json:"status"`
}

// HandleUpdateStatus sets or clears the disabled flag of a user.
func (h *UserHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status request body: %v", err)
		return invalidBody(c)
	}

	if err := h.userService.UpdateStatus(c.Params("id"), req.Status); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, nil)
}

// PasswordRequest represents the request body for a password change.
type PasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// HandleUpdatePassword changes the authenticated user's password.
func (h *UserHandler) HandleUpdatePassword(c *fiber.Ctx) error {
	var req PasswordRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing password request body: %v", err)
		return invalidBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.userService.UpdatePassword(middleware.CurrentUserID(c), req.OldPassword, req.NewPassword); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, nil)
}

// ProfileRequest represents the request body for a profile update.
type ProfileRequest struct {
	Email string `json:"email" validate:"required"`
}

// HandleUpdateProfile updates the authenticated user's email.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile request body: %v", err)
		return invalidBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.userService.UpdateProfile(middleware.CurrentUserID(c), req.Email); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, nil)
}
