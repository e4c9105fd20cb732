package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"libris/internal/response"
	"libris/internal/services"
)

// AdminUserHandler handles the admin user-management endpoints.
type AdminUserHandler struct {
	userService *services.UserService
}

// NewAdminUserHandler creates a new AdminUserHandler.
func NewAdminUserHandler(userService *services.UserService) *AdminUserHandler {
	return &AdminUserHandler{
		userService: userService,
	}
}

// RegisterRoutes registers the /admin/user routes behind the admin
// guard.
func (h *AdminUserHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	adminRoutes := router.Group("/admin/user", authRequired, adminRequired)
	adminRoutes.Get("/count", h.HandleCount)
	adminRoutes.Put("/:id/status", h.HandleUpdateStatus)
}

// HandleCount returns the number of enabled accounts.
func (h *AdminUserHandler) HandleCount(c *fiber.Ctx) error {
	count, err := h.userService.CountActive()
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, count)
}

// HandleUpdateStatus sets or clears the disabled flag of any user.
func (h *AdminUserHandler) HandleUpdateStatus(c *fiber.Ctx) error {
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
