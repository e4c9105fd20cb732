package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"libris/internal/response"
	"libris/internal/services"
)

// AdminNotificationHandler handles the admin notification endpoints.
type AdminNotificationHandler struct {
	notificationService *services.NotificationService
	validate            *validator.Validate
}

// NewAdminNotificationHandler creates a new AdminNotificationHandler.
func NewAdminNotificationHandler(notificationService *services.NotificationService) *AdminNotificationHandler {
	return &AdminNotificationHandler{
		notificationService: notificationService,
		validate:            validator.New(),
	}
}

// RegisterRoutes registers the /admin/notification routes behind the
// admin guard.
func (h *AdminNotificationHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	notificationRoutes := router.Group("/admin/notification", authRequired, adminRequired)
	notificationRoutes.Get("/list", h.HandleList)
	notificationRoutes.Post("/push-all", h.HandlePushToAll)
	notificationRoutes.Post("/push/:username", h.HandlePushToUser)
}

// HandleList returns a page of notifications. currentPage and
// pageSize are required on this endpoint.
func (h *AdminNotificationHandler) HandleList(c *fiber.Ctx) error {
	page, pageSize, err := parsePagination(c, true)
	if err != nil {
		return response.Error(c, err)
	}

	notifications, total, err := h.notificationService.List(page, pageSize, c.Query("keyword"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, response.NewPage(page, pageSize, total, notifications))
}

// PushRequest represents the request body for a notification push.
type PushRequest struct {
	Content string `json:"content" validate:"required"`
}

// HandlePushToAll stores and publishes a broadcast notification.
func (h *AdminNotificationHandler) HandlePushToAll(c *fiber.Ctx) error {
	var req PushRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing push request body: %v", err)
		return invalidBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.notificationService.PushToAll(req.Content); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, nil)
}

// HandlePushToUser stores and publishes a notification addressed to
// one user.
func (h *AdminNotificationHandler) HandlePushToUser(c *fiber.Ctx) error {
	var req PushRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing push request body: %v", err)
		return invalidBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.notificationService.PushToUser(c.Params("username"), req.Content); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, nil)
}
