package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"libris/internal/response"
	"libris/internal/services"
)

// AuthHandler handles the public authentication endpoints.
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public /user routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/user")
	userRoutes.Post("/login", h.HandleLogin)
	userRoutes.Post("/register", h.HandleRegister)
	userRoutes.Post("/reset-password", h.HandleResetPassword)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a user and issues a session token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return invalidBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, fiber.Map{
		"user_info": user.Summary(),
		"token":     token,
	})
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
}

// HandleRegister creates a new account with the default role.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return invalidBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.authService.Register(req.Username, req.Password, req.Email)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessMsg(c, fiber.Map{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"role":        user.Role,
		"create_time": user.CreatedAt,
	}, "registered successfully")
}

// ResetPasswordRequest represents the request body for a password
// reset by email.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// HandleResetPassword replaces the password of the account registered
// with the given email.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing reset-password request body: %v", err)
		return invalidBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.userService.ResetPassword(req.Email, req.NewPassword); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, nil)
}
