package handlers

import (
	"devconnector/internal/services"
	"devconnector/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for user accounts.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the user routes. requireAuth guards /current.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/register", h.HandleRegister)
	userRoutes.Post("/login", h.HandleLogin)
	userRoutes.Get("/current", requireAuth, h.HandleCurrent)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req validation.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	user, err := h.authService.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, "Registration failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req validation.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	token, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, "Authentication failed", err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}

// HandleCurrent returns the authenticated user.
func (h *AuthHandler) HandleCurrent(c *fiber.Ctx) error {
	user, err := h.authService.GetUser(c.UserContext(), userID(c))
	if err != nil {
		return respondError(c, "Could not load current user", err)
	}
	return c.JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}
