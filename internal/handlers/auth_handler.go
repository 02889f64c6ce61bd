package handlers

import (
	"errors"
	"log"

	"kino/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	users := router.Group("/users")
	users.Post("/", h.HandleRegister)
	users.Post("/login", h.HandleLogin)
}

// registerRequest is the body of POST /users.
type registerRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginRequest is the body of POST /users/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister handles new user registration. Registration stores the
// password only in hashed form and never issues a token.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, "Request body is missing", nil)
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.authService.Register(req.Email, req.Password); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return errorResponse(c, fiber.StatusConflict, "Email already in use", nil)
		}
		log.Printf("Error registering user: %v", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Internal server error while saving the user", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registered Successfully",
	})
}

// HandleLogin handles user login and issues a JWT token. An unknown email and
// a wrong password surface with distinct statuses and messages.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return errorResponse(c, fiber.StatusBadRequest, "Request body is missing", nil)
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			return errorResponse(c, fiber.StatusBadRequest, "Invalid email format", nil)
		case errors.Is(err, services.ErrEmailNotFound):
			return errorResponse(c, fiber.StatusNotFound, "No email found", nil)
		case errors.Is(err, services.ErrWrongPassword):
			return errorResponse(c, fiber.StatusUnauthorized, "Incorrect email or password", nil)
		}
		log.Printf("Error during login for %s: %v", req.Email, err)
		return errorResponse(c, fiber.StatusInternalServerError, "Server error", err)
	}

	return c.JSON(fiber.Map{
		"access": token,
	})
}
