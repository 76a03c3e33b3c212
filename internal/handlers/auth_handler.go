package handlers

import (
	"skincare-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *auth.AuthService
}

func NewAuthHandler(authService *auth.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Name == "" || input.Email == "" || len(input.Password) < 8 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Name and email are required, password must be at least 8 characters",
		})
	}

	user, err := h.authService.Register(input.Name, input.Email, input.Password)
	if err != nil {
		if err == auth.ErrUserExists {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Registration failed",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": user,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	loginResponse, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	if !loginResponse.User.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Account is deactivated",
		})
	}

	return c.JSON(loginResponse)
}

// GetMe returns the current user. The blocklist check already ran in
// the Protected middleware; by the time we are here the token is
// trusted.
func (h *AuthHandler) GetMe(c *fiber.Ctx) error {
	claims := c.Locals("user").(*auth.Claims)

	user, err := h.authService.GetUserByID(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get user",
		})
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found or token invalid",
		})
	}

	return c.JSON(user)
}

// Logout revokes the current bearer token. A failed revocation fails
// the whole request; the client must never be told a token is dead
// while it still verifies.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims := c.Locals("user").(*auth.Claims)

	if err := h.authService.Logout(claims); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Logout failed",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// RefreshToken revokes the presented token and returns a fresh one for
// the same subject.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	claims := c.Locals("user").(*auth.Claims)

	token, err := h.authService.Refresh(claims)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not refresh token",
		})
	}

	return c.JSON(TokenResponse{Token: token})
}
