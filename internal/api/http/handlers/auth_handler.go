package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/thallyson03/ceapdesk/internal/api/dto"
	"github.com/thallyson03/ceapdesk/internal/service"
	apperrors "github.com/thallyson03/ceapdesk/pkg/util/errorutil"
)

// AuthHandler exposes operator login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.UserResponse{
				ID:       user.ID,
				Username: user.Username,
				Role:     string(user.Role),
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
