package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wa-group-directory/internal/api/dto"
	"github.com/spec-kit/wa-group-directory/internal/service"
	apperrors "github.com/spec-kit/wa-group-directory/pkg/util"
)

// UsersHandler exposes the admin login endpoint.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Login handles POST /api/user/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Username & password wajib diisi")
	}

	_, token, _, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{Token: token})
}
