package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wa-group-directory/internal/api/dto"
	"github.com/spec-kit/wa-group-directory/internal/service"
)

// ResolverHandler exposes WA invite link title resolution.
type ResolverHandler struct {
	service *service.ResolverService
}

// NewResolverHandler constructs handler.
func NewResolverHandler(resolverService *service.ResolverService) *ResolverHandler {
	return &ResolverHandler{service: resolverService}
}

// Resolve handles GET /api/resolve-wa-link. Public.
func (h *ResolverHandler) Resolve(c *fiber.Ctx) error {
	title, err := h.service.Resolve(c.Context(), c.Query("url"))
	if err != nil {
		return err
	}
	return c.JSON(dto.ResolveResponse{Title: title})
}
