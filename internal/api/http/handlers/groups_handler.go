package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wa-group-directory/internal/api/dto"
	"github.com/spec-kit/wa-group-directory/internal/auth"
	"github.com/spec-kit/wa-group-directory/internal/events"
	"github.com/spec-kit/wa-group-directory/internal/service"
	apperrors "github.com/spec-kit/wa-group-directory/pkg/util"
)

// GroupsHandler manages directory listing endpoints.
type GroupsHandler struct {
	service *service.GroupService
}

// NewGroupsHandler constructs handler.
func NewGroupsHandler(groupService *service.GroupService) *GroupsHandler {
	return &GroupsHandler{service: groupService}
}

// List handles GET /api/groups. Public.
func (h *GroupsHandler) List(c *fiber.Ctx) error {
	filter := service.GroupListFilter{
		Search: c.Query("search"),
		Jenis:  c.Query("jenis"),
		Status: c.Query("status"),
	}
	groups, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewGroupResponses(groups))
}

// ListJenis handles GET /api/groups/jenis. Public.
func (h *GroupsHandler) ListJenis(c *fiber.Ctx) error {
	jenis, err := h.service.ListJenis(c.Context())
	if err != nil {
		return err
	}
	if jenis == nil {
		jenis = []string{}
	}
	return c.JSON(jenis)
}

// Create handles POST /api/groups.
func (h *GroupsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Nama, link, jenis wajib diisi")
	}

	group, err := h.service.Create(c.Context(), actorFromContext(c), service.GroupCreateInput{
		Nama:  req.Nama,
		Link:  req.Link,
		Jenis: req.Jenis,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewGroupResponse(group))
}

// Update handles PUT /api/groups/:id.
func (h *GroupsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Payload tidak valid")
	}

	group, err := h.service.Update(c.Context(), actorFromContext(c), id, service.GroupUpdateInput{
		Nama:   req.Nama,
		Link:   req.Link,
		Jenis:  req.Jenis,
		Status: req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewGroupResponse(group))
}

// Delete handles DELETE /api/groups/:id.
func (h *GroupsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), actorFromContext(c), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ChangeStatus handles PATCH /api/groups/:id/status.
func (h *GroupsHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Status harus AKTIF atau NONAKTIF")
	}

	group, err := h.service.SetStatus(c.Context(), actorFromContext(c), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewGroupResponse(group))
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("ID tidak valid")
	}
	return id, nil
}

func actorFromContext(c *fiber.Ctx) events.Actor {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return events.Actor{UserID: principal.UserID, Username: principal.Username}
	}
	return events.Actor{}
}
