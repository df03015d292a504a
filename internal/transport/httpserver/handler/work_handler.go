package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"penhub-service/internal/app/service"
	"penhub-service/internal/transport/httpserver/dto"
	"penhub-service/internal/transport/httpserver/middleware"
	"penhub-service/internal/validator"
)

// WorkHandler handles the work lifecycle HTTP endpoints.
type WorkHandler struct {
	service   *service.WorkService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewWorkHandler creates a new WorkHandler.
func NewWorkHandler(svc *service.WorkService, v *validator.Validator, logger *zap.Logger) *WorkHandler {
	return &WorkHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Get handles GET /api/v1/works/:id
func (h *WorkHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}

	work, err := h.service.Get(c.Context(), id, middleware.UserID(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(work)
}

// Create handles POST /api/v1/works
func (h *WorkHandler) Create(c *fiber.Ctx) error {
	var payload dto.WorkPayload
	if err := c.BodyParser(&payload); err != nil {
		return badBody(c)
	}
	if err := h.validator.Validate(&payload); err != nil {
		return validationFailed(c, err)
	}

	work, err := h.service.Create(c.Context(), middleware.UserID(c), payload.ToDomainWork(), payload.Tags)
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(work)
}

// Update handles PUT /api/v1/works/:id
func (h *WorkHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}

	var payload dto.WorkPayload
	if err := c.BodyParser(&payload); err != nil {
		return badBody(c)
	}
	if err := h.validator.Validate(&payload); err != nil {
		return validationFailed(c, err)
	}

	work, err := h.service.Update(c.Context(), middleware.UserID(c), id, payload.ToDomainWork(), payload.Tags)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(work)
}

// Delete handles DELETE /api/v1/works/:id
func (h *WorkHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}

	if err := h.service.Delete(c.Context(), middleware.UserID(c), id); err != nil {
		return domainError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// MoveToTrash handles POST /api/v1/works/:id/trash
func (h *WorkHandler) MoveToTrash(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}

	work, err := h.service.MoveToTrash(c.Context(), middleware.UserID(c), id)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(work)
}

// Restore handles POST /api/v1/works/:id/restore
func (h *WorkHandler) Restore(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}

	work, err := h.service.Restore(c.Context(), middleware.UserID(c), id)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(work)
}

// Trash handles GET /api/v1/my/trash
func (h *WorkHandler) Trash(c *fiber.Ctx) error {
	works, err := h.service.Trash(c.Context(), middleware.UserID(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"results": works})
}

// RegisterView handles PUT /api/v1/works/:id/view
//
// The viewer key is the user id when authenticated, otherwise the
// client IP, so repeated views within the dedup window count once per
// viewer rather than once globally.
func (h *WorkHandler) RegisterView(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}

	viewerKey := fmt.Sprintf("ip_%s", c.IP())
	if userID := middleware.UserID(c); userID != "" {
		viewerKey = fmt.Sprintf("user_%s", userID)
	}

	if err := h.service.RegisterView(c.Context(), id, viewerKey); err != nil {
		return domainError(c, err)
	}

	return c.SendStatus(fiber.StatusAccepted)
}
