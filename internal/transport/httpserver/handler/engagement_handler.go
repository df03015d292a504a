package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"penhub-service/internal/app/service"
	"penhub-service/internal/transport/httpserver/dto"
	"penhub-service/internal/transport/httpserver/middleware"
	"penhub-service/internal/validator"
)

// EngagementHandler handles favorites, comments and follows.
type EngagementHandler struct {
	service   *service.EngagementService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(svc *service.EngagementService, v *validator.Validator, logger *zap.Logger) *EngagementHandler {
	return &EngagementHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Favorite handles POST /api/v1/works/:id/favorite
func (h *EngagementHandler) Favorite(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}

	if err := h.service.Favorite(c.Context(), middleware.UserID(c), id); err != nil {
		return domainError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Unfavorite handles DELETE /api/v1/works/:id/favorite
func (h *EngagementHandler) Unfavorite(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}

	if err := h.service.Unfavorite(c.Context(), middleware.UserID(c), id); err != nil {
		return domainError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Comments handles GET /api/v1/works/:id/comments
func (h *EngagementHandler) Comments(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}

	comments, err := h.service.Comments(c.Context(), id, middleware.UserID(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"results": comments})
}

// AddComment handles POST /api/v1/works/:id/comments
func (h *EngagementHandler) AddComment(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}

	var payload dto.CommentPayload
	if err := c.BodyParser(&payload); err != nil {
		return badBody(c)
	}
	if err := h.validator.Validate(&payload); err != nil {
		return validationFailed(c, err)
	}

	comment, err := h.service.Comment(c.Context(), middleware.UserID(c), id, payload.Content)
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /api/v1/comments/:id
func (h *EngagementHandler) DeleteComment(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}

	if err := h.service.DeleteComment(c.Context(), middleware.UserID(c), id); err != nil {
		return domainError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Follow handles POST /api/v1/users/:id/follow
func (h *EngagementHandler) Follow(c *fiber.Ctx) error {
	followedID := c.Params("id")
	if followedID == "" {
		return invalidID(c)
	}

	if err := h.service.Follow(c.Context(), middleware.UserID(c), followedID); err != nil {
		return domainError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Unfollow handles DELETE /api/v1/users/:id/follow
func (h *EngagementHandler) Unfollow(c *fiber.Ctx) error {
	followedID := c.Params("id")
	if followedID == "" {
		return invalidID(c)
	}

	if err := h.service.Unfollow(c.Context(), middleware.UserID(c), followedID); err != nil {
		return domainError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
