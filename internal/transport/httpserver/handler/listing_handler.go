package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"penhub-service/internal/app/service"
	"penhub-service/internal/transport/httpserver/dto"
	"penhub-service/internal/transport/httpserver/middleware"
	"penhub-service/internal/validator"
)

// ListingHandler handles the listing HTTP endpoints: search, trending,
// the following feed and the owner's my-works views.
type ListingHandler struct {
	service   *service.ListingService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(svc *service.ListingService, v *validator.Validator, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Search handles GET /api/v1/search/works
func (h *ListingHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchWorksRequest
	if err := c.QueryParser(&req); err != nil {
		return badQuery(c)
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.service.Search(c.Context(), req.ToListParams())
	if err != nil {
		h.logger.Error("search failed", zap.Error(err))

		return domainError(c, err)
	}

	return c.JSON(result)
}

// Trending handles GET /api/v1/trending/works
func (h *ListingHandler) Trending(c *fiber.Ctx) error {
	var req dto.FeedRequest
	if err := c.QueryParser(&req); err != nil {
		return badQuery(c)
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.service.Trending(c.Context(), req.ToListParams())
	if err != nil {
		h.logger.Error("trending failed", zap.Error(err))

		return domainError(c, err)
	}

	return c.JSON(result)
}

// Following handles GET /api/v1/following/works
func (h *ListingHandler) Following(c *fiber.Ctx) error {
	var req dto.FeedRequest
	if err := c.QueryParser(&req); err != nil {
		return badQuery(c)
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	userID := middleware.UserID(c)

	result, err := h.service.FollowingFeed(c.Context(), userID, req.ToListParams())
	if err != nil {
		h.logger.Error("following feed failed", zap.String("user_id", userID), zap.Error(err))

		return domainError(c, err)
	}

	return c.JSON(result)
}

// MyWorks handles GET /api/v1/my/works
func (h *ListingHandler) MyWorks(c *fiber.Ctx) error {
	var req dto.MyWorksRequest
	if err := c.QueryParser(&req); err != nil {
		return badQuery(c)
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	userID := middleware.UserID(c)

	result, err := h.service.MyWorks(c.Context(), userID, req.ToListParams())
	if err != nil {
		h.logger.Error("my works failed", zap.String("user_id", userID), zap.Error(err))

		return domainError(c, err)
	}

	return c.JSON(result)
}

// MyTags handles GET /api/v1/my/tags
func (h *ListingHandler) MyTags(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	tags, err := h.service.MyTags(c.Context(), userID)
	if err != nil {
		h.logger.Error("my tags failed", zap.String("user_id", userID), zap.Error(err))

		return domainError(c, err)
	}

	return c.JSON(dto.TagsResponse{Tags: tags})
}
