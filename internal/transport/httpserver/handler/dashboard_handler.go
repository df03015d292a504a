package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"penhub-service/internal/app/service"
	"penhub-service/internal/domain"
)

// DashboardHandler renders the operational dashboard.
type DashboardHandler struct {
	listingService *service.ListingService
	logger         *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *service.ListingService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		listingService: svc,
		logger:         logger,
	}
}

// Render handles GET /dashboard
// Renders the dashboard HTML page with the current trending works.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	params := domain.DefaultListParams()
	params.Limit = domain.DefaultTablePageSize

	result, err := h.listingService.Trending(c.Context(), params)
	if err != nil {
		h.logger.Warn("dashboard trending lookup failed", zap.Error(err))
		result = domain.EmptyListResult(params)
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":      "PenHub Dashboard",
		"TotalWorks": result.Total,
		"Trending":   result.Results,
	}, "layouts/base")
}
