// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"penhub-service/internal/app/service"
	"penhub-service/internal/domain"
	"penhub-service/internal/transport/httpserver/handler"
	"penhub-service/internal/transport/httpserver/middleware"
	"penhub-service/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port      int
	BodyLimit int
	Debug     bool
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg ServerConfig,
	listingSvc *service.ListingService,
	workSvc *service.WorkService,
	engagementSvc *service.EngagementService,
	verifier domain.TokenVerifier,
	db *gorm.DB,
	redisClient *redis.Client,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	// Template engine for dashboard
	engine := html.New("./web/templates", ".html")
	if cfg.Debug {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		AppName:      "penhub-service",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
		Views:        engine,
	})

	// Probes first so they answer even when later middleware stalls
	app.Use(middleware.NewHealthCheck(db, redisClient))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(cors.New())
	app.Use(compress.New())

	// Static files
	app.Static("/static", "./web/static")

	listingHandler := handler.NewListingHandler(listingSvc, v, logger)
	workHandler := handler.NewWorkHandler(workSvc, v, logger)
	engagementHandler := handler.NewEngagementHandler(engagementSvc, v, logger)
	dashboardHandler := handler.NewDashboardHandler(listingSvc, logger)

	requireAuth := middleware.RequireAuth(verifier, logger)
	optionalAuth := middleware.OptionalAuth(verifier, logger)

	registerRoutes(app, listingHandler, workHandler, engagementHandler, dashboardHandler, requireAuth, optionalAuth)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	listingHandler *handler.ListingHandler,
	workHandler *handler.WorkHandler,
	engagementHandler *handler.EngagementHandler,
	dashboardHandler *handler.DashboardHandler,
	requireAuth fiber.Handler,
	optionalAuth fiber.Handler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	// Dashboard (HTML)
	app.Get("/dashboard", dashboardHandler.Render)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	// API v1 routes
	v1 := app.Group("/api/v1")

	// Public listings
	v1.Get("/search/works", listingHandler.Search)
	v1.Get("/trending/works", listingHandler.Trending)

	// Authenticated listings
	v1.Get("/following/works", requireAuth, listingHandler.Following)
	v1.Get("/my/works", requireAuth, listingHandler.MyWorks)
	v1.Get("/my/tags", requireAuth, listingHandler.MyTags)
	v1.Get("/my/trash", requireAuth, workHandler.Trash)

	// Works
	works := v1.Group("/works")
	works.Post("/", requireAuth, workHandler.Create)
	works.Get("/:id", optionalAuth, workHandler.Get)
	works.Put("/:id", requireAuth, workHandler.Update)
	works.Delete("/:id", requireAuth, workHandler.Delete)
	works.Post("/:id/trash", requireAuth, workHandler.MoveToTrash)
	works.Post("/:id/restore", requireAuth, workHandler.Restore)
	works.Put("/:id/view", optionalAuth, workHandler.RegisterView)

	// Engagement
	works.Post("/:id/favorite", requireAuth, engagementHandler.Favorite)
	works.Delete("/:id/favorite", requireAuth, engagementHandler.Unfavorite)
	works.Get("/:id/comments", optionalAuth, engagementHandler.Comments)
	works.Post("/:id/comments", requireAuth, engagementHandler.AddComment)
	v1.Delete("/comments/:id", requireAuth, engagementHandler.DeleteComment)
	v1.Post("/users/:id/follow", requireAuth, engagementHandler.Follow)
	v1.Delete("/users/:id/follow", requireAuth, engagementHandler.Unfollow)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		case code >= 400:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Error("unhandled error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "UNHANDLED_ERROR",
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
