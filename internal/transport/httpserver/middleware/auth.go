package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"penhub-service/internal/domain"
	"penhub-service/internal/infra/identity"
	"penhub-service/internal/transport/httpserver/dto"
)

// Locals keys set by the auth middleware.
const (
	LocalUserID   = "userID"
	LocalUsername = "username"
)

// RequireAuth returns a middleware that rejects requests without a
// valid bearer token. On success the verified identity is stored in
// the request locals.
func RequireAuth(verifier domain.TokenVerifier, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "missing bearer token",
				Code:  "UNAUTHORIZED",
			})
		}

		id, err := verifier.Verify(c.Context(), token)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidToken) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: "invalid or expired token",
					Code:  "UNAUTHORIZED",
				})
			}

			logger.Error("token verification failed", zap.Error(err))

			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: "authentication unavailable",
				Code:  "AUTH_UNAVAILABLE",
			})
		}

		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalUsername, id.Username)

		return c.Next()
	}
}

// OptionalAuth returns a middleware that resolves the identity when a
// bearer token is present but lets anonymous requests through. Used on
// endpoints whose behavior merely varies by viewer, like single-work
// fetches and view registration.
func OptionalAuth(verifier domain.TokenVerifier, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Next()
		}

		id, err := verifier.Verify(c.Context(), token)
		if err != nil {
			// Anonymous fallback. A stale token on a public endpoint
			// should not block the request.
			logger.Debug("optional auth failed, continuing anonymous", zap.Error(err))

			return c.Next()
		}

		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalUsername, id.Username)

		return c.Next()
	}
}

// UserID returns the authenticated user id from the locals, empty for
// anonymous requests.
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(LocalUserID).(string); ok {
		return id
	}

	return ""
}

func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if auth == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}
