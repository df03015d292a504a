// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewHealthCheck serves the liveness and readiness probes.
//
// GET /livez reports only that the process is up. GET /readyz requires
// both backing stores: Postgres holds the works, and Redis carries the
// trending cache, the view dedup keys and the sweep lock.
//
// Register before other routes so probes answer even under load.
func NewHealthCheck(db *gorm.DB, rdb *redis.Client) fiber.Handler {
	return healthcheck.New(healthcheck.Config{
		LivenessEndpoint: "/livez",
		LivenessProbe: func(_ *fiber.Ctx) bool {
			return true
		},

		ReadinessEndpoint: "/readyz",
		ReadinessProbe: func(c *fiber.Ctx) bool {
			if db == nil || rdb == nil {
				return false
			}

			sqlDB, err := db.DB()
			if err != nil || sqlDB.Ping() != nil {
				return false
			}

			return rdb.Ping(c.Context()).Err() == nil
		},
	})
}
