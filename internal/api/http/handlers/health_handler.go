package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/justiceconnect/internal/persistence"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	pg      *persistence.Postgres
	redis   *persistence.Redis
	version string
}

// NewHealthHandler constructs handler.
func NewHealthHandler(pg *persistence.Postgres, redis *persistence.Redis, version string) *HealthHandler {
	return &HealthHandler{pg: pg, redis: redis, version: version}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "version": h.version})
}

// Ready GET /health/ready. Reports each dependency individually so a degraded
// instance is visible without log digging.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{}
	healthy := true

	if err := h.pg.Ping(c.UserContext()); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	} else {
		checks["postgres"] = "ok"
	}
	if err := h.redis.Ping(c.UserContext()); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	status := fiber.StatusOK
	if !healthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"checks": checks})
}
