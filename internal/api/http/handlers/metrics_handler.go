package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/justiceconnect/internal/service"
)

// MetricsHandler exposes the admin dashboard numbers.
type MetricsHandler struct {
	service *service.MetricsService
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(metricsService *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{service: metricsService}
}

// Dashboard GET /api/admin/metrics/snapshot.
func (h *MetricsHandler) Dashboard(c *fiber.Ctx) error {
	snapshot, err := h.service.Snapshot(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": snapshot})
}
