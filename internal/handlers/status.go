package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/vortex-console/internal/config"
	"github.com/localnerve/vortex-console/internal/heartbeat"
	"github.com/localnerve/vortex-console/internal/services"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// StatusHandler reports heartbeat and service health
type StatusHandler struct {
	Base
	Config *config.Config
	DB     *gorm.DB
	Log    zerolog.Logger
}

// HeartbeatResponse is the last observed connectivity status
type HeartbeatResponse struct {
	Status    heartbeat.Status `json:"status"`
	URL       string           `json:"url,omitempty"`
	CheckedAt string           `json:"checkedAt,omitempty"`
}

// GetHeartbeat handles GET /api/heartbeat
// @Summary Connectivity status
// @Tags Status
// @Produce json
// @Success 200 {object} HeartbeatResponse
// @Router /heartbeat [get]
func (h *StatusHandler) GetHeartbeat(c *fiber.Ctx) error {
	resp := HeartbeatResponse{Status: h.heartbeatStatus()}
	if h.Monitor != nil {
		resp.URL = h.Monitor.URL()
		if at := h.Monitor.CheckedAt(); !at.IsZero() {
			resp.CheckedAt = at.UTC().Format(time.RFC3339)
		}
	}
	return c.JSON(resp)
}

// GetHealth handles GET /health
// @Summary Service health
// @Tags Status
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *StatusHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Config, h.DB, h.Monitor, h.Console, h.Log)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
