package services

import (
	"fmt"
	"time"

	"github.com/localnerve/vortex-console/internal/config"
	"github.com/localnerve/vortex-console/internal/database"
	"github.com/localnerve/vortex-console/internal/heartbeat"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Heartbeat    string            `json:"heartbeat"`
	Revision     uint64            `json:"revision"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck reports database reachability and the last heartbeat status.
// The heartbeat is informational and never makes the service unhealthy.
func HealthCheck(cfg *config.Config, db *gorm.DB, monitor *heartbeat.Monitor, console *Console, log zerolog.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status:    "healthy",
		Heartbeat: string(heartbeat.Unknown),
		Details:   make(map[string]string),
	}

	// Check database connectivity
	if err := database.Ping(db); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.Error().Err(err).Msg("health check failed - database ping")
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	if monitor != nil {
		result.Heartbeat = string(monitor.Status())
		result.Details["heartbeat_url"] = monitor.URL()
		if at := monitor.CheckedAt(); !at.IsZero() {
			result.Details["heartbeat_checked_at"] = at.Format(time.RFC3339)
		}
	}

	if console != nil {
		result.Revision = console.Store().Revision()
	}

	if result.Status == "healthy" {
		log.Debug().Msg("health check passed")
	}

	return result
}
