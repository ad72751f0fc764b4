// main.go
//
// Storefront and admin console service for Vortex streaming and gaming subscriptions
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of vortex-console.
// vortex-console is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// vortex-console is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with vortex-console.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/localnerve/vortex-console/internal/config"
	"github.com/localnerve/vortex-console/internal/database"
	"github.com/localnerve/vortex-console/internal/heartbeat"
	"github.com/localnerve/vortex-console/internal/services"
	"github.com/localnerve/vortex-console/internal/utils"
	"github.com/localnerve/vortex-console/pkg/logger"
)

func main() {
	log := logger.New(logger.Options{Level: "warn", Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	// One probe, no background loop
	monitor := heartbeat.NewMonitor(cfg.HeartbeatURL, cfg.HeartbeatInterval, cfg.HeartbeatTimeout, log)
	monitor.Check(context.Background())

	// Perform health check
	result := services.HealthCheck(cfg, db, monitor, nil, log)
	if err := utils.PingLocalServer(cfg.Port); err != nil {
		result.Status = "unhealthy"
		result.Details["server_ping_error"] = err.Error()
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Server ping failed: %v", err)
		}
	}

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal health check result")
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
