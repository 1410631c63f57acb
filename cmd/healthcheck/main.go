// main.go
//
// A school inventory service with an audit trail and dashboard aggregates
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of tefacontoh.
// tefacontoh is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// tefacontoh is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with tefacontoh.
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
	"log"
	"os"
	"time"

	"github.com/Rustaman1280/tefacontoh/internal/cache"
	"github.com/Rustaman1280/tefacontoh/internal/config"
	"github.com/Rustaman1280/tefacontoh/internal/database"
	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/utils"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger := zap.NewNop()
	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	var pinger services.Pinger
	if cfg.RedisURL != "" {
		if store, err := cache.NewStore(ctx, cfg.RedisURL, "", time.Second); err == nil {
			defer store.Close()
			pinger = store
		} else {
			pinger = failedPing{err}
		}
	}

	result := services.HealthCheck(ctx, db, pinger, logger)

	// The listener check tells a dead process apart from a dead database.
	if err := utils.PingListener(cfg.Port); err != nil {
		result.Status = "unhealthy"
		result.Details["listener_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("API not listening on port %s", cfg.Port)
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}
	fmt.Println(string(output))

	if !result.Healthy() {
		os.Exit(1)
	}
}

// failedPing reports the connection error of a cache that never came up.
type failedPing struct{ err error }

func (f failedPing) Ping(context.Context) error { return f.err }
