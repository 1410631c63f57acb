// server.go
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

package server

import (
	"errors"
	"time"

	"github.com/Rustaman1280/tefacontoh/internal/config"
	"github.com/Rustaman1280/tefacontoh/internal/handlers"
	"github.com/Rustaman1280/tefacontoh/internal/middleware"
	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/types"
	"github.com/Rustaman1280/tefacontoh/internal/utils"
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/Rustaman1280/tefacontoh/docs/api" // Swagger docs
)

// Deps are the collaborators the HTTP server is built from.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Logger   *zap.Logger
	Services *services.Services
	// Cache is pinged by the health check; nil when Redis is not configured.
	Cache services.Pinger
	// Registry receives the HTTP metrics; nil uses a fresh registry.
	Registry *prometheus.Registry
}

// New assembles the Fiber application: middleware chain, routes and the
// JSON error handler.
func New(d Deps) *fiber.App {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.Config.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(compress.New())

	// Prometheus metrics
	registry := d.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics := fiberprometheus.NewWithRegistry(registry, "school-inventory", "http", "", nil)
	metrics.RegisterAt(app, "/metrics")
	app.Use(metrics.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	if d.Config.RateLimitMax > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:        d.Config.RateLimitMax,
			Expiration: d.Config.RateLimitWindow,
			LimitReached: func(c *fiber.Ctx) error {
				return utils.ErrorResponse(c, "Too many requests", fiber.StatusTooManyRequests)
			},
		}))
	}

	registerRoutes(api, d, log)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "Route not found")
	})

	return app
}

func registerRoutes(api fiber.Router, d Deps, log *zap.Logger) {
	svc := d.Services
	protected := middleware.Protected(svc.Users)

	health := &handlers.HealthHandler{DB: d.DB, Cache: d.Cache, Log: log.Named("health")}
	api.Get("/health", health.Health)

	auth := &handlers.AuthHandler{Users: svc.Users}
	authGroup := api.Group("/auth")
	authGroup.Post("/register", auth.Register)
	authGroup.Post("/login", auth.Login)
	authGroup.Get("/me", protected, auth.Me)

	assets := &handlers.AssetHandler{Assets: svc.Assets}
	assetGroup := api.Group("/assets", protected)
	assetGroup.Get("/", assets.List)
	assetGroup.Post("/", assets.Create)
	assetGroup.Get("/:id/logs", assets.Logs)
	assetGroup.Get("/:id", assets.Get)
	assetGroup.Put("/:id", assets.Update)
	assetGroup.Delete("/:id", assets.Delete)

	categories := &handlers.CategoryHandler{Categories: svc.Categories}
	categoryGroup := api.Group("/categories", protected)
	categoryGroup.Get("/", categories.List)
	categoryGroup.Post("/", categories.Create)
	categoryGroup.Get("/:id", categories.Get)
	categoryGroup.Put("/:id", categories.Update)
	categoryGroup.Delete("/:id", categories.Delete)

	departments := &handlers.DepartmentHandler{Departments: svc.Departments}
	departmentGroup := api.Group("/departments", protected)
	departmentGroup.Get("/", departments.List)
	departmentGroup.Post("/", departments.Create)
	departmentGroup.Get("/:id/summary", departments.Summary)
	departmentGroup.Get("/:id", departments.Get)
	departmentGroup.Put("/:id", departments.Update)
	departmentGroup.Delete("/:id", departments.Delete)

	locations := &handlers.LocationHandler{Locations: svc.Locations}
	locationGroup := api.Group("/locations", protected)
	locationGroup.Get("/", locations.List)
	locationGroup.Post("/", locations.Create)
	locationGroup.Get("/grouped", locations.Grouped)
	locationGroup.Post("/bulk", locations.Bulk)
	locationGroup.Get("/:id", locations.Get)
	locationGroup.Put("/:id", locations.Update)
	locationGroup.Delete("/:id", locations.Delete)

	itemTypes := &handlers.ItemTypeHandler{ItemTypes: svc.ItemTypes}
	itemTypeGroup := api.Group("/item-types", protected)
	itemTypeGroup.Get("/", itemTypes.List)
	itemTypeGroup.Post("/", itemTypes.Create)
	itemTypeGroup.Get("/grouped", itemTypes.Grouped)
	itemTypeGroup.Get("/:id", itemTypes.Get)
	itemTypeGroup.Put("/:id", itemTypes.Update)
	itemTypeGroup.Delete("/:id", itemTypes.Delete)

	dashboard := &handlers.DashboardHandler{Dashboard: svc.Dashboard}
	dashboardGroup := api.Group("/dashboard", protected)
	dashboardGroup.Get("/stats", dashboard.Stats)
	dashboardGroup.Get("/department-summary", dashboard.DepartmentSummary)
	dashboardGroup.Get("/location-summary", dashboard.LocationSummary)
}

// errorHandler renders every error as the failure envelope. Errors without
// a status are reported as 500 with their message.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := err.Error()

		var fe *fiber.Error
		if ce, ok := types.AsCustomError(err); ok {
			code = ce.Code
			message = ce.Message
		} else if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.Error(err),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Any("request_id", c.Locals("requestid")),
			)
		}

		return utils.ErrorResponse(c, message, code)
	}
}
