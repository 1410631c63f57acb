package handlers

import (
	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler serves GET /api/health.
type HealthHandler struct {
	DB    *gorm.DB
	Cache services.Pinger
	Log   *zap.Logger
}

// Health handles GET /api/health
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} utils.HealthResponse
// @Failure 503 {object} utils.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.DB, h.Cache, h.Log)

	status := fiber.StatusOK
	message := "School inventory API is running"
	if !result.Healthy() {
		status = fiber.StatusServiceUnavailable
		message = "School inventory API is unhealthy"
	}

	return c.Status(status).JSON(utils.HealthResponse{
		Success:   result.Healthy(),
		Message:   message,
		Data:      result,
		Timestamp: utils.Timestamp(),
	})
}
