package handlers

import (
	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves /api/dashboard.
type DashboardHandler struct {
	Dashboard *services.DashboardService
}

// Stats handles GET /api/dashboard/stats
// @Summary Inventory overview
// @Description Totals, condition and quantity breakdowns, per-group and per-department rollups, recent activity
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.Dashboard.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}

// DepartmentSummary handles GET /api/dashboard/department-summary
// @Summary Per-department lab and class totals
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /dashboard/department-summary [get]
func (h *DashboardHandler) DepartmentSummary(c *fiber.Ctx) error {
	summary, err := h.Dashboard.DepartmentSummary(c.UserContext())
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, summary)
}

// LocationSummary handles GET /api/dashboard/location-summary
// @Summary Per-location asset totals
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param main_group query string false "school, department or class"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /dashboard/location-summary [get]
func (h *DashboardHandler) LocationSummary(c *fiber.Ctx) error {
	summary, err := h.Dashboard.LocationSummary(c.UserContext(), models.MainGroup(c.Query("main_group")))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, summary)
}
