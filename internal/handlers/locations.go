package handlers

import (
	"strings"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/types"
	"github.com/Rustaman1280/tefacontoh/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// LocationRequest is the body of location create and update.
type LocationRequest struct {
	Name           string         `json:"name" validate:"required,max=100"`
	MainGroup      string         `json:"main_group" validate:"required,oneof=school department class"`
	LocationType   string         `json:"location_type" validate:"required,oneof=room lab classroom"`
	DepartmentID   string         `json:"department_id"`
	GradeLevel     string         `json:"grade_level" validate:"omitempty,oneof=X XI XII"`
	SequenceNumber *types.FlexInt `json:"sequence_number"`
	Code           *string        `json:"code" validate:"omitempty,max=50"`
	Description    *string        `json:"description"`
	Capacity       *types.FlexInt `json:"capacity" validate:"omitempty,min=0"`
}

func (r LocationRequest) input() (services.LocationInput, error) {
	in := services.LocationInput{
		Name:           strings.TrimSpace(r.Name),
		MainGroup:      models.MainGroup(r.MainGroup),
		LocationType:   models.LocationType(r.LocationType),
		SequenceNumber: types.IntPtr(r.SequenceNumber),
		Code:           trimmed(r.Code),
		Description:    r.Description,
		Capacity:       types.IntPtr(r.Capacity),
	}
	if r.GradeLevel != "" {
		g := models.GradeLevel(r.GradeLevel)
		in.GradeLevel = &g
	}

	var err error
	in.DepartmentID, err = parseOptionalID(r.DepartmentID, "department_id")
	return in, err
}

// BulkLocationRequest is the body of POST /api/locations/bulk.
type BulkLocationRequest struct {
	DepartmentID  string         `json:"department_id" validate:"required"`
	CreateLabs    types.FlexBool `json:"create_labs"`
	CreateClasses types.FlexBool `json:"create_classes"`
}

// LocationHandler serves /api/locations.
type LocationHandler struct {
	Locations *services.LocationService
}

// List handles GET /api/locations
// @Summary List locations
// @Tags Locations
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or code filter"
// @Param main_group query string false "school, department or class"
// @Param location_type query string false "room, lab or classroom"
// @Param department_id query string false "Department id"
// @Param grade_level query string false "X, XI or XII"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	f := services.LocationFilter{
		Search:       c.Query("search"),
		MainGroup:    models.MainGroup(c.Query("main_group")),
		LocationType: models.LocationType(c.Query("location_type")),
		GradeLevel:   models.GradeLevel(c.Query("grade_level")),
	}
	var err error
	if f.DepartmentID, err = parseOptionalID(c.Query("department_id"), "department_id"); err != nil {
		return err
	}

	locations, err := h.Locations.List(c.UserContext(), f)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, locations)
}

// Grouped handles GET /api/locations/grouped
// @Summary Locations grouped by main group and department
// @Tags Locations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /locations/grouped [get]
func (h *LocationHandler) Grouped(c *fiber.Ctx) error {
	grouped, err := h.Locations.Grouped(c.UserContext())
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, grouped)
}

// Get handles GET /api/locations/:id
// @Summary Get location
// @Description Location with department, assets and assetSummary
// @Tags Locations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Location id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /locations/{id} [get]
func (h *LocationHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "Location")
	if err != nil {
		return err
	}
	location, err := h.Locations.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, location)
}

// Create handles POST /api/locations
// @Summary Create location
// @Description A missing code is generated from the location type
// @Tags Locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body LocationRequest true "Location"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var req LocationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	location, err := h.Locations.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusCreated, "Location created successfully", location)
}

// Update handles PUT /api/locations/:id
// @Summary Replace location
// @Tags Locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Location id"
// @Param body body LocationRequest true "Location"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /locations/{id} [put]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "Location")
	if err != nil {
		return err
	}
	var req LocationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	location, err := h.Locations.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Location updated successfully", location)
}

// Delete handles DELETE /api/locations/:id
// @Summary Delete location
// @Description Refused while the location holds assets
// @Tags Locations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Location id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /locations/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "Location")
	if err != nil {
		return err
	}
	if err := h.Locations.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Location deleted successfully", nil)
}

// Bulk handles POST /api/locations/bulk
// @Summary Provision department labs and classes
// @Description Creates the department's standard labs and classrooms; existing codes are kept
// @Tags Locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BulkLocationRequest true "Provisioning request"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /locations/bulk [post]
func (h *LocationHandler) Bulk(c *fiber.Ctx) error {
	var req BulkLocationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id, err := models.ParseUUID(strings.TrimSpace(req.DepartmentID))
	if err != nil {
		return types.NewValidationError("Department not found")
	}

	res, err := h.Locations.BulkProvision(c.UserContext(), services.BulkRequest{
		DepartmentID:  id,
		CreateLabs:    req.CreateLabs.Bool(),
		CreateClasses: req.CreateClasses.Bool(),
	})
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusCreated, res.Message(), res.Locations)
}
