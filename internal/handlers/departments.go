package handlers

import (
	"strings"

	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/types"
	"github.com/Rustaman1280/tefacontoh/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// DepartmentRequest is the body of department create and update.
type DepartmentRequest struct {
	Code                 string         `json:"code" validate:"required,max=10"`
	Name                 string         `json:"name" validate:"required,max=100"`
	TotalClassesPerGrade *types.FlexInt `json:"total_classes_per_grade" validate:"omitempty,min=0"`
	TotalLabs            *types.FlexInt `json:"total_labs" validate:"omitempty,min=0"`
	Description          *string        `json:"description"`
}

func (r DepartmentRequest) input() services.DepartmentInput {
	return services.DepartmentInput{
		Code:                 strings.TrimSpace(r.Code),
		Name:                 strings.TrimSpace(r.Name),
		TotalClassesPerGrade: types.IntPtr(r.TotalClassesPerGrade),
		TotalLabs:            types.IntPtr(r.TotalLabs),
		Description:          r.Description,
	}
}

// DepartmentHandler serves /api/departments.
type DepartmentHandler struct {
	Departments *services.DepartmentService
}

// List handles GET /api/departments
// @Summary List departments
// @Tags Departments
// @Produce json
// @Security BearerAuth
// @Param search query string false "Code or name filter"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /departments [get]
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	departments, err := h.Departments.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, departments)
}

// Get handles GET /api/departments/:id
// @Summary Get department
// @Tags Departments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Department id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /departments/{id} [get]
func (h *DepartmentHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "Department")
	if err != nil {
		return err
	}
	department, err := h.Departments.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, department)
}

// Summary handles GET /api/departments/:id/summary
// @Summary Department labs and classes
// @Tags Departments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Department id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /departments/{id}/summary [get]
func (h *DepartmentHandler) Summary(c *fiber.Ctx) error {
	id, err := parseID(c, "Department")
	if err != nil {
		return err
	}
	summary, err := h.Departments.Summary(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, summary)
}

// Create handles POST /api/departments
// @Summary Create department
// @Tags Departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body DepartmentRequest true "Department"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /departments [post]
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var req DepartmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	department, err := h.Departments.Create(c.UserContext(), req.input())
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusCreated, "Department created successfully", department)
}

// Update handles PUT /api/departments/:id
// @Summary Replace department
// @Tags Departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Department id"
// @Param body body DepartmentRequest true "Department"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /departments/{id} [put]
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "Department")
	if err != nil {
		return err
	}
	var req DepartmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	department, err := h.Departments.Update(c.UserContext(), id, req.input())
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Department updated successfully", department)
}

// Delete handles DELETE /api/departments/:id
// @Summary Delete department
// @Description Refused while locations reference the department
// @Tags Departments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Department id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /departments/{id} [delete]
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "Department")
	if err != nil {
		return err
	}
	if err := h.Departments.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Department deleted successfully", nil)
}
