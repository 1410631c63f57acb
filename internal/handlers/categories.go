package handlers

import (
	"strings"

	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// CategoryRequest is the body of category create and update.
type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description"`
}

func (r CategoryRequest) input() services.CategoryInput {
	return services.CategoryInput{Name: strings.TrimSpace(r.Name), Description: r.Description}
}

// CategoryHandler serves /api/categories.
type CategoryHandler struct {
	Categories *services.CategoryService
}

// List handles GET /api/categories
// @Summary List categories
// @Description Paginated, newest first, each with assetCount
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	page := utils.ParsePageParams(c, 10)
	items, total, err := h.Categories.List(c.UserContext(), c.Query("search"), page)
	if err != nil {
		return err
	}
	return utils.PaginatedResponse(c, items, utils.NewPagination(total, page))
}

// Get handles GET /api/categories/:id
// @Summary Get category
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "Category")
	if err != nil {
		return err
	}
	category, err := h.Categories.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, category)
}

// Create handles POST /api/categories
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CategoryRequest true "Category"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category, err := h.Categories.Create(c.UserContext(), req.input())
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusCreated, "Category created successfully", category)
}

// Update handles PUT /api/categories/:id
// @Summary Replace category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category id"
// @Param body body CategoryRequest true "Category"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "Category")
	if err != nil {
		return err
	}
	var req CategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category, err := h.Categories.Update(c.UserContext(), id, req.input())
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Category updated successfully", category)
}

// Delete handles DELETE /api/categories/:id
// @Summary Delete category
// @Description Refused while assets use the category
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "Category")
	if err != nil {
		return err
	}
	if err := h.Categories.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Category deleted successfully", nil)
}
