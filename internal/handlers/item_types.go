package handlers

import (
	"strings"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// ItemTypeRequest is the body of item type create and update.
type ItemTypeRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	ItemCategory string  `json:"item_category" validate:"required,oneof=department class general"`
	Description  *string `json:"description"`
	Icon         *string `json:"icon" validate:"omitempty,max=255"`
}

func (r ItemTypeRequest) input() services.ItemTypeInput {
	return services.ItemTypeInput{
		Name:         strings.TrimSpace(r.Name),
		ItemCategory: models.ItemCategory(r.ItemCategory),
		Description:  r.Description,
		Icon:         r.Icon,
	}
}

// ItemTypeHandler serves /api/item-types.
type ItemTypeHandler struct {
	ItemTypes *services.ItemTypeService
}

// List handles GET /api/item-types
// @Summary List item types
// @Tags ItemTypes
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name filter"
// @Param item_category query string false "department, class or general"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /item-types [get]
func (h *ItemTypeHandler) List(c *fiber.Ctx) error {
	itemTypes, err := h.ItemTypes.List(c.UserContext(), c.Query("search"), models.ItemCategory(c.Query("item_category")))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, itemTypes)
}

// Grouped handles GET /api/item-types/grouped
// @Summary Item types grouped by item category
// @Tags ItemTypes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /item-types/grouped [get]
func (h *ItemTypeHandler) Grouped(c *fiber.Ctx) error {
	grouped, err := h.ItemTypes.Grouped(c.UserContext())
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, grouped)
}

// Get handles GET /api/item-types/:id
// @Summary Get item type
// @Tags ItemTypes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item type id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /item-types/{id} [get]
func (h *ItemTypeHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "Item type")
	if err != nil {
		return err
	}
	itemType, err := h.ItemTypes.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, itemType)
}

// Create handles POST /api/item-types
// @Summary Create item type
// @Tags ItemTypes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ItemTypeRequest true "Item type"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /item-types [post]
func (h *ItemTypeHandler) Create(c *fiber.Ctx) error {
	var req ItemTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	itemType, err := h.ItemTypes.Create(c.UserContext(), req.input())
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusCreated, "Item type created successfully", itemType)
}

// Update handles PUT /api/item-types/:id
// @Summary Replace item type
// @Tags ItemTypes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item type id"
// @Param body body ItemTypeRequest true "Item type"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /item-types/{id} [put]
func (h *ItemTypeHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "Item type")
	if err != nil {
		return err
	}
	var req ItemTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	itemType, err := h.ItemTypes.Update(c.UserContext(), id, req.input())
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Item type updated successfully", itemType)
}

// Delete handles DELETE /api/item-types/:id
// @Summary Delete item type
// @Description Refused while assets use the item type
// @Tags ItemTypes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item type id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /item-types/{id} [delete]
func (h *ItemTypeHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "Item type")
	if err != nil {
		return err
	}
	if err := h.ItemTypes.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Item type deleted successfully", nil)
}
