// assets.go
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

package handlers

import (
	"strings"
	"time"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/types"
	"github.com/Rustaman1280/tefacontoh/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// AssetRequest is the body of asset create and update.
type AssetRequest struct {
	Name            string            `json:"name" validate:"required,min=2,max=200"`
	Description     *string           `json:"description"`
	CategoryID      string            `json:"category_id"`
	ItemTypeID      string            `json:"item_type_id"`
	LocationID      string            `json:"location_id"`
	QuantityGood    *types.FlexInt    `json:"quantity_good" validate:"omitempty,min=0"`
	QuantityFair    *types.FlexInt    `json:"quantity_fair" validate:"omitempty,min=0"`
	QuantityDamaged *types.FlexInt    `json:"quantity_damaged" validate:"omitempty,min=0"`
	Condition       string            `json:"condition" validate:"omitempty,oneof=good fair damaged lost"`
	Location        *string           `json:"location" validate:"omitempty,max=200"`
	InventoryCode   *string           `json:"inventory_code" validate:"omitempty,max=50"`
	PurchaseDate    *string           `json:"purchase_date"`
	PurchasePrice   types.FlexDecimal `json:"purchase_price" swaggertype:"number"`
	ImageURL        *string           `json:"image_url" validate:"omitempty,max=500"`
	Notes           *string           `json:"notes"`
}

func (r *AssetRequest) input() (services.AssetInput, error) {
	in := services.AssetInput{
		Name:            strings.TrimSpace(r.Name),
		Description:     r.Description,
		QuantityGood:    types.IntOr(r.QuantityGood, 0),
		QuantityFair:    types.IntOr(r.QuantityFair, 0),
		QuantityDamaged: types.IntOr(r.QuantityDamaged, 0),
		Condition:       models.Condition(r.Condition),
		Location:        r.Location,
		InventoryCode:   trimmed(r.InventoryCode),
		ImageURL:        r.ImageURL,
		Notes:           r.Notes,
	}

	var err error
	if in.CategoryID, err = parseOptionalID(r.CategoryID, "category_id"); err != nil {
		return in, err
	}
	if in.ItemTypeID, err = parseOptionalID(r.ItemTypeID, "item_type_id"); err != nil {
		return in, err
	}
	if in.LocationID, err = parseOptionalID(r.LocationID, "location_id"); err != nil {
		return in, err
	}

	if d := trimmed(r.PurchaseDate); d != nil {
		t, err := parseDate(*d)
		if err != nil {
			return in, types.NewValidationError("purchase_date must be a date (YYYY-MM-DD)")
		}
		in.PurchaseDate = &t
	}
	if price := r.PurchasePrice.Ptr(); price != nil {
		if price.IsNegative() {
			return in, types.NewValidationError("purchase_price must be a non-negative number")
		}
		in.PurchasePrice = price
	}
	return in, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// AssetHandler serves /api/assets.
type AssetHandler struct {
	Assets *services.AssetService
}

// List handles GET /api/assets
// @Summary List assets
// @Description Paginated asset list with search, filters and sorting
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive match on name or description"
// @Param category query string false "Category id"
// @Param condition query string false "good, fair, damaged or lost"
// @Param main_group query string false "school, department or class"
// @Param location_id query string false "Location id"
// @Param item_type_id query string false "Item type id"
// @Param department_id query string false "Department id"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param sortBy query string false "Sort column" default(created_at)
// @Param order query string false "ASC or DESC" default(DESC)
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	f := services.AssetFilter{
		Search:    c.Query("search"),
		Condition: models.Condition(c.Query("condition")),
		MainGroup: models.MainGroup(c.Query("main_group")),
		Page:      utils.ParsePageParams(c, 10),
		SortBy:    c.Query("sortBy"),
		Order:     c.Query("order"),
	}

	var err error
	if f.CategoryID, err = parseOptionalID(c.Query("category"), "category"); err != nil {
		return err
	}
	if f.LocationID, err = parseOptionalID(c.Query("location_id"), "location_id"); err != nil {
		return err
	}
	if f.ItemTypeID, err = parseOptionalID(c.Query("item_type_id"), "item_type_id"); err != nil {
		return err
	}
	if f.DepartmentID, err = parseOptionalID(c.Query("department_id"), "department_id"); err != nil {
		return err
	}

	assets, total, err := h.Assets.List(c.UserContext(), f)
	if err != nil {
		return err
	}
	return utils.PaginatedResponse(c, assets, utils.NewPagination(total, f.Page))
}

// Get handles GET /api/assets/:id
// @Summary Get asset
// @Description Asset with category, item type, location, creator and its 10 latest logs
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Asset id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /assets/{id} [get]
func (h *AssetHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "Asset")
	if err != nil {
		return err
	}
	asset, err := h.Assets.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, asset)
}

// Create handles POST /api/assets
// @Summary Create asset
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AssetRequest true "Asset"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}

	var req AssetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}

	asset, err := h.Assets.Create(c.UserContext(), a, in)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusCreated, "Asset created successfully", asset)
}

// Update handles PUT /api/assets/:id
// @Summary Replace asset
// @Description Overwrites every field; omitted optional fields are cleared
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Asset id"
// @Param body body AssetRequest true "Asset"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /assets/{id} [put]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "Asset")
	if err != nil {
		return err
	}

	var req AssetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}

	asset, err := h.Assets.Update(c.UserContext(), a, id, in)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Asset updated successfully", asset)
}

// Delete handles DELETE /api/assets/:id
// @Summary Delete asset
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Asset id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /assets/{id} [delete]
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "Asset")
	if err != nil {
		return err
	}

	if err := h.Assets.Delete(c.UserContext(), a, id); err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Asset deleted successfully", nil)
}

// Logs handles GET /api/assets/:id/logs
// @Summary Asset audit trail
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Asset id"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /assets/{id}/logs [get]
func (h *AssetHandler) Logs(c *fiber.Ctx) error {
	id, err := parseID(c, "Asset")
	if err != nil {
		return err
	}

	page := utils.ParsePageParams(c, 20)
	logs, total, err := h.Assets.Logs(c.UserContext(), id, page)
	if err != nil {
		return err
	}
	return utils.PaginatedResponse(c, logs, utils.NewPagination(total, page))
}
