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

package services

import (
	"context"
	"time"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recentLogLimit is how many logs a single asset read carries.
const recentLogLimit = 10

// assetSortColumns whitelists the columns a list may be ordered by.
var assetSortColumns = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"quantity":       true,
	"condition":      true,
	"inventory_code": true,
	"purchase_date":  true,
	"purchase_price": true,
}

// AssetInput is the full writable state of an asset. Create and update both
// replace every field with the values given here.
type AssetInput struct {
	Name            string
	Description     *string
	CategoryID      *models.UUID
	ItemTypeID      *models.UUID
	LocationID      *models.UUID
	QuantityGood    int
	QuantityFair    int
	QuantityDamaged int
	Condition       models.Condition
	Location        *string
	InventoryCode   *string
	PurchaseDate    *time.Time
	PurchasePrice   *decimal.Decimal
	ImageURL        *string
	Notes           *string
}

func (in AssetInput) apply(a *models.Asset) {
	a.Name = in.Name
	a.Description = in.Description
	a.CategoryID = in.CategoryID
	a.ItemTypeID = in.ItemTypeID
	a.LocationID = in.LocationID
	a.QuantityGood = in.QuantityGood
	a.QuantityFair = in.QuantityFair
	a.QuantityDamaged = in.QuantityDamaged
	a.Condition = in.Condition
	a.Location = in.Location
	a.InventoryCode = blankToNil(in.InventoryCode)
	a.ImageURL = in.ImageURL
	a.Notes = in.Notes

	a.PurchaseDate = nil
	if in.PurchaseDate != nil {
		d := datatypes.Date(*in.PurchaseDate)
		a.PurchaseDate = &d
	}
	a.PurchasePrice = decimal.NullDecimal{}
	if in.PurchasePrice != nil {
		a.PurchasePrice = decimal.NewNullDecimal(*in.PurchasePrice)
	}
}

// AssetFilter selects and orders an asset list.
type AssetFilter struct {
	Search       string
	CategoryID   *models.UUID
	Condition    models.Condition
	LocationID   *models.UUID
	ItemTypeID   *models.UUID
	MainGroup    models.MainGroup
	DepartmentID *models.UUID
	Page         utils.PageParams
	SortBy       string
	Order        string
}

// AssetService manages assets and records their audit trail.
type AssetService struct {
	db    *gorm.DB
	audit *AuditLogger
	inv   *invalidator
}

func (s *AssetService) filtered(ctx context.Context, f AssetFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Asset{})

	if f.Search != "" {
		like := containsPattern(f.Search)
		q = q.Where("(LOWER(assets.name) LIKE ? OR LOWER(assets.description) LIKE ?)", like, like)
	}
	if f.CategoryID != nil {
		q = q.Where("assets.category_id = ?", *f.CategoryID)
	}
	if f.Condition != "" {
		q = q.Where(clause.Eq{Column: clause.Column{Table: "assets", Name: "condition"}, Value: f.Condition})
	}
	if f.LocationID != nil {
		q = q.Where("assets.location_id = ?", *f.LocationID)
	}
	if f.ItemTypeID != nil {
		q = q.Where("assets.item_type_id = ?", *f.ItemTypeID)
	}
	if f.MainGroup != "" || f.DepartmentID != nil {
		q = q.Joins("INNER JOIN locations ON locations.id = assets.location_id")
		if f.MainGroup != "" {
			q = q.Where("locations.main_group = ?", f.MainGroup)
		}
		if f.DepartmentID != nil {
			q = q.Where("locations.department_id = ?", *f.DepartmentID)
		}
	}
	return q
}

func assetOrder(f AssetFilter) clause.OrderByColumn {
	col := f.SortBy
	if !assetSortColumns[col] {
		col = "created_at"
	}
	desc := true
	if f.Order == "asc" || f.Order == "ASC" {
		desc = false
	}
	return clause.OrderByColumn{Column: clause.Column{Table: "assets", Name: col}, Desc: desc}
}

// List returns one page of assets matching f and the total match count.
func (s *AssetService) List(ctx context.Context, f AssetFilter) ([]models.Asset, int64, error) {
	var total int64
	if err := s.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	assets := make([]models.Asset, 0, f.Page.Limit)
	err := s.filtered(ctx, f).
		Select("assets.*").
		Preload("Category").
		Preload("Creator").
		Preload("LocationDetail.Department").
		Preload("ItemType").
		Order(assetOrder(f)).
		Limit(f.Page.Limit).
		Offset(f.Page.Offset()).
		Find(&assets).Error
	if err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}

// Get loads an asset with its relations and latest logs.
func (s *AssetService) Get(ctx context.Context, id models.UUID) (*models.Asset, error) {
	var asset models.Asset
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("ItemType").
		Preload("LocationDetail.Department").
		Preload("Creator").
		Preload("Logs", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(recentLogLimit)
		}).
		Preload("Logs.User").
		Where("id = ?", id).
		First(&asset).Error
	if err != nil {
		return nil, notFound(err, "Asset")
	}
	return &asset, nil
}

func (s *AssetService) find(ctx context.Context, id models.UUID) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, notFound(err, "Asset")
	}
	return &asset, nil
}

func (s *AssetService) checkRefs(ctx context.Context, in AssetInput) error {
	if err := requireRef(ctx, s.db, &models.Category{}, in.CategoryID, "Category"); err != nil {
		return err
	}
	if err := requireRef(ctx, s.db, &models.ItemType{}, in.ItemTypeID, "Item type"); err != nil {
		return err
	}
	return requireRef(ctx, s.db, &models.Location{}, in.LocationID, "Location")
}

// Create validates references, stores the asset and writes its create log.
func (s *AssetService) Create(ctx context.Context, actor Actor, in AssetInput) (*models.Asset, error) {
	if err := s.checkRefs(ctx, in); err != nil {
		return nil, err
	}

	asset := &models.Asset{CreatedBy: actor.UserID}
	in.apply(asset)
	asset.Normalize()

	if err := s.db.WithContext(ctx).Create(asset).Error; err != nil {
		return nil, writeError(err, "Inventory code already exists")
	}

	if err := s.audit.Record(ctx, actor, asset.ID, models.ActionCreate, CreatedChanges{Created: asset.Snapshot()}); err != nil {
		return nil, err
	}
	s.inv.stats(ctx)
	return s.Get(ctx, asset.ID)
}

// Update overwrites every writable field of the asset and logs before/after.
func (s *AssetService) Update(ctx context.Context, actor Actor, id models.UUID, in AssetInput) (*models.Asset, error) {
	asset, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, in); err != nil {
		return nil, err
	}

	before := asset.Snapshot()
	in.apply(asset)
	asset.Normalize()

	if err := s.db.WithContext(ctx).Save(asset).Error; err != nil {
		return nil, writeError(err, "Inventory code already exists")
	}

	changes := UpdatedChanges{Before: before, After: asset.Snapshot()}
	if err := s.audit.Record(ctx, actor, asset.ID, models.ActionUpdate, changes); err != nil {
		return nil, err
	}
	s.inv.stats(ctx)
	return s.Get(ctx, asset.ID)
}

// Delete writes the delete log and then removes the asset.
func (s *AssetService) Delete(ctx context.Context, actor Actor, id models.UUID) error {
	asset, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.audit.Record(ctx, actor, asset.ID, models.ActionDelete, DeletedChanges{Deleted: asset.Snapshot()}); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Where("id = ?", asset.ID).Delete(&models.Asset{}).Error; err != nil {
		return err
	}
	s.inv.stats(ctx)
	return nil
}

// Logs returns one page of the asset's audit trail.
func (s *AssetService) Logs(ctx context.Context, id models.UUID, page utils.PageParams) ([]models.TransactionLog, int64, error) {
	return s.audit.List(ctx, id, page)
}
