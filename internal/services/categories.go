package services

import (
	"context"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/types"
	"github.com/Rustaman1280/tefacontoh/internal/utils"
	"gorm.io/gorm"
)

// CategoryInput is the writable state of a category.
type CategoryInput struct {
	Name        string
	Description *string
}

// CategoryListItem is a category row with the number of assets using it.
type CategoryListItem struct {
	models.Category
	AssetCount int64 `json:"assetCount"`
}

// CategoryService manages asset categories.
type CategoryService struct {
	db  *gorm.DB
	inv *invalidator
}

// List returns a page of categories, newest first, optionally filtered by name.
func (s *CategoryService) List(ctx context.Context, search string, page utils.PageParams) ([]CategoryListItem, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Category{})
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", containsPattern(search))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []models.Category
	err := q.Order("created_at DESC").Limit(page.Limit).Offset(page.Offset()).Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}

	ids := make([]models.UUID, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	counts, err := countGrouped(ctx, s.db, &models.Asset{}, "category_id", ids)
	if err != nil {
		return nil, 0, err
	}

	items := make([]CategoryListItem, len(categories))
	for i, c := range categories {
		items[i] = CategoryListItem{Category: c, AssetCount: counts[c.ID]}
	}
	return items, total, nil
}

// Get loads a category with its assets.
func (s *CategoryService) Get(ctx context.Context, id models.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).Preload("Assets").Where("id = ?", id).First(&category).Error; err != nil {
		return nil, notFound(err, "Category")
	}
	return &category, nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	category := &models.Category{Name: in.Name, Description: in.Description}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, writeError(err, "Category name already exists")
	}
	s.inv.stats(ctx)
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id models.UUID, in CategoryInput) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, notFound(err, "Category")
	}

	category.Name = in.Name
	category.Description = in.Description
	if err := s.db.WithContext(ctx).Save(&category).Error; err != nil {
		return nil, writeError(err, "Category name already exists")
	}
	s.inv.stats(ctx)
	return &category, nil
}

// Delete removes the category unless assets still use it.
func (s *CategoryService) Delete(ctx context.Context, id models.UUID) error {
	var category models.Category
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return notFound(err, "Category")
	}

	n, err := countWhere(ctx, s.db, &models.Asset{}, "category_id", category.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return types.NewDependencyError("Cannot delete category. %d asset(s) are using this category.", n)
	}

	if err := s.db.WithContext(ctx).Delete(&category).Error; err != nil {
		return err
	}
	s.inv.stats(ctx)
	return nil
}

type groupCount struct {
	GroupKey models.UUID
	N        int64
}

// countGrouped counts rows of model per value of column, limited to ids.
func countGrouped(ctx context.Context, db *gorm.DB, model interface{}, column string, ids []models.UUID) (map[models.UUID]int64, error) {
	out := make(map[models.UUID]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []groupCount
	err := db.WithContext(ctx).Model(model).
		Select(column+" AS group_key, COUNT(*) AS n").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.GroupKey] = r.N
	}
	return out, nil
}
