package services

import (
	"context"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/types"
	"gorm.io/gorm"
)

// ItemTypeInput is the writable state of an item type.
type ItemTypeInput struct {
	Name         string
	ItemCategory models.ItemCategory
	Description  *string
	Icon         *string
}

func (in ItemTypeInput) apply(t *models.ItemType) {
	t.Name = in.Name
	t.ItemCategory = in.ItemCategory
	t.Description = in.Description
	t.Icon = in.Icon
}

// GroupedItemTypes partitions item types by item category.
type GroupedItemTypes struct {
	Department []models.ItemType `json:"department"`
	Class      []models.ItemType `json:"class"`
	General    []models.ItemType `json:"general"`
}

// ItemTypeService manages item types.
type ItemTypeService struct {
	db  *gorm.DB
	inv *invalidator
}

// List returns item types ordered by category then name.
func (s *ItemTypeService) List(ctx context.Context, search string, category models.ItemCategory) ([]models.ItemType, error) {
	q := s.db.WithContext(ctx)
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", containsPattern(search))
	}
	if category != "" {
		q = q.Where("item_category = ?", category)
	}

	itemTypes := make([]models.ItemType, 0)
	if err := q.Order("item_category ASC").Order("name ASC").Find(&itemTypes).Error; err != nil {
		return nil, err
	}
	return itemTypes, nil
}

func (s *ItemTypeService) Grouped(ctx context.Context) (*GroupedItemTypes, error) {
	var itemTypes []models.ItemType
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&itemTypes).Error; err != nil {
		return nil, err
	}

	out := &GroupedItemTypes{
		Department: make([]models.ItemType, 0),
		Class:      make([]models.ItemType, 0),
		General:    make([]models.ItemType, 0),
	}
	for _, t := range itemTypes {
		switch t.ItemCategory {
		case models.ItemCategoryDepartment:
			out.Department = append(out.Department, t)
		case models.ItemCategoryClass:
			out.Class = append(out.Class, t)
		case models.ItemCategoryGeneral:
			out.General = append(out.General, t)
		}
	}
	return out, nil
}

// Get loads an item type with its assets.
func (s *ItemTypeService) Get(ctx context.Context, id models.UUID) (*models.ItemType, error) {
	var itemType models.ItemType
	if err := s.db.WithContext(ctx).Preload("Assets").Where("id = ?", id).First(&itemType).Error; err != nil {
		return nil, notFound(err, "Item type")
	}
	return &itemType, nil
}

func (s *ItemTypeService) Create(ctx context.Context, in ItemTypeInput) (*models.ItemType, error) {
	itemType := &models.ItemType{}
	in.apply(itemType)
	if err := s.db.WithContext(ctx).Create(itemType).Error; err != nil {
		return nil, err
	}
	s.inv.stats(ctx)
	return itemType, nil
}

func (s *ItemTypeService) Update(ctx context.Context, id models.UUID, in ItemTypeInput) (*models.ItemType, error) {
	var itemType models.ItemType
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&itemType).Error; err != nil {
		return nil, notFound(err, "Item type")
	}

	in.apply(&itemType)
	if err := s.db.WithContext(ctx).Save(&itemType).Error; err != nil {
		return nil, err
	}
	s.inv.stats(ctx)
	return &itemType, nil
}

// Delete removes the item type unless assets still use it.
func (s *ItemTypeService) Delete(ctx context.Context, id models.UUID) error {
	var itemType models.ItemType
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&itemType).Error; err != nil {
		return notFound(err, "Item type")
	}

	n, err := countWhere(ctx, s.db, &models.Asset{}, "item_type_id", itemType.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return types.NewDependencyError("Cannot delete item type. %d asset(s) are using this item type.", n)
	}

	if err := s.db.WithContext(ctx).Delete(&itemType).Error; err != nil {
		return err
	}
	s.inv.stats(ctx)
	return nil
}
