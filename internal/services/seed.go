package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedOptions configures the initial admin account.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
}

type seedDepartment struct {
	Code                 string `json:"code"`
	Name                 string `json:"name"`
	TotalClassesPerGrade int    `json:"total_classes_per_grade"`
	TotalLabs            int    `json:"total_labs"`
}

type seedItemType struct {
	Name         string              `json:"name"`
	ItemCategory models.ItemCategory `json:"item_category"`
	Description  string              `json:"description"`
}

type seedAsset struct {
	Name            string              `json:"name"`
	InventoryCode   string              `json:"inventory_code"`
	LocationCode    string              `json:"location_code"`
	ItemType        string              `json:"item_type"`
	ItemCategory    models.ItemCategory `json:"item_category"`
	QuantityGood    int                 `json:"quantity_good"`
	QuantityFair    int                 `json:"quantity_fair"`
	QuantityDamaged int                 `json:"quantity_damaged"`
}

// Seeder loads fixture data. Every step is find-or-create.
type Seeder struct {
	svc      *Services
	db       *gorm.DB
	fixtures fs.FS
	log      *zap.Logger
}

// NewSeeder reads fixtures from fsys (departments.json, rooms.json,
// item_types.json, assets.json at its root).
func NewSeeder(svc *Services, db *gorm.DB, fsys fs.FS, log *zap.Logger) *Seeder {
	return &Seeder{svc: svc, db: db, fixtures: fsys, log: log.Named("seed")}
}

func (s *Seeder) load(name string, v interface{}) error {
	raw, err := fs.ReadFile(s.fixtures, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// firstOrCreate finds a row of dst's type matching where, creating dst when
// none exists. It reports whether a row was created.
func firstOrCreate(ctx context.Context, db *gorm.DB, dst interface{}, where map[string]interface{}) (bool, error) {
	err := db.WithContext(ctx).Where(where).First(dst).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := db.WithContext(ctx).Create(dst).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Run seeds users, departments, item types, rooms, labs, classes and a few
// sample assets.
func (s *Seeder) Run(ctx context.Context, opts SeedOptions) error {
	admin, err := s.seedAdmin(ctx, opts)
	if err != nil {
		return err
	}

	var departments []seedDepartment
	if err := s.load("departments.json", &departments); err != nil {
		return err
	}
	for _, d := range departments {
		dept := &models.Department{Code: d.Code, Name: d.Name, TotalClassesPerGrade: d.TotalClassesPerGrade, TotalLabs: d.TotalLabs}
		created, err := firstOrCreate(ctx, s.db, dept, map[string]interface{}{"code": d.Code})
		if err != nil {
			return fmt.Errorf("seed department %s: %w", d.Code, err)
		}

		res, err := s.svc.Locations.BulkProvision(ctx, BulkRequest{DepartmentID: dept.ID, CreateLabs: true, CreateClasses: true})
		if err != nil {
			return fmt.Errorf("provision %s: %w", d.Code, err)
		}
		s.log.Info("department", zap.String("code", d.Code), zap.Bool("created", created), zap.Int("locations_created", res.Created))
	}

	var itemTypes []seedItemType
	if err := s.load("item_types.json", &itemTypes); err != nil {
		return err
	}
	for _, t := range itemTypes {
		desc := t.Description
		it := &models.ItemType{Name: t.Name, ItemCategory: t.ItemCategory, Description: &desc}
		if _, err := firstOrCreate(ctx, s.db, it, map[string]interface{}{"name": t.Name, "item_category": t.ItemCategory}); err != nil {
			return fmt.Errorf("seed item type %s: %w", t.Name, err)
		}
	}
	s.log.Info("item types", zap.Int("count", len(itemTypes)))

	var rooms []string
	if err := s.load("rooms.json", &rooms); err != nil {
		return err
	}
	for i, name := range rooms {
		code := fmt.Sprintf("%s-%03d", models.LocationTypeRoom.CodePrefix(), i+1)
		desc := "Room " + name
		room := &models.Location{
			Name:         name,
			MainGroup:    models.MainGroupSchool,
			LocationType: models.LocationTypeRoom,
			Code:         &code,
			Description:  &desc,
		}
		if _, err := firstOrCreate(ctx, s.db, room, map[string]interface{}{"code": code}); err != nil {
			return fmt.Errorf("seed room %s: %w", code, err)
		}
	}
	s.log.Info("school rooms", zap.Int("count", len(rooms)))

	return s.seedAssets(ctx, admin)
}

func (s *Seeder) seedAdmin(ctx context.Context, opts SeedOptions) (*models.User, error) {
	var admin models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(opts.AdminEmail)).First(&admin).Error
	if err == nil {
		return &admin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	res, err := s.svc.Users.Register(ctx, RegisterInput{
		Name:     "Administrator",
		Email:    opts.AdminEmail,
		Password: opts.AdminPassword,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	s.log.Info("admin user created", zap.String("email", res.User.Email))
	return res.User, nil
}

func (s *Seeder) seedAssets(ctx context.Context, admin *models.User) error {
	desc := "General inventory"
	category := &models.Category{Name: "Umum", Description: &desc}
	if _, err := firstOrCreate(ctx, s.db, category, map[string]interface{}{"name": category.Name}); err != nil {
		return fmt.Errorf("seed category: %w", err)
	}

	var assets []seedAsset
	if err := s.load("assets.json", &assets); err != nil {
		return err
	}

	actor := ActorFromUser(admin)
	for _, a := range assets {
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.Asset{}).Where("inventory_code = ?", a.InventoryCode).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}

		var location models.Location
		if err := s.db.WithContext(ctx).Where("code = ?", a.LocationCode).First(&location).Error; err != nil {
			return fmt.Errorf("seed asset %s: location %s: %w", a.InventoryCode, a.LocationCode, err)
		}
		var itemType models.ItemType
		err := s.db.WithContext(ctx).Where("name = ? AND item_category = ?", a.ItemType, a.ItemCategory).First(&itemType).Error
		if err != nil {
			return fmt.Errorf("seed asset %s: item type %s: %w", a.InventoryCode, a.ItemType, err)
		}

		code := a.InventoryCode
		_, err = s.svc.Assets.Create(ctx, actor, AssetInput{
			Name:            a.Name,
			CategoryID:      category.ID.Ptr(),
			ItemTypeID:      itemType.ID.Ptr(),
			LocationID:      location.ID.Ptr(),
			QuantityGood:    a.QuantityGood,
			QuantityFair:    a.QuantityFair,
			QuantityDamaged: a.QuantityDamaged,
			Condition:       models.ConditionGood,
			InventoryCode:   &code,
		})
		if err != nil {
			return fmt.Errorf("seed asset %s: %w", a.InventoryCode, err)
		}
	}
	s.log.Info("sample assets", zap.Int("count", len(assets)))
	return nil
}
