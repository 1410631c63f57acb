package services

import (
	"context"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/types"
	"gorm.io/gorm"
)

// DepartmentInput is the writable state of a department. Nil counts fall
// back to one class per grade and no labs.
type DepartmentInput struct {
	Code                 string
	Name                 string
	TotalClassesPerGrade *int
	TotalLabs            *int
	Description          *string
}

func (in DepartmentInput) apply(d *models.Department) {
	d.Code = in.Code
	d.Name = in.Name
	d.TotalClassesPerGrade = 1
	if in.TotalClassesPerGrade != nil {
		d.TotalClassesPerGrade = *in.TotalClassesPerGrade
	}
	d.TotalLabs = 0
	if in.TotalLabs != nil {
		d.TotalLabs = *in.TotalLabs
	}
	d.Description = in.Description
}

// LocationGroup is one kind of department location with its asset totals.
type LocationGroup struct {
	Count        int               `json:"count"`
	Locations    []models.Location `json:"locations"`
	AssetSummary AssetSummary      `json:"assetSummary"`
}

// DepartmentSummary splits a department's locations into labs and classes.
type DepartmentSummary struct {
	Department *models.Department `json:"department"`
	Labs       LocationGroup      `json:"labs"`
	Classes    LocationGroup      `json:"classes"`
}

// DepartmentService manages departments.
type DepartmentService struct {
	db  *gorm.DB
	inv *invalidator
}

// List returns departments ordered by code, searching code and name.
func (s *DepartmentService) List(ctx context.Context, search string) ([]models.Department, error) {
	q := s.db.WithContext(ctx).Preload("Locations", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	})
	if search != "" {
		like := containsPattern(search)
		q = q.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	departments := make([]models.Department, 0)
	if err := q.Order("code ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// Get loads a department with its locations and their assets.
func (s *DepartmentService) Get(ctx context.Context, id models.UUID) (*models.Department, error) {
	var department models.Department
	err := s.db.WithContext(ctx).
		Preload("Locations", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Preload("Locations.Assets").
		Where("id = ?", id).
		First(&department).Error
	if err != nil {
		return nil, notFound(err, "Department")
	}
	return &department, nil
}

func (s *DepartmentService) find(ctx context.Context, id models.UUID) (*models.Department, error) {
	var department models.Department
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&department).Error; err != nil {
		return nil, notFound(err, "Department")
	}
	return &department, nil
}

func (s *DepartmentService) Create(ctx context.Context, in DepartmentInput) (*models.Department, error) {
	department := &models.Department{}
	in.apply(department)
	if err := s.db.WithContext(ctx).Create(department).Error; err != nil {
		return nil, writeError(err, "Department code already exists")
	}
	s.inv.stats(ctx)
	return department, nil
}

func (s *DepartmentService) Update(ctx context.Context, id models.UUID, in DepartmentInput) (*models.Department, error) {
	department, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	in.apply(department)
	if err := s.db.WithContext(ctx).Save(department).Error; err != nil {
		return nil, writeError(err, "Department code already exists")
	}
	s.inv.stats(ctx)
	return department, nil
}

// Delete removes the department unless locations still reference it.
func (s *DepartmentService) Delete(ctx context.Context, id models.UUID) error {
	department, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	n, err := countWhere(ctx, s.db, &models.Location{}, "department_id", department.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return types.NewDependencyError("Cannot delete department. %d location(s) are linked to this department.", n)
	}

	if err := s.db.WithContext(ctx).Delete(department).Error; err != nil {
		return err
	}
	s.inv.stats(ctx)
	return nil
}

// Summary reports the department's labs and classes with asset totals.
func (s *DepartmentService) Summary(ctx context.Context, id models.UUID) (*DepartmentSummary, error) {
	department, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	labs, err := s.locationsOfType(ctx, department.ID, models.LocationTypeLab)
	if err != nil {
		return nil, err
	}
	classes, err := s.locationsOfType(ctx, department.ID, models.LocationTypeClassroom)
	if err != nil {
		return nil, err
	}

	return &DepartmentSummary{
		Department: department,
		Labs:       newLocationGroup(labs),
		Classes:    newLocationGroup(classes),
	}, nil
}

func (s *DepartmentService) locationsOfType(ctx context.Context, departmentID models.UUID, t models.LocationType) ([]models.Location, error) {
	locations := make([]models.Location, 0)
	err := s.db.WithContext(ctx).
		Preload("Assets").
		Where("department_id = ? AND location_type = ?", departmentID, t).
		Order("name ASC").
		Find(&locations).Error
	return locations, err
}

func newLocationGroup(locations []models.Location) LocationGroup {
	var sum AssetSummary
	for _, l := range locations {
		sum.add(l.Assets)
	}
	return LocationGroup{Count: len(locations), Locations: locations, AssetSummary: sum}
}
