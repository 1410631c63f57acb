package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/types"
	"gorm.io/gorm"
)

// BulkRequest selects which standard locations to provision for a department.
type BulkRequest struct {
	DepartmentID  models.UUID
	CreateLabs    bool
	CreateClasses bool
}

// BulkResult lists the department's provisioned locations and how many of
// them this call created.
type BulkResult struct {
	Department *models.Department
	Created    int
	Locations  []models.Location
}

// Message is the human-readable outcome of a bulk provision.
func (r *BulkResult) Message() string {
	return fmt.Sprintf("Created %d locations for %s", r.Created, r.Department.Name)
}

// standardLocations returns the canonical labs and classrooms of d.
func standardLocations(d *models.Department, labs, classes bool) []models.Location {
	var out []models.Location
	if labs {
		for i := 1; i <= d.TotalLabs; i++ {
			seq := i
			code := fmt.Sprintf("LAB-%s-%d", d.Code, i)
			out = append(out, models.Location{
				Name:           fmt.Sprintf("Lab %s %d", d.Code, i),
				MainGroup:      models.MainGroupDepartment,
				LocationType:   models.LocationTypeLab,
				DepartmentID:   d.ID.Ptr(),
				SequenceNumber: &seq,
				Code:           &code,
			})
		}
	}
	if classes {
		for _, grade := range models.GradeLevels {
			for i := 1; i <= d.TotalClassesPerGrade; i++ {
				seq := i
				g := grade
				code := fmt.Sprintf("KLS-%s-%s-%d", grade, d.Code, i)
				out = append(out, models.Location{
					Name:           fmt.Sprintf("%s %s %d", grade, d.Code, i),
					MainGroup:      models.MainGroupClass,
					LocationType:   models.LocationTypeClassroom,
					DepartmentID:   d.ID.Ptr(),
					GradeLevel:     &g,
					SequenceNumber: &seq,
					Code:           &code,
				})
			}
		}
	}
	return out
}

// BulkProvision creates the department's standard labs and classrooms.
// Locations whose code already exists are left untouched, so repeated calls
// converge on the same set.
func (s *LocationService) BulkProvision(ctx context.Context, req BulkRequest) (*BulkResult, error) {
	var department models.Department
	if err := s.db.WithContext(ctx).Where("id = ?", req.DepartmentID).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewValidationError("Department not found")
		}
		return nil, err
	}

	result := &BulkResult{Department: &department, Locations: make([]models.Location, 0)}
	for _, want := range standardLocations(&department, req.CreateLabs, req.CreateClasses) {
		loc, created, err := s.findOrCreateByCode(ctx, want)
		if err != nil {
			return nil, err
		}
		if created {
			result.Created++
		}
		result.Locations = append(result.Locations, *loc)
	}

	if result.Created > 0 {
		s.inv.stats(ctx)
	}
	return result, nil
}

func (s *LocationService) findOrCreateByCode(ctx context.Context, want models.Location) (*models.Location, bool, error) {
	var existing models.Location
	err := s.db.WithContext(ctx).Where("code = ?", *want.Code).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if err := s.db.WithContext(ctx).Create(&want).Error; err != nil {
		return nil, false, err
	}
	return &want, true, nil
}
