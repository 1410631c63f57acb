package services

import (
	"context"
	"fmt"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/types"
	"gorm.io/gorm"
)

// noDepartmentKey groups locations that have no department.
const noDepartmentKey = "no-dept"

// LocationInput is the writable state of a location.
type LocationInput struct {
	Name           string
	MainGroup      models.MainGroup
	LocationType   models.LocationType
	DepartmentID   *models.UUID
	GradeLevel     *models.GradeLevel
	SequenceNumber *int
	Code           *string
	Description    *string
	Capacity       *int
}

func (in LocationInput) apply(l *models.Location) {
	l.Name = in.Name
	l.MainGroup = in.MainGroup
	l.LocationType = in.LocationType
	l.DepartmentID = in.DepartmentID
	l.GradeLevel = in.GradeLevel
	l.SequenceNumber = in.SequenceNumber
	l.Description = in.Description
	l.Capacity = in.Capacity
}

// LocationFilter narrows a location list.
type LocationFilter struct {
	Search       string
	MainGroup    models.MainGroup
	LocationType models.LocationType
	DepartmentID *models.UUID
	GradeLevel   models.GradeLevel
}

// AssetSummary totals the condition buckets of a set of assets.
type AssetSummary struct {
	TotalGood    int `json:"totalGood"`
	TotalFair    int `json:"totalFair"`
	TotalDamaged int `json:"totalDamaged"`
	Total        int `json:"total"`
}

func (s *AssetSummary) add(assets []models.Asset) {
	for _, a := range assets {
		s.TotalGood += a.QuantityGood
		s.TotalFair += a.QuantityFair
		s.TotalDamaged += a.QuantityDamaged
	}
	s.Total = s.TotalGood + s.TotalFair + s.TotalDamaged
}

// LocationDetail is a location with the totals of the assets it holds.
type LocationDetail struct {
	*models.Location
	AssetSummary AssetSummary `json:"assetSummary"`
}

// DepartmentLocations is one department's entry in the grouped view.
type DepartmentLocations struct {
	Department *models.Department `json:"department"`
	Labs       []models.Location  `json:"labs"`
	Classes    []models.Location  `json:"classes"`
}

// GroupedLocations is the location tree keyed by main group and department code.
type GroupedLocations struct {
	School     []models.Location               `json:"school"`
	Department map[string]*DepartmentLocations `json:"department"`
	Class      map[string]*DepartmentLocations `json:"class"`
}

// LocationService manages locations.
type LocationService struct {
	db  *gorm.DB
	inv *invalidator
}

// List returns locations ordered by main group then name.
func (s *LocationService) List(ctx context.Context, f LocationFilter) ([]models.Location, error) {
	q := s.db.WithContext(ctx).Preload("Department")
	if f.Search != "" {
		like := containsPattern(f.Search)
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(code) LIKE ?)", like, like)
	}
	if f.MainGroup != "" {
		q = q.Where("main_group = ?", f.MainGroup)
	}
	if f.LocationType != "" {
		q = q.Where("location_type = ?", f.LocationType)
	}
	if f.DepartmentID != nil {
		q = q.Where("department_id = ?", *f.DepartmentID)
	}
	if f.GradeLevel != "" {
		q = q.Where("grade_level = ?", f.GradeLevel)
	}

	locations := make([]models.Location, 0)
	if err := q.Order("main_group ASC").Order("name ASC").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Grouped returns every location arranged by main group, with department
// and class locations further keyed by department code.
func (s *LocationService) Grouped(ctx context.Context) (*GroupedLocations, error) {
	var locations []models.Location
	err := s.db.WithContext(ctx).
		Preload("Department").
		Order("main_group ASC").Order("location_type ASC").Order("name ASC").
		Find(&locations).Error
	if err != nil {
		return nil, err
	}

	out := &GroupedLocations{
		School:     make([]models.Location, 0),
		Department: make(map[string]*DepartmentLocations),
		Class:      make(map[string]*DepartmentLocations),
	}
	for _, l := range locations {
		switch l.MainGroup {
		case models.MainGroupSchool:
			out.School = append(out.School, l)
		case models.MainGroupDepartment:
			groupByDepartment(out.Department, l)
		case models.MainGroupClass:
			groupByDepartment(out.Class, l)
		}
	}
	return out, nil
}

func groupByDepartment(groups map[string]*DepartmentLocations, l models.Location) {
	key := noDepartmentKey
	if l.Department != nil {
		key = l.Department.Code
	}
	g, ok := groups[key]
	if !ok {
		g = &DepartmentLocations{
			Department: l.Department,
			Labs:       make([]models.Location, 0),
			Classes:    make([]models.Location, 0),
		}
		groups[key] = g
	}
	switch l.LocationType {
	case models.LocationTypeLab:
		g.Labs = append(g.Labs, l)
	case models.LocationTypeClassroom:
		g.Classes = append(g.Classes, l)
	}
}

// Get loads a location with its department, assets and their totals.
func (s *LocationService) Get(ctx context.Context, id models.UUID) (*LocationDetail, error) {
	var location models.Location
	err := s.db.WithContext(ctx).
		Preload("Department").
		Preload("Assets.ItemType").
		Where("id = ?", id).
		First(&location).Error
	if err != nil {
		return nil, notFound(err, "Location")
	}

	detail := &LocationDetail{Location: &location}
	detail.AssetSummary.add(location.Assets)
	return detail, nil
}

func (s *LocationService) find(ctx context.Context, id models.UUID) (*models.Location, error) {
	var location models.Location
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&location).Error; err != nil {
		return nil, notFound(err, "Location")
	}
	return &location, nil
}

func (s *LocationService) validate(ctx context.Context, in LocationInput) error {
	if in.LocationType == models.LocationTypeClassroom && in.GradeLevel == nil {
		return types.NewValidationError("grade_level is required for classrooms")
	}
	return requireRef(ctx, s.db, &models.Department{}, in.DepartmentID, "Department")
}

// NextCode returns an unused code for a location of type t, numbered from
// one past the current count of that type.
func (s *LocationService) NextCode(ctx context.Context, t models.LocationType) (string, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Location{}).Where("location_type = ?", t).Count(&n).Error; err != nil {
		return "", err
	}

	for seq := n + 1; ; seq++ {
		code := fmt.Sprintf("%s-%03d", t.CodePrefix(), seq)
		var taken int64
		if err := s.db.WithContext(ctx).Model(&models.Location{}).Where("code = ?", code).Count(&taken).Error; err != nil {
			return "", err
		}
		if taken == 0 {
			return code, nil
		}
	}
}

func (s *LocationService) Create(ctx context.Context, in LocationInput) (*models.Location, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	location := &models.Location{}
	in.apply(location)
	location.Code = blankToNil(in.Code)
	if location.Code == nil {
		code, err := s.NextCode(ctx, in.LocationType)
		if err != nil {
			return nil, err
		}
		location.Code = &code
	}

	if err := s.db.WithContext(ctx).Create(location).Error; err != nil {
		return nil, writeError(err, "Location code already exists")
	}
	s.inv.stats(ctx)
	return s.withDepartment(ctx, location.ID)
}

// Update overwrites the location. An empty code keeps the current one.
func (s *LocationService) Update(ctx context.Context, id models.UUID, in LocationInput) (*models.Location, error) {
	location, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	in.apply(location)
	if code := blankToNil(in.Code); code != nil {
		location.Code = code
	}

	if err := s.db.WithContext(ctx).Save(location).Error; err != nil {
		return nil, writeError(err, "Location code already exists")
	}
	s.inv.stats(ctx)
	return s.withDepartment(ctx, location.ID)
}

func (s *LocationService) withDepartment(ctx context.Context, id models.UUID) (*models.Location, error) {
	var location models.Location
	if err := s.db.WithContext(ctx).Preload("Department").Where("id = ?", id).First(&location).Error; err != nil {
		return nil, notFound(err, "Location")
	}
	return &location, nil
}

// Delete removes the location unless it still holds assets.
func (s *LocationService) Delete(ctx context.Context, id models.UUID) error {
	location, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	n, err := countWhere(ctx, s.db, &models.Asset{}, "location_id", location.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return types.NewDependencyError("Cannot delete location. %d asset(s) are in this location.", n)
	}

	if err := s.db.WithContext(ctx).Delete(location).Error; err != nil {
		return err
	}
	s.inv.stats(ctx)
	return nil
}
