package services_test

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var labCode = regexp.MustCompile(`^LAB-\d{3}$`)

func TestLocationCreateGeneratesCode(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Locations.Create(f.ctx, services.LocationInput{
		Name:         "Lab Bahasa",
		MainGroup:    models.MainGroupSchool,
		LocationType: models.LocationTypeLab,
	})
	require.NoError(t, err)
	require.NotNil(t, first.Code)
	assert.Regexp(t, labCode, *first.Code)
	assert.Equal(t, "LAB-001", *first.Code)

	// LAB-003 is taken by hand, so the next generated code skips it.
	testutil.CreateLocation(t, f.db, "Lab Fisika", "LAB-003", models.MainGroupSchool, models.LocationTypeLab, nil)
	second, err := f.svc.Locations.Create(f.ctx, services.LocationInput{
		Name:         "Lab Kimia",
		MainGroup:    models.MainGroupSchool,
		LocationType: models.LocationTypeLab,
	})
	require.NoError(t, err)
	assert.Regexp(t, labCode, *second.Code)
	assert.NotEqual(t, *first.Code, *second.Code)
	assert.Equal(t, "LAB-004", *second.Code)

	room, err := f.svc.Locations.Create(f.ctx, services.LocationInput{
		Name:         "Aula",
		MainGroup:    models.MainGroupSchool,
		LocationType: models.LocationTypeRoom,
		Code:         strPtr("AULA"),
	})
	require.NoError(t, err)
	assert.Equal(t, "AULA", *room.Code)

	_, err = f.svc.Locations.Create(f.ctx, services.LocationInput{
		Name:         "Aula 2",
		MainGroup:    models.MainGroupSchool,
		LocationType: models.LocationTypeRoom,
		Code:         strPtr("AULA"),
	})
	requireCustomError(t, err, http.StatusBadRequest, "Location code already exists")
}

func TestLocationCreateValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Locations.Create(f.ctx, services.LocationInput{
		Name:         "X ?",
		MainGroup:    models.MainGroupClass,
		LocationType: models.LocationTypeClassroom,
	})
	requireCustomError(t, err, http.StatusBadRequest, "grade_level is required for classrooms")

	missing := models.NewUUID()
	_, err = f.svc.Locations.Create(f.ctx, services.LocationInput{
		Name:         "Lab ?",
		MainGroup:    models.MainGroupDepartment,
		LocationType: models.LocationTypeLab,
		DepartmentID: &missing,
	})
	requireCustomError(t, err, http.StatusBadRequest, "Department not found")
}

func TestLocationUpdateKeepsCode(t *testing.T) {
	f := newFixture(t)
	loc := testutil.CreateLocation(t, f.db, "Gudang", "RNG-010", models.MainGroupSchool, models.LocationTypeRoom, nil)

	updated, err := f.svc.Locations.Update(f.ctx, loc.ID, services.LocationInput{
		Name:         "Gudang Utama",
		MainGroup:    models.MainGroupSchool,
		LocationType: models.LocationTypeRoom,
		Code:         strPtr(""),
		Capacity:     intPtr(40),
	})
	require.NoError(t, err)
	assert.Equal(t, "Gudang Utama", updated.Name)
	require.NotNil(t, updated.Code)
	assert.Equal(t, "RNG-010", *updated.Code)
	require.NotNil(t, updated.Capacity)
	assert.Equal(t, 40, *updated.Capacity)
}

func TestLocationDetailAndDelete(t *testing.T) {
	f := newFixture(t)
	loc := testutil.CreateLocation(t, f.db, "Perpustakaan", "RNG-001", models.MainGroupSchool, models.LocationTypeRoom, nil)
	f.asset(t, services.AssetInput{Name: "Rak", LocationID: loc.ID.Ptr(), QuantityGood: 3, QuantityFair: 1})

	detail, err := f.svc.Locations.Get(f.ctx, loc.ID)
	require.NoError(t, err)
	require.Len(t, detail.Assets, 1)
	assert.Equal(t, services.AssetSummary{TotalGood: 3, TotalFair: 1, Total: 4}, detail.AssetSummary)

	err = f.svc.Locations.Delete(f.ctx, loc.ID)
	requireCustomError(t, err, http.StatusBadRequest, "Cannot delete location. 1 asset(s) are in this location.")

	empty := testutil.CreateLocation(t, f.db, "Kantin", "RNG-002", models.MainGroupSchool, models.LocationTypeRoom, nil)
	require.NoError(t, f.svc.Locations.Delete(f.ctx, empty.ID))
	_, err = f.svc.Locations.Get(f.ctx, empty.ID)
	requireCustomError(t, err, http.StatusNotFound, "Location not found")
}

func TestBulkProvision(t *testing.T) {
	f := newFixture(t)
	dept := testutil.CreateDepartment(t, f.db, "TKJ", "Teknik Komputer dan Jaringan", 3, 2)

	res, err := f.svc.Locations.BulkProvision(f.ctx, services.BulkRequest{DepartmentID: dept.ID, CreateLabs: true, CreateClasses: true})
	require.NoError(t, err)
	assert.Equal(t, 11, res.Created)
	assert.Len(t, res.Locations, 11)
	assert.Equal(t, "Created 11 locations for Teknik Komputer dan Jaringan", res.Message())

	labs, err := f.svc.Locations.List(f.ctx, services.LocationFilter{DepartmentID: dept.ID.Ptr(), LocationType: models.LocationTypeLab})
	require.NoError(t, err)
	assert.Len(t, labs, 2)
	for _, l := range labs {
		assert.Equal(t, models.MainGroupDepartment, l.MainGroup)
	}

	classes, err := f.svc.Locations.List(f.ctx, services.LocationFilter{DepartmentID: dept.ID.Ptr(), LocationType: models.LocationTypeClassroom})
	require.NoError(t, err)
	assert.Len(t, classes, 9)

	grade, err := f.svc.Locations.List(f.ctx, services.LocationFilter{GradeLevel: models.GradeXI})
	require.NoError(t, err)
	assert.Len(t, grade, 3)

	var codes []string
	require.NoError(t, f.db.Model(&models.Location{}).Where("department_id = ?", dept.ID).Order("code").Pluck("code", &codes).Error)
	assert.Contains(t, codes, "LAB-TKJ-1")
	assert.Contains(t, codes, "LAB-TKJ-2")
	assert.Contains(t, codes, "KLS-XII-TKJ-3")

	again, err := f.svc.Locations.BulkProvision(f.ctx, services.BulkRequest{DepartmentID: dept.ID, CreateLabs: true, CreateClasses: true})
	require.NoError(t, err)
	assert.Zero(t, again.Created)
	assert.Len(t, again.Locations, 11)

	var n int64
	require.NoError(t, f.db.Model(&models.Location{}).Count(&n).Error)
	assert.EqualValues(t, 11, n)
}

func TestBulkProvisionFlags(t *testing.T) {
	f := newFixture(t)
	dept := testutil.CreateDepartment(t, f.db, "AKL", "Akuntansi", 2, 3)

	res, err := f.svc.Locations.BulkProvision(f.ctx, services.BulkRequest{DepartmentID: dept.ID, CreateLabs: true})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)

	_, err = f.svc.Locations.BulkProvision(f.ctx, services.BulkRequest{DepartmentID: models.NewUUID(), CreateLabs: true})
	requireCustomError(t, err, http.StatusBadRequest, "Department not found")
}

func TestLocationsGrouped(t *testing.T) {
	f := newFixture(t)
	dept := testutil.CreateDepartment(t, f.db, "TKR", "Teknik Kendaraan Ringan", 1, 1)
	_, err := f.svc.Locations.BulkProvision(f.ctx, services.BulkRequest{DepartmentID: dept.ID, CreateLabs: true, CreateClasses: true})
	require.NoError(t, err)
	testutil.CreateLocation(t, f.db, "Aula", "RNG-001", models.MainGroupSchool, models.LocationTypeRoom, nil)
	testutil.CreateLocation(t, f.db, "Lab Umum", "LAB-001", models.MainGroupDepartment, models.LocationTypeLab, nil)

	grouped, err := f.svc.Locations.Grouped(f.ctx)
	require.NoError(t, err)

	assert.Len(t, grouped.School, 1)
	require.Contains(t, grouped.Department, "TKR")
	assert.Len(t, grouped.Department["TKR"].Labs, 1)
	require.Contains(t, grouped.Class, "TKR")
	assert.Len(t, grouped.Class["TKR"].Classes, 3)
	require.Contains(t, grouped.Department, "no-dept")
	assert.Nil(t, grouped.Department["no-dept"].Department)
}
