package services_test

import (
	"net/http"
	"testing"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/testutil"
	"github.com/Rustaman1280/tefacontoh/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryLifecycle(t *testing.T) {
	f := newFixture(t)

	category, err := f.svc.Categories.Create(f.ctx, services.CategoryInput{Name: "Elektronik", Description: strPtr("Perangkat listrik")})
	require.NoError(t, err)

	_, err = f.svc.Categories.Create(f.ctx, services.CategoryInput{Name: "Elektronik"})
	requireCustomError(t, err, http.StatusBadRequest, "Category name already exists")

	f.asset(t, services.AssetInput{Name: "TV", CategoryID: category.ID.Ptr()})
	f.asset(t, services.AssetInput{Name: "Radio", CategoryID: category.ID.Ptr()})

	items, total, err := f.svc.Categories.List(f.ctx, "elek", utils.NormalizePage(1, 10, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.EqualValues(t, 2, items[0].AssetCount)

	err = f.svc.Categories.Delete(f.ctx, category.ID)
	requireCustomError(t, err, http.StatusBadRequest, "Cannot delete category. 2 asset(s) are using this category.")

	updated, err := f.svc.Categories.Update(f.ctx, category.ID, services.CategoryInput{Name: "Elektronika"})
	require.NoError(t, err)
	assert.Equal(t, "Elektronika", updated.Name)
	assert.Nil(t, updated.Description)

	empty := testutil.CreateCategory(t, f.db, "Kosong")
	require.NoError(t, f.svc.Categories.Delete(f.ctx, empty.ID))
	_, err = f.svc.Categories.Get(f.ctx, empty.ID)
	requireCustomError(t, err, http.StatusNotFound, "Category not found")
}

func TestDepartmentLifecycle(t *testing.T) {
	f := newFixture(t)

	dept, err := f.svc.Departments.Create(f.ctx, services.DepartmentInput{Code: "TKJ", Name: "Teknik Komputer dan Jaringan"})
	require.NoError(t, err)
	assert.Equal(t, 1, dept.TotalClassesPerGrade)
	assert.Equal(t, 0, dept.TotalLabs)

	_, err = f.svc.Departments.Create(f.ctx, services.DepartmentInput{Code: "TKJ", Name: "Duplikat"})
	requireCustomError(t, err, http.StatusBadRequest, "Department code already exists")

	testutil.CreateDepartment(t, f.db, "AKL", "Akuntansi", 2, 1)
	list, err := f.svc.Departments.List(f.ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "AKL", list[0].Code)

	list, err = f.svc.Departments.List(f.ctx, "jaringan")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "TKJ", list[0].Code)

	testutil.CreateLocation(t, f.db, "Lab TKJ 1", "LAB-TKJ-1", models.MainGroupDepartment, models.LocationTypeLab, dept)
	err = f.svc.Departments.Delete(f.ctx, dept.ID)
	requireCustomError(t, err, http.StatusBadRequest, "Cannot delete department. 1 location(s) are linked to this department.")

	_, err = f.svc.Departments.Get(f.ctx, models.NewUUID())
	requireCustomError(t, err, http.StatusNotFound, "Department not found")
}

func TestDepartmentSummary(t *testing.T) {
	f := newFixture(t)
	dept := testutil.CreateDepartment(t, f.db, "MM", "Multimedia", 1, 1)
	lab := testutil.CreateLocation(t, f.db, "Lab MM 1", "LAB-MM-1", models.MainGroupDepartment, models.LocationTypeLab, dept)
	class := testutil.CreateLocation(t, f.db, "X MM 1", "KLS-X-MM-1", models.MainGroupClass, models.LocationTypeClassroom, dept)

	f.asset(t, services.AssetInput{Name: "Kamera", LocationID: lab.ID.Ptr(), QuantityGood: 2, QuantityDamaged: 1})
	f.asset(t, services.AssetInput{Name: "Meja", LocationID: class.ID.Ptr(), QuantityFair: 4})

	summary, err := f.svc.Departments.Summary(f.ctx, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Labs.Count)
	assert.Equal(t, services.AssetSummary{TotalGood: 2, TotalDamaged: 1, Total: 3}, summary.Labs.AssetSummary)
	assert.Equal(t, 1, summary.Classes.Count)
	assert.Equal(t, services.AssetSummary{TotalFair: 4, Total: 4}, summary.Classes.AssetSummary)
}

func TestItemTypeLifecycle(t *testing.T) {
	f := newFixture(t)

	pc, err := f.svc.ItemTypes.Create(f.ctx, services.ItemTypeInput{Name: "Komputer", ItemCategory: models.ItemCategoryDepartment})
	require.NoError(t, err)
	testutil.CreateItemType(t, f.db, "Meja Siswa", models.ItemCategoryClass)
	testutil.CreateItemType(t, f.db, "AC", models.ItemCategoryGeneral)

	grouped, err := f.svc.ItemTypes.Grouped(f.ctx)
	require.NoError(t, err)
	assert.Len(t, grouped.Department, 1)
	assert.Len(t, grouped.Class, 1)
	assert.Len(t, grouped.General, 1)

	list, err := f.svc.ItemTypes.List(f.ctx, "", models.ItemCategoryClass)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Meja Siswa", list[0].Name)

	f.asset(t, services.AssetInput{Name: "PC 01", ItemTypeID: pc.ID.Ptr()})
	err = f.svc.ItemTypes.Delete(f.ctx, pc.ID)
	requireCustomError(t, err, http.StatusBadRequest, "Cannot delete item type. 1 asset(s) are using this item type.")

	got, err := f.svc.ItemTypes.Get(f.ctx, pc.ID)
	require.NoError(t, err)
	assert.Len(t, got.Assets, 1)
}
