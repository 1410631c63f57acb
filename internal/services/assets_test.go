package services_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/testutil"
	"github.com/Rustaman1280/tefacontoh/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetCreateComputesQuantityAndLogs(t *testing.T) {
	f := newFixture(t)
	category := testutil.CreateCategory(t, f.db, "Elektronik")
	price := decimal.RequireFromString("1500000.50")

	asset := f.asset(t, services.AssetInput{
		Name:            "Proyektor",
		CategoryID:      category.ID.Ptr(),
		QuantityGood:    2,
		QuantityFair:    1,
		QuantityDamaged: 1,
		InventoryCode:   strPtr("  INV-100 "),
		PurchasePrice:   &price,
	})

	assert.Equal(t, 4, asset.Quantity)
	assert.Equal(t, models.ConditionGood, asset.Condition)
	require.NotNil(t, asset.InventoryCode)
	assert.Equal(t, "INV-100", *asset.InventoryCode)
	require.NotNil(t, asset.Category)
	assert.Equal(t, "Elektronik", asset.Category.Name)
	assert.Equal(t, f.admin.UserID, asset.CreatedBy)
	require.Len(t, asset.Logs, 1)

	var logs []models.TransactionLog
	require.NoError(t, f.db.Where("asset_id = ? AND action = ?", asset.ID, models.ActionCreate).Find(&logs).Error)
	require.Len(t, logs, 1)

	var changes services.CreatedChanges
	require.NoError(t, logs[0].Changes.Decode(&changes))
	assert.Equal(t, asset.ID, changes.Created.ID)
	assert.Equal(t, "Proyektor", changes.Created.Name)
	assert.Equal(t, 4, changes.Created.Quantity)
	assert.Equal(t, f.admin.UserID, logs[0].UserID)
}

func TestAssetQuantityFloor(t *testing.T) {
	f := newFixture(t)

	asset := f.asset(t, services.AssetInput{Name: "Papan Tulis"})

	assert.Equal(t, 1, asset.Quantity)
	assert.Equal(t, 0, asset.QuantityGood+asset.QuantityFair+asset.QuantityDamaged)
}

func TestAssetCreateRejectsMissingReferences(t *testing.T) {
	f := newFixture(t)
	missing := models.NewUUID()

	cases := []struct {
		name    string
		in      services.AssetInput
		message string
	}{
		{"category", services.AssetInput{Name: "A", CategoryID: &missing}, "Category not found"},
		{"item type", services.AssetInput{Name: "A", ItemTypeID: &missing}, "Item type not found"},
		{"location", services.AssetInput{Name: "A", LocationID: &missing}, "Location not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Assets.Create(f.ctx, f.admin, tc.in)
			requireCustomError(t, err, http.StatusBadRequest, tc.message)
		})
	}

	var n int64
	require.NoError(t, f.db.Model(&models.Asset{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, f.db.Model(&models.TransactionLog{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestAssetDuplicateInventoryCode(t *testing.T) {
	f := newFixture(t)
	f.asset(t, services.AssetInput{Name: "Meja", InventoryCode: strPtr("INV-1")})

	_, err := f.svc.Assets.Create(f.ctx, f.admin, services.AssetInput{Name: "Kursi", InventoryCode: strPtr("INV-1")})
	requireCustomError(t, err, http.StatusBadRequest, "Inventory code already exists")
}

func TestAssetUpdateReplacesAndLogs(t *testing.T) {
	f := newFixture(t)
	category := testutil.CreateCategory(t, f.db, "Mebel")
	asset := f.asset(t, services.AssetInput{
		Name:         "Lemari",
		CategoryID:   category.ID.Ptr(),
		QuantityGood: 3,
		Notes:        strPtr("lantai 2"),
	})

	updated, err := f.svc.Assets.Update(f.ctx, f.admin, asset.ID, services.AssetInput{
		Name:            "Lemari Arsip",
		QuantityGood:    1,
		QuantityDamaged: 2,
		Condition:       models.ConditionDamaged,
	})
	require.NoError(t, err)

	assert.Equal(t, "Lemari Arsip", updated.Name)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, models.ConditionDamaged, updated.Condition)
	assert.Nil(t, updated.CategoryID, "omitted fields are cleared")
	assert.Nil(t, updated.Notes)

	var entry models.TransactionLog
	require.NoError(t, f.db.Where("asset_id = ? AND action = ?", asset.ID, models.ActionUpdate).First(&entry).Error)
	var changes services.UpdatedChanges
	require.NoError(t, entry.Changes.Decode(&changes))
	assert.Equal(t, "Lemari", changes.Before.Name)
	assert.Equal(t, "Lemari Arsip", changes.After.Name)
	assert.Equal(t, 3, changes.Before.QuantityGood)
	assert.Equal(t, 2, changes.After.QuantityDamaged)
}

func TestAssetUpdateMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Assets.Update(f.ctx, f.admin, models.NewUUID(), services.AssetInput{Name: "X"})
	requireCustomError(t, err, http.StatusNotFound, "Asset not found")
}

func TestAssetDeleteLogsSnapshotFirst(t *testing.T) {
	f := newFixture(t)
	asset := f.asset(t, services.AssetInput{Name: "Laptop", QuantityGood: 5, InventoryCode: strPtr("INV-9")})

	require.NoError(t, f.svc.Assets.Delete(f.ctx, f.admin, asset.ID))

	_, err := f.svc.Assets.Get(f.ctx, asset.ID)
	requireCustomError(t, err, http.StatusNotFound, "Asset not found")

	var logs []models.TransactionLog
	require.NoError(t, f.db.Where("asset_id = ?", asset.ID).Order("created_at ASC").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, models.ActionCreate, logs[0].Action)
	assert.Equal(t, models.ActionDelete, logs[1].Action)

	var changes services.DeletedChanges
	require.NoError(t, logs[1].Changes.Decode(&changes))
	assert.Equal(t, "Laptop", changes.Deleted.Name)
	assert.Equal(t, 5, changes.Deleted.Quantity)
	require.NotNil(t, changes.Deleted.InventoryCode)
	assert.Equal(t, "INV-9", *changes.Deleted.InventoryCode)

	err = f.svc.Assets.Delete(f.ctx, f.admin, asset.ID)
	requireCustomError(t, err, http.StatusNotFound, "Asset not found")
}

func TestAssetListPagination(t *testing.T) {
	f := newFixture(t)
	for i := 1; i <= 15; i++ {
		f.asset(t, services.AssetInput{Name: fmt.Sprintf("Kursi %02d", i)})
	}

	page := utils.NormalizePage(2, 10, 10)
	assets, total, err := f.svc.Assets.List(f.ctx, services.AssetFilter{Page: page, SortBy: "name", Order: "asc"})
	require.NoError(t, err)

	assert.EqualValues(t, 15, total)
	require.Len(t, assets, 5)
	assert.Equal(t, "Kursi 11", assets[0].Name)
	assert.Equal(t, 2, utils.NewPagination(total, page).TotalPages)
}

func TestAssetListCaseInsensitiveSearch(t *testing.T) {
	f := newFixture(t)
	f.asset(t, services.AssetInput{Name: "Komputer Desktop"})
	f.asset(t, services.AssetInput{Name: "Printer", Description: strPtr("Printer untuk komputer guru")})
	f.asset(t, services.AssetInput{Name: "Meja"})

	for term, want := range map[string]int64{"komputer": 2, "DESKTOP": 1, "meja": 1, "proyektor": 0} {
		t.Run(term, func(t *testing.T) {
			_, total, err := f.svc.Assets.List(f.ctx, services.AssetFilter{Search: term, Page: utils.NormalizePage(1, 10, 10)})
			require.NoError(t, err)
			assert.Equal(t, want, total)
		})
	}
}

func TestAssetListFilters(t *testing.T) {
	f := newFixture(t)
	dept := testutil.CreateDepartment(t, f.db, "RPL", "Rekayasa Perangkat Lunak", 1, 1)
	lab := testutil.CreateLocation(t, f.db, "Lab RPL", "LAB-RPL-1", models.MainGroupDepartment, models.LocationTypeLab, dept)
	room := testutil.CreateLocation(t, f.db, "Perpustakaan", "RNG-001", models.MainGroupSchool, models.LocationTypeRoom, nil)
	category := testutil.CreateCategory(t, f.db, "Elektronik")

	f.asset(t, services.AssetInput{Name: "PC", LocationID: lab.ID.Ptr(), CategoryID: category.ID.Ptr()})
	f.asset(t, services.AssetInput{Name: "Rak Buku", LocationID: room.ID.Ptr(), Condition: models.ConditionFair})
	f.asset(t, services.AssetInput{Name: "Kipas"})

	page := utils.NormalizePage(1, 10, 10)
	cases := []struct {
		name   string
		filter services.AssetFilter
		want   []string
	}{
		{"main group", services.AssetFilter{MainGroup: models.MainGroupDepartment}, []string{"PC"}},
		{"department", services.AssetFilter{DepartmentID: dept.ID.Ptr()}, []string{"PC"}},
		{"location", services.AssetFilter{LocationID: room.ID.Ptr()}, []string{"Rak Buku"}},
		{"category", services.AssetFilter{CategoryID: category.ID.Ptr()}, []string{"PC"}},
		{"condition", services.AssetFilter{Condition: models.ConditionFair}, []string{"Rak Buku"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.filter.Page = page
			assets, total, err := f.svc.Assets.List(f.ctx, tc.filter)
			require.NoError(t, err)
			assert.EqualValues(t, len(tc.want), total)
			names := make([]string, len(assets))
			for i, a := range assets {
				names[i] = a.Name
			}
			assert.ElementsMatch(t, tc.want, names)
		})
	}
}

func TestAssetLogsNewestFirst(t *testing.T) {
	f := newFixture(t)
	asset := f.asset(t, services.AssetInput{Name: "Kamera"})
	_, err := f.svc.Assets.Update(f.ctx, f.admin, asset.ID, services.AssetInput{Name: "Kamera DSLR"})
	require.NoError(t, err)

	logs, total, err := f.svc.Assets.Logs(f.ctx, asset.ID, utils.NormalizePage(1, 20, 20))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, logs, 2)
	assert.Equal(t, models.ActionUpdate, logs[0].Action)
	require.NotNil(t, logs[0].User)
	assert.Equal(t, f.admin.Email, logs[0].User.Email)
}
