// dashboard_test.go
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

package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type dashboardFixture struct {
	*fixture
	dept *models.Department
	lab  *models.Location
	room *models.Location
}

// newDashboardFixture stores two assets: one in a department lab with
// buckets 5/1/0 and one in a school room with buckets 3/0/2.
func newDashboardFixture(t *testing.T, opts ...func(*services.Options)) *dashboardFixture {
	t.Helper()
	f := &dashboardFixture{fixture: newFixture(t, opts...)}
	f.dept = testutil.CreateDepartment(t, f.db, "TKJ", "Teknik Komputer dan Jaringan", 1, 1)
	f.lab = testutil.CreateLocation(t, f.db, "Lab TKJ 1", "LAB-TKJ-1", models.MainGroupDepartment, models.LocationTypeLab, f.dept)
	f.room = testutil.CreateLocation(t, f.db, "Perpustakaan", "RNG-001", models.MainGroupSchool, models.LocationTypeRoom, nil)
	category := testutil.CreateCategory(t, f.db, "Elektronik")

	p1 := decimal.NewFromInt(100)
	p2 := decimal.RequireFromString("250.5")
	f.asset(t, services.AssetInput{
		Name: "Komputer", CategoryID: category.ID.Ptr(), LocationID: f.lab.ID.Ptr(),
		QuantityGood: 5, QuantityFair: 1, PurchasePrice: &p1,
	})
	f.asset(t, services.AssetInput{
		Name: "Rak", LocationID: f.room.ID.Ptr(), Condition: models.ConditionDamaged,
		QuantityGood: 3, QuantityDamaged: 2, PurchasePrice: &p2,
	})
	return f
}

func TestDashboardStats(t *testing.T) {
	f := newDashboardFixture(t)

	stats, err := f.svc.Dashboard.Stats(f.ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.TotalAssets)
	assert.EqualValues(t, 1, stats.TotalCategories)
	assert.EqualValues(t, 1, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.TotalDepartments)
	assert.EqualValues(t, 2, stats.TotalLocations)
	assert.EqualValues(t, 11, stats.TotalQuantity)
	assert.InDelta(t, 350.5, stats.TotalValue, 0.001)

	assert.Equal(t, services.QuantitySummary{TotalGood: 8, TotalFair: 1, TotalDamaged: 2, Total: 11}, stats.QuantitySummary)

	assert.Equal(t, services.ConditionStat{Count: 1, Quantity: 8}, stats.ConditionStats[models.ConditionGood])
	assert.Equal(t, services.ConditionStat{Count: 0, Quantity: 1}, stats.ConditionStats[models.ConditionFair])
	assert.Equal(t, services.ConditionStat{Count: 1, Quantity: 2}, stats.ConditionStats[models.ConditionDamaged])
	assert.Equal(t, services.ConditionStat{}, stats.ConditionStats[models.ConditionLost])

	require.Len(t, stats.MainGroupStats, 3)
	assert.Equal(t, services.GroupTotals{Count: 1, TotalQuantity: 6, TotalGood: 5, TotalFair: 1}, stats.MainGroupStats[models.MainGroupDepartment])
	assert.Equal(t, services.GroupTotals{Count: 1, TotalQuantity: 5, TotalGood: 3, TotalDamaged: 2}, stats.MainGroupStats[models.MainGroupSchool])
	assert.Equal(t, services.GroupTotals{}, stats.MainGroupStats[models.MainGroupClass])

	byCategory := map[string]int64{}
	for _, c := range stats.AssetsByCategory {
		byCategory[c.CategoryName] = c.TotalQuantity
	}
	assert.Equal(t, map[string]int64{"Elektronik": 6, "Unknown": 5}, byCategory)

	require.Len(t, stats.AssetsByDepartment, 1)
	dept := stats.AssetsByDepartment[0]
	assert.Equal(t, f.dept.ID, dept.DepartmentID)
	assert.Equal(t, "TKJ", dept.DepartmentCode)
	assert.EqualValues(t, 1, dept.Count)
	assert.EqualValues(t, 6, dept.TotalQuantity)

	assert.Len(t, stats.LocationsByType, 2)
	require.Len(t, stats.RecentTransactions, 2)
	assert.NotNil(t, stats.RecentTransactions[0].User)
	recent := stats.RecentTransactions[0].Asset
	require.NotNil(t, recent)
	assert.False(t, recent.ID.IsZero())
	assert.Contains(t, []string{"Komputer", "Rak"}, recent.Name)
	assert.Zero(t, recent.Quantity, "only id and name are loaded")
	assert.Nil(t, recent.InventoryCode)
}

func TestDashboardSummaries(t *testing.T) {
	f := newDashboardFixture(t)

	departments, err := f.svc.Dashboard.DepartmentSummary(f.ctx)
	require.NoError(t, err)
	require.Len(t, departments, 1)
	assert.Equal(t, "TKJ", departments[0].Department.Code)
	assert.Equal(t, 1, departments[0].Labs.Count)
	assert.Equal(t, services.GroupStats{TotalAssets: 1, TotalGood: 5, TotalFair: 1}, departments[0].Labs.Stats)
	assert.Zero(t, departments[0].Classes.Count)

	all, err := f.svc.Dashboard.LocationSummary(f.ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	school, err := f.svc.Dashboard.LocationSummary(f.ctx, models.MainGroupSchool)
	require.NoError(t, err)
	require.Len(t, school, 1)
	assert.Equal(t, "Perpustakaan", school[0].Location.Name)
	assert.Equal(t, 1, school[0].AssetCount)
	assert.Equal(t, 3, school[0].TotalGood)
	assert.Equal(t, 2, school[0].TotalDamaged)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	args := m.Called(ctx, key, dst)
	return args.Bool(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func withCache(c services.Cache) func(*services.Options) {
	return func(o *services.Options) { o.Cache = c }
}

func TestDashboardStatsCacheMissThenStore(t *testing.T) {
	cache := &mockCache{}
	cache.On("Delete", mock.Anything, []string{services.StatsCacheKey}).Return(nil)
	f := newDashboardFixture(t, withCache(cache))

	cache.On("Get", mock.Anything, services.StatsCacheKey, mock.Anything).Return(false, nil).Once()
	cache.On("Set", mock.Anything, services.StatsCacheKey, mock.AnythingOfType("*services.Stats")).Return(nil).Once()

	stats, err := f.svc.Dashboard.Stats(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalAssets)
	cache.AssertExpectations(t)
}

func TestDashboardStatsCacheHit(t *testing.T) {
	cache := &mockCache{}
	f := newFixture(t, withCache(cache))

	cache.On("Get", mock.Anything, services.StatsCacheKey, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(2).(*services.Stats).TotalAssets = 42
		}).
		Return(true, nil).Once()

	stats, err := f.svc.Dashboard.Stats(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 42, stats.TotalAssets)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestDashboardStatsCacheFailureFallsBack(t *testing.T) {
	cache := &mockCache{}
	f := newFixture(t, withCache(cache))

	cache.On("Get", mock.Anything, services.StatsCacheKey, mock.Anything).Return(false, errors.New("connection refused"))
	cache.On("Set", mock.Anything, services.StatsCacheKey, mock.Anything).Return(errors.New("connection refused"))

	stats, err := f.svc.Dashboard.Stats(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalUsers)
}

func TestMutationsInvalidateStats(t *testing.T) {
	cache := &mockCache{}
	f := newFixture(t, withCache(cache))
	cache.On("Delete", mock.Anything, []string{services.StatsCacheKey}).Return(nil)

	category, err := f.svc.Categories.Create(f.ctx, services.CategoryInput{Name: "Mebel"})
	require.NoError(t, err)
	cache.AssertNumberOfCalls(t, "Delete", 1)

	f.asset(t, services.AssetInput{Name: "Meja", CategoryID: category.ID.Ptr()})
	cache.AssertNumberOfCalls(t, "Delete", 2)

	// A failed delete is logged, not returned.
	failing := &mockCache{}
	f2 := newFixture(t, withCache(failing))
	failing.On("Delete", mock.Anything, mock.Anything).Return(errors.New("timeout"))
	_, err = f2.svc.Categories.Create(f2.ctx, services.CategoryInput{Name: "Alat"})
	require.NoError(t, err)
}

func TestAssetMutationsInvalidateAfterLogging(t *testing.T) {
	cache := &mockCache{}
	f := newFixture(t, withCache(cache))

	// Logs visible to a reader at the moment the key is dropped.
	var seen []int64
	cache.On("Delete", mock.Anything, []string{services.StatsCacheKey}).
		Run(func(mock.Arguments) {
			var n int64
			require.NoError(t, f.db.Model(&models.TransactionLog{}).Count(&n).Error)
			seen = append(seen, n)
		}).
		Return(nil)

	asset := f.asset(t, services.AssetInput{Name: "Proyektor"})
	_, err := f.svc.Assets.Update(f.ctx, f.admin, asset.ID, services.AssetInput{Name: "Proyektor Epson", QuantityGood: 2})
	require.NoError(t, err)
	require.NoError(t, f.svc.Assets.Delete(f.ctx, f.admin, asset.ID))

	assert.Equal(t, []int64{1, 2, 3}, seen)
}
