package services

import (
	"context"
	"fmt"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlserver"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/hints"
)

const recentTransactionLimit = 10

// ConditionStat is the number of assets in a condition and the quantity
// counted in that condition's bucket.
type ConditionStat struct {
	Count    int64 `json:"count"`
	Quantity int64 `json:"quantity"`
}

// QuantitySummary totals the three quantity buckets across all assets.
type QuantitySummary struct {
	TotalGood    int64 `json:"totalGood"`
	TotalFair    int64 `json:"totalFair"`
	TotalDamaged int64 `json:"totalDamaged"`
	Total        int64 `json:"total"`
}

// LocationTypeCount counts locations per main group and type.
type LocationTypeCount struct {
	MainGroup    models.MainGroup    `json:"main_group"`
	LocationType models.LocationType `json:"location_type"`
	Count        int64               `json:"count"`
}

// GroupTotals aggregates the assets placed in one main group.
type GroupTotals struct {
	Count         int64 `json:"count"`
	TotalQuantity int64 `json:"totalQuantity"`
	TotalGood     int64 `json:"totalGood"`
	TotalFair     int64 `json:"totalFair"`
	TotalDamaged  int64 `json:"totalDamaged"`
}

// CategoryTotals aggregates assets per category.
type CategoryTotals struct {
	CategoryID    *models.UUID `json:"categoryId"`
	CategoryName  string       `json:"categoryName"`
	Count         int64        `json:"count"`
	TotalQuantity int64        `json:"totalQuantity"`
}

// DepartmentTotals aggregates assets located in a department's locations.
type DepartmentTotals struct {
	DepartmentID   models.UUID `json:"departmentId" gorm:"column:department_id"`
	DepartmentCode string      `json:"departmentCode" gorm:"column:department_code"`
	DepartmentName string      `json:"departmentName" gorm:"column:department_name"`
	Count          int64       `json:"count" gorm:"column:count"`
	TotalQuantity  int64       `json:"totalQuantity" gorm:"column:total_quantity"`
	TotalGood      int64       `json:"totalGood" gorm:"column:total_good"`
	TotalFair      int64       `json:"totalFair" gorm:"column:total_fair"`
	TotalDamaged   int64       `json:"totalDamaged" gorm:"column:total_damaged"`
}

// Stats is the dashboard overview.
type Stats struct {
	TotalAssets        int64                              `json:"totalAssets"`
	TotalCategories    int64                              `json:"totalCategories"`
	TotalUsers         int64                              `json:"totalUsers"`
	TotalDepartments   int64                              `json:"totalDepartments"`
	TotalLocations     int64                              `json:"totalLocations"`
	TotalQuantity      int64                              `json:"totalQuantity"`
	TotalValue         float64                            `json:"totalValue"`
	ConditionStats     map[models.Condition]ConditionStat `json:"conditionStats"`
	QuantitySummary    QuantitySummary                    `json:"quantitySummary"`
	LocationsByType    []LocationTypeCount                `json:"locationsByType"`
	MainGroupStats     map[models.MainGroup]GroupTotals   `json:"mainGroupStats"`
	AssetsByCategory   []CategoryTotals                   `json:"assetsByCategory"`
	AssetsByDepartment []DepartmentTotals                 `json:"assetsByDepartment"`
	RecentTransactions []models.TransactionLog            `json:"recentTransactions"`
}

// GroupStats totals the assets held by a set of locations.
type GroupStats struct {
	TotalAssets  int `json:"totalAssets"`
	TotalGood    int `json:"totalGood"`
	TotalFair    int `json:"totalFair"`
	TotalDamaged int `json:"totalDamaged"`
}

// LocationKindSummary counts a department's locations of one type.
type LocationKindSummary struct {
	Count int        `json:"count"`
	Stats GroupStats `json:"stats"`
}

// DepartmentBrief is the department header of a rollup row.
type DepartmentBrief struct {
	ID                   models.UUID `json:"id"`
	Code                 string      `json:"code"`
	Name                 string      `json:"name"`
	TotalClassesPerGrade int         `json:"total_classes_per_grade"`
	TotalLabs            int         `json:"total_labs"`
}

// DepartmentRollup is one row of the department summary.
type DepartmentRollup struct {
	Department DepartmentBrief     `json:"department"`
	Labs       LocationKindSummary `json:"labs"`
	Classes    LocationKindSummary `json:"classes"`
}

// LocationBrief is the location header of a location summary row.
type LocationBrief struct {
	ID           models.UUID         `json:"id"`
	Name         string              `json:"name"`
	Code         *string             `json:"code"`
	MainGroup    models.MainGroup    `json:"main_group"`
	LocationType models.LocationType `json:"location_type"`
	GradeLevel   *models.GradeLevel  `json:"grade_level"`
	Department   *models.Department  `json:"department"`
}

// LocationRollup is one row of the location summary.
type LocationRollup struct {
	Location     LocationBrief  `json:"location"`
	AssetCount   int            `json:"assetCount"`
	TotalGood    int            `json:"totalGood"`
	TotalFair    int            `json:"totalFair"`
	TotalDamaged int            `json:"totalDamaged"`
	Assets       []models.Asset `json:"assets"`
}

// DashboardService computes the read-only aggregate views.
type DashboardService struct {
	db    *gorm.DB
	audit *AuditLogger
	cache Cache
	log   *zap.Logger
}

// dialect maps the GORM dialector onto the matching goqu dialect.
func (s *DashboardService) dialect() goqu.DialectWrapper {
	switch s.db.Dialector.Name() {
	case "sqlite":
		return goqu.Dialect("sqlite3")
	case "mysql":
		return goqu.Dialect("mysql")
	case "sqlserver":
		return goqu.Dialect("sqlserver")
	default:
		return goqu.Dialect("postgres")
	}
}

// tagged labels a query so it can be found in slow query logs.
func (s *DashboardService) tagged(ctx context.Context, name string) *gorm.DB {
	return s.db.WithContext(ctx).Clauses(hints.CommentBefore("select", "dashboard:"+name))
}

// Stats returns the dashboard overview, from cache when available.
func (s *DashboardService) Stats(ctx context.Context) (*Stats, error) {
	var cached Stats
	hit, err := s.cache.Get(ctx, StatsCacheKey, &cached)
	if err != nil {
		s.log.Warn("dashboard cache read failed", zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, StatsCacheKey, stats); err != nil {
		s.log.Warn("dashboard cache write failed", zap.Error(err))
	}
	return stats, nil
}

func (s *DashboardService) computeStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&models.Asset{}, &stats.TotalAssets},
		{&models.Category{}, &stats.TotalCategories},
		{&models.User{}, &stats.TotalUsers},
		{&models.Department{}, &stats.TotalDepartments},
		{&models.Location{}, &stats.TotalLocations},
	}
	for _, c := range counts {
		if err := s.tagged(ctx, "count").Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	var totals struct {
		TotalQuantity int64
		TotalGood     int64
		TotalFair     int64
		TotalDamaged  int64
		TotalValue    decimal.NullDecimal
	}
	err := s.tagged(ctx, "totals").Model(&models.Asset{}).
		Select("COALESCE(SUM(quantity), 0) AS total_quantity, " +
			"COALESCE(SUM(quantity_good), 0) AS total_good, " +
			"COALESCE(SUM(quantity_fair), 0) AS total_fair, " +
			"COALESCE(SUM(quantity_damaged), 0) AS total_damaged, " +
			"SUM(purchase_price) AS total_value").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	stats.TotalQuantity = totals.TotalQuantity
	stats.TotalValue = totals.TotalValue.Decimal.InexactFloat64()
	stats.QuantitySummary = QuantitySummary{
		TotalGood:    totals.TotalGood,
		TotalFair:    totals.TotalFair,
		TotalDamaged: totals.TotalDamaged,
		Total:        totals.TotalGood + totals.TotalFair + totals.TotalDamaged,
	}

	if stats.ConditionStats, err = s.conditionStats(ctx, stats.QuantitySummary); err != nil {
		return nil, err
	}
	if stats.LocationsByType, err = s.locationsByType(ctx); err != nil {
		return nil, err
	}
	if stats.MainGroupStats, err = s.mainGroupStats(ctx); err != nil {
		return nil, err
	}
	if stats.AssetsByCategory, err = s.assetsByCategory(ctx); err != nil {
		return nil, err
	}
	if stats.AssetsByDepartment, err = s.AssetsByDepartment(ctx); err != nil {
		return nil, err
	}

	if stats.RecentTransactions, err = s.audit.Recent(ctx, recentTransactionLimit); err != nil {
		return nil, err
	}

	return stats, nil
}

// conditionStats counts assets per condition. Quantities come from the
// bucket columns, so "lost" always reports zero quantity.
func (s *DashboardService) conditionStats(ctx context.Context, q QuantitySummary) (map[models.Condition]ConditionStat, error) {
	query, _, err := s.dialect().
		From("assets").
		Select(goqu.C("condition"), goqu.COUNT(goqu.C("id")).As("n")).
		GroupBy(goqu.C("condition")).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build condition query: %w", err)
	}

	var rows []struct {
		Condition models.Condition
		N         int64
	}
	if err := s.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[models.Condition]ConditionStat, len(models.Conditions))
	for _, c := range models.Conditions {
		out[c] = ConditionStat{}
	}
	for _, r := range rows {
		if _, ok := out[r.Condition]; ok {
			out[r.Condition] = ConditionStat{Count: r.N}
		}
	}

	set := func(c models.Condition, quantity int64) {
		stat := out[c]
		stat.Quantity = quantity
		out[c] = stat
	}
	set(models.ConditionGood, q.TotalGood)
	set(models.ConditionFair, q.TotalFair)
	set(models.ConditionDamaged, q.TotalDamaged)
	return out, nil
}

func (s *DashboardService) locationsByType(ctx context.Context) ([]LocationTypeCount, error) {
	out := make([]LocationTypeCount, 0)
	err := s.tagged(ctx, "locations_by_type").Model(&models.Location{}).
		Select("main_group, location_type, COUNT(id) AS count").
		Group("main_group").Group("location_type").
		Order("main_group").Order("location_type").
		Scan(&out).Error
	return out, err
}

// mainGroupStats totals assets by the main group of their location. All
// three groups are always present.
func (s *DashboardService) mainGroupStats(ctx context.Context) (map[models.MainGroup]GroupTotals, error) {
	var rows []struct {
		MainGroup models.MainGroup
		GroupTotals
	}
	err := s.tagged(ctx, "main_groups").Model(&models.Asset{}).
		Select("locations.main_group AS main_group, " +
			"COUNT(assets.id) AS count, " +
			"COALESCE(SUM(assets.quantity), 0) AS total_quantity, " +
			"COALESCE(SUM(assets.quantity_good), 0) AS total_good, " +
			"COALESCE(SUM(assets.quantity_fair), 0) AS total_fair, " +
			"COALESCE(SUM(assets.quantity_damaged), 0) AS total_damaged").
		Joins("INNER JOIN locations ON locations.id = assets.location_id").
		Group("locations.main_group").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[models.MainGroup]GroupTotals, len(models.MainGroups))
	for _, g := range models.MainGroups {
		out[g] = GroupTotals{}
	}
	for _, r := range rows {
		if _, ok := out[r.MainGroup]; ok {
			out[r.MainGroup] = r.GroupTotals
		}
	}
	return out, nil
}

func (s *DashboardService) assetsByCategory(ctx context.Context) ([]CategoryTotals, error) {
	var rows []struct {
		CategoryID    *models.UUID
		CategoryName  *string
		Count         int64
		TotalQuantity int64
	}
	err := s.tagged(ctx, "by_category").Model(&models.Asset{}).
		Select("assets.category_id AS category_id, categories.name AS category_name, " +
			"COUNT(assets.id) AS count, COALESCE(SUM(assets.quantity), 0) AS total_quantity").
		Joins("LEFT JOIN categories ON categories.id = assets.category_id").
		Group("assets.category_id").Group("categories.name").
		Order("categories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]CategoryTotals, len(rows))
	for i, r := range rows {
		name := "Unknown"
		if r.CategoryName != nil {
			name = *r.CategoryName
		}
		out[i] = CategoryTotals{CategoryID: r.CategoryID, CategoryName: name, Count: r.Count, TotalQuantity: r.TotalQuantity}
	}
	return out, nil
}

// AssetsByDepartment rolls assets up to departments through their location.
// Assets whose location has no department are not counted.
func (s *DashboardService) AssetsByDepartment(ctx context.Context) ([]DepartmentTotals, error) {
	query, _, err := s.dialect().
		From(goqu.T("assets").As("a")).
		InnerJoin(goqu.T("locations").As("l"), goqu.On(goqu.I("a.location_id").Eq(goqu.I("l.id")))).
		InnerJoin(goqu.T("departments").As("d"), goqu.On(goqu.I("l.department_id").Eq(goqu.I("d.id")))).
		Select(
			goqu.I("d.id").As("department_id"),
			goqu.I("d.code").As("department_code"),
			goqu.I("d.name").As("department_name"),
			goqu.COUNT(goqu.I("a.id")).As("count"),
			goqu.COALESCE(goqu.SUM(goqu.I("a.quantity")), 0).As("total_quantity"),
			goqu.COALESCE(goqu.SUM(goqu.I("a.quantity_good")), 0).As("total_good"),
			goqu.COALESCE(goqu.SUM(goqu.I("a.quantity_fair")), 0).As("total_fair"),
			goqu.COALESCE(goqu.SUM(goqu.I("a.quantity_damaged")), 0).As("total_damaged"),
		).
		GroupBy(goqu.I("d.id"), goqu.I("d.code"), goqu.I("d.name")).
		Order(goqu.I("d.code").Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build department rollup: %w", err)
	}

	out := make([]DepartmentTotals, 0)
	if err := s.db.WithContext(ctx).Raw(query).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DepartmentSummary reports, per department ordered by code, its labs and
// classes with asset totals.
func (s *DashboardService) DepartmentSummary(ctx context.Context) ([]DepartmentRollup, error) {
	var departments []models.Department
	err := s.db.WithContext(ctx).
		Preload("Locations.Assets").
		Order("code ASC").
		Find(&departments).Error
	if err != nil {
		return nil, err
	}

	out := make([]DepartmentRollup, len(departments))
	for i, d := range departments {
		row := DepartmentRollup{Department: DepartmentBrief{
			ID:                   d.ID,
			Code:                 d.Code,
			Name:                 d.Name,
			TotalClassesPerGrade: d.TotalClassesPerGrade,
			TotalLabs:            d.TotalLabs,
		}}
		for _, l := range d.Locations {
			switch l.LocationType {
			case models.LocationTypeLab:
				row.Labs.add(l.Assets)
			case models.LocationTypeClassroom:
				row.Classes.add(l.Assets)
			}
		}
		out[i] = row
	}
	return out, nil
}

func (k *LocationKindSummary) add(assets []models.Asset) {
	k.Count++
	for _, a := range assets {
		k.Stats.TotalAssets++
		k.Stats.TotalGood += a.QuantityGood
		k.Stats.TotalFair += a.QuantityFair
		k.Stats.TotalDamaged += a.QuantityDamaged
	}
}

// LocationSummary reports every location, optionally within one main group,
// with its assets and their totals.
func (s *DashboardService) LocationSummary(ctx context.Context, group models.MainGroup) ([]LocationRollup, error) {
	q := s.db.WithContext(ctx).
		Preload("Department").
		Preload("Assets.ItemType")
	if group != "" {
		q = q.Where("main_group = ?", group)
	}

	var locations []models.Location
	if err := q.Order("main_group ASC").Order("name ASC").Find(&locations).Error; err != nil {
		return nil, err
	}

	out := make([]LocationRollup, len(locations))
	for i, l := range locations {
		row := LocationRollup{
			Location: LocationBrief{
				ID:           l.ID,
				Name:         l.Name,
				Code:         l.Code,
				MainGroup:    l.MainGroup,
				LocationType: l.LocationType,
				GradeLevel:   l.GradeLevel,
				Department:   l.Department,
			},
			AssetCount: len(l.Assets),
			Assets:     l.Assets,
		}
		if row.Assets == nil {
			row.Assets = make([]models.Asset, 0)
		}
		for _, a := range l.Assets {
			row.TotalGood += a.QuantityGood
			row.TotalFair += a.QuantityFair
			row.TotalDamaged += a.QuantityDamaged
		}
		out[i] = row
	}
	return out, nil
}
