package database

import (
	"fmt"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"gorm.io/gorm"
)

// Models lists every persisted entity in dependency order
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Department{},
		&models.Location{},
		&models.ItemType{},
		&models.Asset{},
		&models.TransactionLog{},
	}
}

// expressionIndexes back the case-insensitive searches; only dialects that
// accept CREATE INDEX IF NOT EXISTS on expressions get them.
var expressionIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_assets_lower_name ON assets (LOWER(name))",
	"CREATE INDEX IF NOT EXISTS idx_locations_lower_name ON locations (LOWER(name))",
	"CREATE INDEX IF NOT EXISTS idx_transaction_logs_asset_created ON transaction_logs (asset_id, created_at)",
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	switch db.Dialector.Name() {
	case "postgres", "sqlite":
		for _, stmt := range expressionIndexes {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("create index: %w", err)
			}
		}
	}

	return nil
}
