package models

import (
	"time"

	"gorm.io/gorm"
)

// TransactionLog is an immutable audit record of one asset mutation.
// AssetID is kept after the asset row is deleted.
type TransactionLog struct {
	ID        UUID      `gorm:"primaryKey" json:"id"`
	AssetID   UUID      `gorm:"not null;index" json:"asset_id"`
	UserID    UUID      `gorm:"not null;index" json:"user_id"`
	Action    Action    `gorm:"size:10;not null" json:"action"`
	Changes   JSON      `json:"changes"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

func (TransactionLog) TableName() string {
	return "transaction_logs"
}

func (l *TransactionLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID.IsZero() {
		l.ID = NewUUID()
	}
	return nil
}
