package models

import (
	"time"

	"gorm.io/gorm"
)

// Model holds the columns shared by every mutable entity.
type Model struct {
	ID        UUID      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a fresh id when the caller did not set one.
func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID.IsZero() {
		m.ID = NewUUID()
	}
	return nil
}
