package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// UUID is a primary or foreign key column holding a google/uuid value.
// It marshals to its canonical string form.
type UUID struct {
	uuid.UUID
}

// NewUUID returns a random (v4) UUID.
func NewUUID() UUID {
	return UUID{UUID: uuid.New()}
}

// ParseUUID parses the canonical string form.
func ParseUUID(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, err
	}
	return UUID{UUID: id}, nil
}

// IsZero reports whether u is the nil UUID.
func (u UUID) IsZero() bool {
	return u.UUID == uuid.Nil
}

// Ptr returns a pointer to a copy of u.
func (u UUID) Ptr() *UUID {
	return &u
}

func (UUID) GormDataType() string {
	return "uuid"
}

// GormDBDataType picks a native uuid column where one exists.
func (UUID) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "UUID"
	case "mysql":
		return "CHAR(36)"
	case "sqlserver", "mssql":
		return "NVARCHAR(36)"
	case "sqlite":
		return "TEXT"
	}
	return "VARCHAR(36)"
}
