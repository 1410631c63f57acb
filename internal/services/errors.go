package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/types"
	"gorm.io/gorm"
)

// isUniqueViolation recognizes duplicate-key errors from every supported driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "Duplicate entry")
}

// writeError turns a unique violation into a validation error carrying message.
func writeError(err error, message string) error {
	if isUniqueViolation(err) {
		return types.NewValidationError("%s", message)
	}
	return err
}

// notFound maps gorm.ErrRecordNotFound to a 404 for entity.
func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NewNotFoundError(entity)
	}
	return err
}

// exists reports whether a row of model with the given id is present.
func exists(ctx context.Context, db *gorm.DB, model interface{}, id models.UUID) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// requireRef fails with "<entity> not found" (400) when id is set but absent.
func requireRef(ctx context.Context, db *gorm.DB, model interface{}, id *models.UUID, entity string) error {
	if id == nil {
		return nil
	}
	ok, err := exists(ctx, db, model, *id)
	if err != nil {
		return err
	}
	if !ok {
		return types.NewValidationError("%s not found", entity)
	}
	return nil
}

// countWhere counts rows of model matching column = id.
func countWhere(ctx context.Context, db *gorm.DB, model interface{}, column string, id models.UUID) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(model).Where(column+" = ?", id).Count(&n).Error
	return n, err
}

// containsPattern builds a LIKE pattern for a case-insensitive substring match.
func containsPattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

// blankToNil treats empty and whitespace-only strings as absent.
func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
