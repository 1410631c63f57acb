package services

import (
	"context"
	"fmt"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuditLogger appends TransactionLog rows for asset mutations.
type AuditLogger struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewAuditLogger returns an AuditLogger writing through db.
func NewAuditLogger(db *gorm.DB, log *zap.Logger) *AuditLogger {
	return &AuditLogger{db: db, log: log.Named("audit")}
}

// CreatedChanges is the payload of a create log.
type CreatedChanges struct {
	Created models.Asset `json:"created"`
}

// UpdatedChanges is the payload of an update log.
type UpdatedChanges struct {
	Before models.Asset `json:"before"`
	After  models.Asset `json:"after"`
}

// DeletedChanges is the payload of a delete log.
type DeletedChanges struct {
	Deleted models.Asset `json:"deleted"`
}

// Record writes one log row. The caller's mutation is not rolled back when
// this fails.
func (a *AuditLogger) Record(ctx context.Context, actor Actor, assetID models.UUID, action models.Action, changes interface{}) error {
	doc, err := models.NewJSON(changes)
	if err != nil {
		return fmt.Errorf("encode %s changes: %w", action, err)
	}

	entry := &models.TransactionLog{
		AssetID: assetID,
		UserID:  actor.UserID,
		Action:  action,
		Changes: doc,
	}
	if err := a.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("record %s log: %w", action, err)
	}

	a.log.Info("asset mutation",
		zap.String("action", string(action)),
		zap.String("asset_id", assetID.String()),
		zap.String("user_id", actor.UserID.String()),
		zap.String("log_id", entry.ID.String()),
	)
	return nil
}

// List returns a page of logs for assetID, newest first, with the acting user.
func (a *AuditLogger) List(ctx context.Context, assetID models.UUID, page utils.PageParams) ([]models.TransactionLog, int64, error) {
	q := a.db.WithContext(ctx).Model(&models.TransactionLog{}).Where("asset_id = ?", assetID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]models.TransactionLog, 0, page.Limit)
	err := a.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Preload("User").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Recent returns the newest logs across all assets, with the acting user and
// the asset's id and name.
func (a *AuditLogger) Recent(ctx context.Context, limit int) ([]models.TransactionLog, error) {
	logs := make([]models.TransactionLog, 0, limit)
	err := a.db.WithContext(ctx).
		Preload("User").
		Preload("Asset", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
