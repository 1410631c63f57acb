package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	result := services.HealthCheck(ctx, db, nil, zap.NewNop())
	assert.True(t, result.Healthy())
	assert.Equal(t, "ok", result.Database)
	assert.Equal(t, "disabled", result.Cache)
	assert.Equal(t, "sqlite", result.Details["database_type"])

	result = services.HealthCheck(ctx, db, pingFunc(func(context.Context) error { return nil }), zap.NewNop())
	assert.True(t, result.Healthy())
	assert.Equal(t, "ok", result.Cache)

	result = services.HealthCheck(ctx, db, pingFunc(func(context.Context) error { return errors.New("refused") }), zap.NewNop())
	assert.True(t, result.Healthy(), "a cache outage does not fail the service")
	assert.Equal(t, "unreachable", result.Cache)
	assert.Equal(t, "refused", result.Details["cache_error"])

	sqlDB, _ := db.DB()
	_ = sqlDB.Close()
	result = services.HealthCheck(ctx, db, nil, zap.NewNop())
	assert.False(t, result.Healthy())
	assert.Equal(t, "unreachable", result.Database)
	assert.NotEmpty(t, result.ErrorMessage)
}
