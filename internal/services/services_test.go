package services_test

import (
	"context"
	"testing"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/testutil"
	"github.com/Rustaman1280/tefacontoh/internal/types"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	ctx   context.Context
	db    *gorm.DB
	svc   *services.Services
	admin services.Actor
}

func newFixture(t *testing.T, opts ...func(*services.Options)) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	o := services.Options{JWTSecret: "test-secret"}
	for _, fn := range opts {
		fn(&o)
	}
	return &fixture{
		ctx:   context.Background(),
		db:    db,
		svc:   services.New(db, nil, o),
		admin: testutil.CreateUser(t, db, "admin@school.test", models.RoleAdmin),
	}
}

func (f *fixture) asset(t *testing.T, in services.AssetInput) *models.Asset {
	t.Helper()
	asset, err := f.svc.Assets.Create(f.ctx, f.admin, in)
	require.NoError(t, err)
	return asset
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// requireCustomError asserts err is a CustomError with the given status and message.
func requireCustomError(t *testing.T, err error, code int, message string) {
	t.Helper()
	require.Error(t, err)
	ce, ok := types.AsCustomError(err)
	require.True(t, ok, "expected CustomError, got %T: %v", err, err)
	require.Equal(t, code, ce.Code)
	require.Equal(t, message, ce.Message)
}
