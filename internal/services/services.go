package services

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options carries the optional collaborators of the service layer.
type Options struct {
	Cache     Cache
	JWTSecret string
	TokenTTL  time.Duration
}

// Services groups every domain service behind one handle for the HTTP layer.
type Services struct {
	Assets      *AssetService
	Categories  *CategoryService
	Departments *DepartmentService
	Locations   *LocationService
	ItemTypes   *ItemTypeService
	Users       *UserService
	Dashboard   *DashboardService
	Audit       *AuditLogger
	Auth        *Authenticator
}

// New wires the services to db. A nil opts.Cache disables caching.
func New(db *gorm.DB, log *zap.Logger, opts Options) *Services {
	if log == nil {
		log = zap.NewNop()
	}
	c := opts.Cache
	if c == nil {
		c = NoopCache{}
	}
	inv := &invalidator{cache: c, log: log}

	audit := NewAuditLogger(db, log)
	auth := NewAuthenticator(opts.JWTSecret, opts.TokenTTL)

	return &Services{
		Assets:      &AssetService{db: db, audit: audit, inv: inv},
		Categories:  &CategoryService{db: db, inv: inv},
		Departments: &DepartmentService{db: db, inv: inv},
		Locations:   &LocationService{db: db, inv: inv},
		ItemTypes:   &ItemTypeService{db: db, inv: inv},
		Users:       &UserService{db: db, auth: auth, inv: inv},
		Dashboard:   &DashboardService{db: db, audit: audit, cache: c, log: log.Named("dashboard")},
		Audit:       audit,
		Auth:        auth,
	}
}
