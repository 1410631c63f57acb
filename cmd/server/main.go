package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rustaman1280/tefacontoh/data"
	"github.com/Rustaman1280/tefacontoh/internal/cache"
	"github.com/Rustaman1280/tefacontoh/internal/config"
	"github.com/Rustaman1280/tefacontoh/internal/database"
	"github.com/Rustaman1280/tefacontoh/internal/logging"
	"github.com/Rustaman1280/tefacontoh/internal/server"
	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title School Inventory API
// @version 1.0.0
// @description Asset, location and department inventory service with audit trail and dashboard aggregates
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// cacheKeyPrefix namespaces every Redis key the service writes.
const cacheKeyPrefix = "inventory:"

// runtime is what every subcommand needs: config, logger and a database handle.
type runtime struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func bootstrap() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	log, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	return &runtime{cfg: cfg, log: log, db: db}, nil
}

func (r *runtime) close() {
	if err := database.Close(r.db); err != nil {
		r.log.Warn("closing database", zap.Error(err))
	}
	_ = r.log.Sync()
}

// openCache connects to Redis when REDIS_URL is set. A connection failure is
// logged and the service runs without the cache.
func (r *runtime) openCache(ctx context.Context) *cache.Store {
	if r.cfg.RedisURL == "" {
		return nil
	}
	store, err := cache.NewStore(ctx, r.cfg.RedisURL, cacheKeyPrefix, r.cfg.CacheTTL)
	if err != nil {
		r.log.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		return nil
	}
	r.log.Info("connected to redis")
	return store
}

func (r *runtime) services(store *cache.Store) *services.Services {
	opts := services.Options{
		JWTSecret: r.cfg.JWTSecret,
		TokenTTL:  r.cfg.JWTTTL,
	}
	if store != nil {
		opts.Cache = store
	}
	return services.New(r.db, r.log, opts)
}

func serve(ctx context.Context) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	if err := database.AutoMigrate(rt.db); err != nil {
		return err
	}

	store := rt.openCache(ctx)
	deps := server.Deps{
		Config:   rt.cfg,
		DB:       rt.db,
		Logger:   rt.log,
		Services: rt.services(store),
	}
	if store != nil {
		defer store.Close()
		deps.Cache = store
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Registry = registry

	app := server.New(deps)

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		rt.log.Info("gracefully shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			rt.log.Error("shutdown", zap.Error(err))
		}
	}()

	rt.log.Info("starting server", zap.String("port", rt.cfg.Port), zap.String("env", rt.cfg.AppEnv))
	if err := app.Listen(":" + rt.cfg.Port); err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	rt.log.Info("server stopped")
	return nil
}

func migrate() error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	if err := database.AutoMigrate(rt.db); err != nil {
		return err
	}
	rt.log.Info("migrations applied", zap.Int("models", len(database.Models())))
	return nil
}

func seed(ctx context.Context) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	if err := database.AutoMigrate(rt.db); err != nil {
		return err
	}

	fixtures, err := fs.Sub(data.Seed, "seed")
	if err != nil {
		return err
	}

	store := rt.openCache(ctx)
	if store != nil {
		defer store.Close()
	}

	seeder := services.NewSeeder(rt.services(store), rt.db, fixtures, rt.log)
	if err := seeder.Run(ctx, services.SeedOptions{
		AdminEmail:    rt.cfg.SeedAdminEmail,
		AdminPassword: rt.cfg.SeedAdminPassword,
	}); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	rt.log.Info("seed complete")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}

	rootCmd := &cobra.Command{
		Use:           "inventory",
		Short:         "School inventory service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}
	rootCmd.AddCommand(
		serveCmd,
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(_ *cobra.Command, _ []string) error {
				return migrate()
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load departments, locations, item types and sample assets",
			Long:  `Seeding is idempotent: rows that already exist are matched by their natural key and left alone.`,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return seed(cmd.Context())
			},
		},
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
