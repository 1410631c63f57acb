package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port     string
	AppEnv   string
	LogLevel string

	// Database configuration
	DBType            string // postgres, mysql, sqlite, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBSlowThreshold   time.Duration

	// Auth configuration
	JWTSecret string
	JWTTTL    time.Duration

	// HTTP edge
	CORSOrigins     string
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Dashboard cache; empty RedisURL disables it
	RedisURL string
	CacheTTL time.Duration

	// Seeder
	SeedAdminEmail    string
	SeedAdminPassword string
}

// Load loads configuration from environment variables, reading a .env file
// first when one exists. Variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "5000"),
		AppEnv:            getEnv("APP_ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DBType:            strings.ToLower(getEnv("DB_TYPE", "postgres")),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		DBMaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DBSlowThreshold:   time.Duration(getEnvAsInt("DB_SLOW_THRESHOLD_MS", 200)) * time.Millisecond,
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTTTL:            getEnvAsDuration("JWT_TTL", 7*24*time.Hour),
		CORSOrigins:       getEnv("CORS_ORIGINS", "http://localhost:3000"),
		RateLimitMax:      getEnvAsInt("RATE_LIMIT_MAX", 300),
		RateLimitWindow:   getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		RedisURL:          getEnv("REDIS_URL", ""),
		CacheTTL:          getEnvAsDuration("CACHE_TTL", time.Minute),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@school.local"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses values such as "90s" or "12h"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
