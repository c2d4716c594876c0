package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverAuto     = "auto"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config contains all runtime settings for the task API server.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string
	CORSOrigin       string
	Debug            bool

	StoreDriver       string
	DatabaseURL       string
	SQLitePath        string
	DBConnectAttempts int
}

// Load reads environment variables and applies defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:          envOrDefault("APP_BIND_ADDR", ":8000"),
		MetricsNamespace:  envOrDefault("APP_METRICS_NAMESPACE", "taskboard"),
		CORSOrigin:        envOrDefault("APP_CORS_ORIGIN", "http://localhost:3000"),
		StoreDriver:       strings.ToLower(envOrDefault("STORE_DRIVER", DriverAuto)),
		DatabaseURL:       envOrDefault("DATABASE_URL", ""),
		SQLitePath:        envOrDefault("SQLITE_PATH", "tasks.db"),
		DBConnectAttempts: 30,
		ShutdownTimeout:   15 * time.Second,
	}
	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.Debug, err = boolFromEnv("APP_DEBUG", cfg.Debug)
	if err != nil {
		return Config{}, err
	}
	cfg.DBConnectAttempts, err = intFromEnv("DB_CONNECT_ATTEMPTS", cfg.DBConnectAttempts)
	if err != nil {
		return Config{}, err
	}
	if cfg.DBConnectAttempts < 1 {
		return Config{}, fmt.Errorf("DB_CONNECT_ATTEMPTS must be at least 1, got %d", cfg.DBConnectAttempts)
	}

	switch cfg.StoreDriver {
	case DriverAuto:
		cfg.StoreDriver = DriverMemory
		if cfg.DatabaseURL != "" {
			cfg.StoreDriver = DriverPostgres
		}
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("STORE_DRIVER=postgres requires DATABASE_URL")
		}
	case DriverSQLite, DriverMemory:
	default:
		return Config{}, fmt.Errorf("invalid STORE_DRIVER: %q (expected auto|postgres|sqlite|memory)", cfg.StoreDriver)
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
