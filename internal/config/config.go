package config

import (
	"fmt"
	"os"
	"strconv"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Defaults used when the matching environment variable is unset.
const (
	DefaultPlanPath = "week_plan.json"
	DefaultDBPath   = "data/mealpal.db"
)

// Config holds the configuration for the application.
type Config struct {
	PlanPath     string
	Backend      string
	DatabasePath string
	AtomicWrites bool
	Metrics      bool
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	planPath := os.Getenv("MEALPAL_PLAN_PATH")
	if planPath == "" {
		planPath = DefaultPlanPath
	}

	backend := os.Getenv("MEALPAL_BACKEND")
	switch backend {
	case "":
		backend = BackendFile
	case BackendFile, BackendSQLite:
	default:
		return nil, fmt.Errorf("MEALPAL_BACKEND must be one of %s, %s", BackendFile, BackendSQLite)
	}

	dbPath := os.Getenv("MEALPAL_DB_PATH")
	if dbPath == "" {
		dbPath = DefaultDBPath
	}

	atomicWrites, err := boolFromEnv("MEALPAL_ATOMIC_WRITES")
	if err != nil {
		return nil, err
	}

	metricsEnabled, err := boolFromEnv("MEALPAL_METRICS")
	if err != nil {
		return nil, err
	}

	return &Config{
		PlanPath:     planPath,
		Backend:      backend,
		DatabasePath: dbPath,
		AtomicWrites: atomicWrites,
		Metrics:      metricsEnabled,
	}, nil
}

// NeedsDatabase reports whether the configuration requires the SQLite database.
func (c *Config) NeedsDatabase() bool {
	return c.Backend == BackendSQLite || c.Metrics
}

func boolFromEnv(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}
