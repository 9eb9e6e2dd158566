package config

import (
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	// Clear every variable so each subtest starts from the defaults.
	clearEnv := func(t *testing.T) {
		t.Helper()
		for _, key := range []string{
			"MEALPAL_PLAN_PATH", "MEALPAL_BACKEND", "MEALPAL_DB_PATH",
			"MEALPAL_ATOMIC_WRITES", "MEALPAL_METRICS",
		} {
			t.Setenv(key, "")
		}
	}

	t.Run("Defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.PlanPath != "week_plan.json" {
			t.Errorf("Expected PlanPath to be 'week_plan.json', got '%s'", cfg.PlanPath)
		}
		if cfg.Backend != BackendFile {
			t.Errorf("Expected Backend to be '%s', got '%s'", BackendFile, cfg.Backend)
		}
		if cfg.DatabasePath != DefaultDBPath {
			t.Errorf("Expected DatabasePath to be '%s', got '%s'", DefaultDBPath, cfg.DatabasePath)
		}
		if cfg.AtomicWrites || cfg.Metrics {
			t.Errorf("Expected atomic writes and metrics to be off, got %+v", cfg)
		}
		if cfg.NeedsDatabase() {
			t.Error("Expected the file backend without metrics to need no database")
		}
	})

	t.Run("Success", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MEALPAL_PLAN_PATH", "/tmp/plan.json")
		t.Setenv("MEALPAL_BACKEND", "sqlite")
		t.Setenv("MEALPAL_DB_PATH", "/tmp/mealpal.db")
		t.Setenv("MEALPAL_ATOMIC_WRITES", "true")
		t.Setenv("MEALPAL_METRICS", "1")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.PlanPath != "/tmp/plan.json" {
			t.Errorf("Expected PlanPath to be '/tmp/plan.json', got '%s'", cfg.PlanPath)
		}
		if cfg.Backend != BackendSQLite {
			t.Errorf("Expected Backend to be '%s', got '%s'", BackendSQLite, cfg.Backend)
		}
		if cfg.DatabasePath != "/tmp/mealpal.db" {
			t.Errorf("Expected DatabasePath to be '/tmp/mealpal.db', got '%s'", cfg.DatabasePath)
		}
		if !cfg.AtomicWrites || !cfg.Metrics {
			t.Errorf("Expected atomic writes and metrics to be on, got %+v", cfg)
		}
		if !cfg.NeedsDatabase() {
			t.Error("Expected the sqlite backend to need a database")
		}
	})

	t.Run("InvalidBackend", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MEALPAL_BACKEND", "postgres")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for an unknown backend, got nil")
		}
		expectedError := "MEALPAL_BACKEND must be one of file, sqlite"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("InvalidBool", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MEALPAL_ATOMIC_WRITES", "sometimes")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for an invalid boolean, got nil")
		}
		expectedError := `MEALPAL_ATOMIC_WRITES must be a boolean, got "sometimes"`
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})
}
