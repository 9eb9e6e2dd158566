package app

import (
	"errors"
	"fmt"
	"log"

	"mealpal/internal/config"
	"mealpal/internal/database"
	"mealpal/internal/metrics"
	"mealpal/internal/storage"
	"mealpal/internal/weekplan"
)

// ErrMetricsDisabled is returned by the metrics operations when MEALPAL_METRICS is off.
var ErrMetricsDisabled = errors.New("metrics are disabled; set MEALPAL_METRICS=true")

// App holds the application's dependencies.
type App struct {
	cfg          *config.Config
	store        storage.PlanStore
	metricsStore *metrics.Store
	db           *database.DB
}

// NewApp creates an App around an already constructed store. metricsStore may be nil.
func NewApp(cfg *config.Config, store storage.PlanStore, metricsStore *metrics.Store) *App {
	return &App{
		cfg:          cfg,
		store:        store,
		metricsStore: metricsStore,
	}
}

// Open builds the plan store selected by cfg, opening the SQLite database when
// the backend or metrics need it.
func Open(cfg *config.Config) (*App, error) {
	var db *database.DB
	if cfg.NeedsDatabase() {
		var err error
		db, err = database.NewDB(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	var store storage.PlanStore
	switch cfg.Backend {
	case config.BackendSQLite:
		store = storage.NewSQLStore(db.SQL)
	default:
		var opts []storage.FileOption
		if cfg.AtomicWrites {
			opts = append(opts, storage.WithAtomicWrites())
		}
		store = storage.NewFileStore(cfg.PlanPath, opts...)
	}

	var metricsStore *metrics.Store
	if cfg.Metrics {
		metricsStore = metrics.NewStore(db.SQL)
		store = storage.Instrument(store, cfg.Backend, metricsStore)
	}

	a := NewApp(cfg, store, metricsStore)
	a.db = db
	return a, nil
}

// Close releases the database connection, if one was opened.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Show loads the current plan.
func (a *App) Show() (weekplan.MealPlan, error) {
	plan, err := a.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load meal plan: %w", err)
	}
	return plan, nil
}

// AddMeal appends meal to day and saves the plan.
func (a *App) AddMeal(day, meal string) (weekplan.MealPlan, error) {
	plan, err := a.Show()
	if err != nil {
		return nil, err
	}
	day = weekplan.CanonicalDay(plan, day)
	plan = weekplan.AddMeal(plan, day, meal)
	if err := a.save(plan); err != nil {
		return nil, err
	}
	log.Printf("Added %q to %s", meal, day)
	return plan, nil
}

// RemoveMeal removes the meal at index on day and saves the plan.
func (a *App) RemoveMeal(day string, index int) (weekplan.MealPlan, error) {
	plan, err := a.Show()
	if err != nil {
		return nil, err
	}
	day = weekplan.CanonicalDay(plan, day)
	plan, err = weekplan.RemoveMeal(plan, day, index)
	if err != nil {
		return nil, err
	}
	if err := a.save(plan); err != nil {
		return nil, err
	}
	log.Printf("Removed meal #%d from %s", index, day)
	return plan, nil
}

// Reset clears every day of the stored plan, keeping its days, and saves it.
func (a *App) Reset() (weekplan.MealPlan, error) {
	plan, err := a.Show()
	if err != nil {
		return nil, err
	}
	plan = weekplan.Reset(plan)
	if err := a.save(plan); err != nil {
		return nil, err
	}
	log.Printf("Reset meal plan (%d days)", len(plan))
	return plan, nil
}

// Status reports process health and the size of the stored data.
func (a *App) Status() metrics.SysHealth {
	if a.cfg.NeedsDatabase() {
		return metrics.GetSysHealth(a.cfg.PlanPath, a.cfg.DatabasePath)
	}
	return metrics.GetSysHealth(a.cfg.PlanPath)
}

// MetricsSummary returns store operation totals for the last N days.
func (a *App) MetricsSummary(days int) ([]metrics.OperationSummary, error) {
	if a.metricsStore == nil {
		return nil, ErrMetricsDisabled
	}
	return a.metricsStore.Summary(days)
}

// CleanupMetrics removes store operation records older than N days.
func (a *App) CleanupMetrics(days int) (int64, error) {
	if a.metricsStore == nil {
		return 0, ErrMetricsDisabled
	}
	return a.metricsStore.Cleanup(days)
}

func (a *App) save(plan weekplan.MealPlan) error {
	if err := a.store.Save(plan); err != nil {
		return fmt.Errorf("failed to save meal plan: %w", err)
	}
	return nil
}
