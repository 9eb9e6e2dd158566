package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mealpal/internal/weekplan"
)

// SQLStore keeps a meal plan in the SQLite schema created by the database package.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore creates a new SQLStore.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Load rebuilds the stored plan. Before the first Save it returns a fresh week.
func (s *SQLStore) Load() (weekplan.MealPlan, error) {
	ctx := context.Background()

	var stored int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM plan_meta WHERE id = 1`).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return weekplan.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read plan metadata: %w", err)
	}

	plan := weekplan.MealPlan{}
	dayRows, err := s.db.QueryContext(ctx, `SELECT day FROM plan_days ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan days: %w", err)
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var day string
		if err := dayRows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan plan day: %w", err)
		}
		plan[day] = []string{}
	}
	if err := dayRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plan days: %w", err)
	}

	mealRows, err := s.db.QueryContext(ctx, `SELECT day, meal FROM plan_meals ORDER BY day, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan meals: %w", err)
	}
	defer mealRows.Close()
	for mealRows.Next() {
		var day, meal string
		if err := mealRows.Scan(&day, &meal); err != nil {
			return nil, fmt.Errorf("failed to scan plan meal: %w", err)
		}
		if _, ok := plan[day]; !ok {
			return nil, fmt.Errorf("%w: meal %q references unknown day %q", ErrMalformedPlan, meal, day)
		}
		plan[day] = append(plan[day], meal)
	}
	if err := mealRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plan meals: %w", err)
	}

	return plan, nil
}

// Save replaces the stored plan in a single transaction.
func (s *SQLStore) Save(plan weekplan.MealPlan) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM plan_meals`, `DELETE FROM plan_days`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear stored plan: %w", err)
		}
	}

	for i, day := range weekplan.Days(plan) {
		if _, err := tx.ExecContext(ctx, `INSERT INTO plan_days (day, position) VALUES (?, ?)`, day, i); err != nil {
			return fmt.Errorf("failed to insert day %s: %w", day, err)
		}
		for j, meal := range plan[day] {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO plan_meals (day, position, meal) VALUES (?, ?, ?)`, day, j, meal); err != nil {
				return fmt.Errorf("failed to insert meal for %s: %w", day, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO plan_meta (id, saved_at) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at`,
		time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to update plan metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit meal plan: %w", err)
	}
	return nil
}
