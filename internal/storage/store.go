// Package storage persists weekly meal plans.
package storage

import (
	"errors"

	"mealpal/internal/weekplan"
)

// ErrMalformedPlan is returned when stored data exists but does not decode as a meal plan.
// This includes valid JSON of the wrong shape, such as a top-level array or a
// day whose meals are numbers or a bare string rather than a list of strings.
var ErrMalformedPlan = errors.New("malformed meal plan")

// PlanStore loads and saves a single weekly meal plan.
type PlanStore interface {
	// Load returns the stored plan, or weekplan.New() when nothing has been stored yet.
	Load() (weekplan.MealPlan, error)
	// Save replaces the stored plan with plan.
	Save(plan weekplan.MealPlan) error
}
