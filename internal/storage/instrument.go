package storage

import (
	"log"
	"time"

	"mealpal/internal/metrics"
	"mealpal/internal/weekplan"
)

// Recorder receives one metric per store operation.
type Recorder interface {
	Record(m metrics.OperationMetric) error
}

type instrumentedStore struct {
	next    PlanStore
	backend string
	rec     Recorder
}

// Instrument wraps store so every Load and Save is reported to rec.
// A failure to record is logged and never fails the operation itself.
func Instrument(store PlanStore, backend string, rec Recorder) PlanStore {
	return &instrumentedStore{next: store, backend: backend, rec: rec}
}

func (s *instrumentedStore) Load() (weekplan.MealPlan, error) {
	start := time.Now()
	plan, err := s.next.Load()
	s.record(metrics.OpLoad, start, err)
	return plan, err
}

func (s *instrumentedStore) Save(plan weekplan.MealPlan) error {
	start := time.Now()
	err := s.next.Save(plan)
	s.record(metrics.OpSave, start, err)
	return err
}

func (s *instrumentedStore) record(op string, start time.Time, err error) {
	m := metrics.NewOperationMetric(op, s.backend, time.Since(start), err)
	if recErr := s.rec.Record(m); recErr != nil {
		log.Printf("Failed to record %s metric: %v", op, recErr)
	}
}
