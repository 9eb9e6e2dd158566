package storage

import (
	"errors"
	"testing"

	"mealpal/internal/metrics"
	"mealpal/internal/weekplan"
)

type recordingRecorder struct {
	metrics []metrics.OperationMetric
	err     error
}

func (r *recordingRecorder) Record(m metrics.OperationMetric) error {
	r.metrics = append(r.metrics, m)
	return r.err
}

type failingStore struct{}

func (failingStore) Load() (weekplan.MealPlan, error) { return nil, errors.New("disk on fire") }
func (failingStore) Save(weekplan.MealPlan) error     { return errors.New("disk on fire") }

func TestInstrument(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		rec := &recordingRecorder{}
		store := Instrument(NewFileStore(t.TempDir()+"/"+DefaultPlanFile), "file", rec)

		if err := store.Save(weekplan.New()); err != nil {
			t.Fatalf("Failed to save plan: %v", err)
		}
		if _, err := store.Load(); err != nil {
			t.Fatalf("Failed to load plan: %v", err)
		}

		if len(rec.metrics) != 2 {
			t.Fatalf("Expected 2 metrics, got %d", len(rec.metrics))
		}
		if rec.metrics[0].Operation != metrics.OpSave || rec.metrics[1].Operation != metrics.OpLoad {
			t.Errorf("Expected save then load, got %s then %s", rec.metrics[0].Operation, rec.metrics[1].Operation)
		}
		for _, m := range rec.metrics {
			if !m.Succeeded || m.Backend != "file" {
				t.Errorf("Expected a successful file operation, got %+v", m)
			}
		}
	})

	t.Run("Failure", func(t *testing.T) {
		rec := &recordingRecorder{}
		store := Instrument(failingStore{}, "file", rec)

		if _, err := store.Load(); err == nil {
			t.Fatal("Expected the wrapped error, got nil")
		}
		if len(rec.metrics) != 1 || rec.metrics[0].Succeeded {
			t.Errorf("Expected one failed metric, got %+v", rec.metrics)
		}
	})

	t.Run("RecorderError", func(t *testing.T) {
		rec := &recordingRecorder{err: errors.New("metrics unavailable")}
		store := Instrument(NewFileStore(t.TempDir()+"/"+DefaultPlanFile), "file", rec)

		if err := store.Save(weekplan.New()); err != nil {
			t.Errorf("Expected a recorder failure not to fail Save, got %v", err)
		}
	})
}
