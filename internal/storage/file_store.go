package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"mealpal/internal/weekplan"
)

// DefaultPlanFile is the file name used when no path is configured.
const DefaultPlanFile = "week_plan.json"

// FileStore keeps a meal plan in a single JSON file.
type FileStore struct {
	path   string
	atomic bool
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithAtomicWrites makes Save write to a temporary file and rename it over the
// plan file, so a crash never leaves a truncated plan behind.
func WithAtomicWrites() FileOption {
	return func(s *FileStore) {
		s.atomic = true
	}
}

// NewFileStore creates a FileStore for the plan file at path.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the plan file. A missing file yields a fresh week. A missing
// parent directory, permission problems and malformed content are errors.
func (s *FileStore) Load() (weekplan.MealPlan, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if _, dirErr := os.Stat(filepath.Dir(s.path)); dirErr != nil {
				return nil, fmt.Errorf("failed to open meal plan directory: %w", dirErr)
			}
			return weekplan.New(), nil
		}
		return nil, fmt.Errorf("failed to read meal plan file %s: %w", s.path, err)
	}

	var plan weekplan.MealPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPlan, s.path, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: %s: not a JSON object", ErrMalformedPlan, s.path)
	}
	return plan, nil
}

// Save overwrites the plan file with plan, indented by four spaces.
func (s *FileStore) Save(plan weekplan.MealPlan) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("failed to marshal meal plan: %w", err)
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	if s.atomic {
		return s.writeAtomic(data)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write meal plan file: %w", err)
	}
	return nil
}

func (s *FileStore) writeAtomic(data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary meal plan file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace meal plan file: %w", err)
	}
	return nil
}
