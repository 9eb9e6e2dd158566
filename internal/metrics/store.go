package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Store operation names.
const (
	OpLoad = "load"
	OpSave = "save"
)

// OperationMetric records metadata for a single plan store operation.
type OperationMetric struct {
	Operation string
	Backend   string
	Succeeded bool
	LatencyMS int64
	Timestamp time.Time
}

// NewOperationMetric builds a metric for an operation that took latency and ended with err.
func NewOperationMetric(op, backend string, latency time.Duration, err error) OperationMetric {
	return OperationMetric{
		Operation: op,
		Backend:   backend,
		Succeeded: err == nil,
		LatencyMS: latency.Milliseconds(),
		Timestamp: time.Now().UTC(),
	}
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(m OperationMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO store_operations (operation, backend, succeeded, latency_ms, timestamp) VALUES (?, ?, ?, ?, ?)`,
		m.Operation, m.Backend, m.Succeeded, m.LatencyMS, ts.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert store operation metric: %w", err)
	}
	return nil
}

// OperationSummary aggregates the recorded calls of one operation.
type OperationSummary struct {
	Operation    string
	Count        int
	Failures     int
	AvgLatencyMS float64
}

// Summary returns per-operation totals for the last N days.
func (s *Store) Summary(days int) ([]OperationSummary, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(context.Background(), `
		SELECT operation,
		       COUNT(*),
		       SUM(CASE WHEN succeeded THEN 0 ELSE 1 END),
		       AVG(latency_ms)
		FROM store_operations
		WHERE timestamp >= ?
		GROUP BY operation
		ORDER BY operation`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query store operation summary: %w", err)
	}
	defer rows.Close()

	var results []OperationSummary
	for rows.Next() {
		var (
			u   OperationSummary
			avg sql.NullFloat64
		)
		if err := rows.Scan(&u.Operation, &u.Count, &u.Failures, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan store operation summary: %w", err)
		}
		if avg.Valid {
			u.AvgLatencyMS = avg.Float64
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	res, err := s.db.ExecContext(context.Background(),
		`DELETE FROM store_operations WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up store operation metrics: %w", err)
	}
	return res.RowsAffected()
}
