package importer

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Run is the recorded summary of one executed import.
type Run struct {
	ID         int64     `json:"id"`
	ImportID   int64     `json:"import_id"`
	Total      int       `json:"total"`
	Added      int       `json:"added"`
	Skipped    int       `json:"skipped"`
	Errors     int       `json:"errors"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	ImportID *int64
	Limit    int
}

// HistoryStore persists import runs. Runs outlive their sessions.
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore creates a history store.
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Add inserts a run and sets its ID.
func (s *HistoryStore) Add(ctx context.Context, r *Run) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO import_runs (session_id, total, added, skipped, errors, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ImportID, r.Total, r.Added, r.Skipped, r.Errors, r.StartedAt, r.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	r.ID = id
	return nil
}

// Get returns the latest run of an import.
func (s *HistoryStore) Get(ctx context.Context, importID int64) (*Run, error) {
	runs, err := s.List(ctx, RunFilter{ImportID: &importID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, importID)
	}
	return runs[0], nil
}

// List returns runs matching the filter, most recent first.
func (s *HistoryStore) List(ctx context.Context, f RunFilter) ([]*Run, error) {
	query := `SELECT id, session_id, total, added, skipped, errors, started_at, finished_at FROM import_runs`
	var args []any
	if f.ImportID != nil {
		query += " WHERE session_id = ?"
		args = append(args, *f.ImportID)
	}
	query += " ORDER BY id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Run
	for rows.Next() {
		r := &Run{}
		if err := rows.Scan(&r.ID, &r.ImportID, &r.Total, &r.Added, &r.Skipped, &r.Errors, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return results, nil
}
