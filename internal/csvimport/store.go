package csvimport

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SessionInfo describes a persisted import session without its rows.
type SessionInfo struct {
	ID        int64
	Type      string
	Encoding  string
	Delimiter string
	Headers   []string
	RowCount  int
	CreatedAt time.Time
	StartedAt *time.Time
}

// Started reports whether the session was claimed for execution.
func (s *SessionInfo) Started() bool { return s.StartedAt != nil }

// SessionStore keeps tokenized uploads between the preview and execute
// phases. Rows are stored as raw cells so they can be re-mapped on reopen.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a session store.
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Create persists headers and rows under a new import id.
func (s *SessionStore) Create(ctx context.Context, importType, encoding, delimiter string, headers []string, rows [][]string) (int64, error) {
	headerJSON, err := json.Marshal(headers)
	if err != nil {
		return 0, fmt.Errorf("marshal headers: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO import_sessions (type, encoding, delimiter, headers, row_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		importType, encoding, delimiter, string(headerJSON), len(rows), time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO import_rows (session_id, line, cells) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare row insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, cells := range rows {
		data, err := json.Marshal(cells)
		if err != nil {
			return 0, fmt.Errorf("marshal row %d: %w", i+1, err)
		}
		if _, err := stmt.ExecContext(ctx, id, i+1, string(data)); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit session: %w", err)
	}
	return id, nil
}

const sessionColumns = `id, type, encoding, delimiter, headers, row_count, created_at, started_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(sc rowScanner) (*SessionInfo, error) {
	var (
		info    SessionInfo
		headers string
		started sql.NullTime
	)
	if err := sc.Scan(&info.ID, &info.Type, &info.Encoding, &info.Delimiter, &headers,
		&info.RowCount, &info.CreatedAt, &started); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(headers), &info.Headers); err != nil {
		return nil, fmt.Errorf("decode headers of session %d: %w", info.ID, err)
	}
	if started.Valid {
		t := started.Time
		info.StartedAt = &t
	}
	return &info, nil
}

// Get returns session metadata.
func (s *SessionStore) Get(ctx context.Context, id int64) (*SessionInfo, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM import_sessions WHERE id = ?`, id)
	info, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	return info, nil
}

// Open returns session metadata and its rows in line order.
func (s *SessionStore) Open(ctx context.Context, id int64) (*SessionInfo, [][]string, error) {
	info, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT cells FROM import_rows WHERE session_id = ? ORDER BY line`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("query rows of session %d: %w", id, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([][]string, 0, info.RowCount)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, nil, fmt.Errorf("scan row: %w", err)
		}
		var cells []string
		if err := json.Unmarshal([]byte(data), &cells); err != nil {
			return nil, nil, fmt.Errorf("decode row of session %d: %w", id, err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate rows: %w", err)
	}
	return info, out, nil
}

// MarkStarted claims the session for execution. Only the first claim succeeds.
func (s *SessionStore) MarkStarted(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE import_sessions SET started_at = ? WHERE id = ? AND started_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("mark session %d started: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 1 {
		return nil
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("%w: %d", ErrSessionStarted, id)
}

// ReleaseStarted drops the execution claim so the session can be executed
// again. Releasing an unclaimed session is a no-op.
func (s *SessionStore) ReleaseStarted(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE import_sessions SET started_at = NULL WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("release session %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %d", ErrSessionNotFound, id)
	}
	return nil
}

// Cleanup deletes a session and its rows.
func (s *SessionStore) Cleanup(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM import_rows WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete rows of session %d: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM import_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %d", ErrSessionNotFound, id)
	}
	return tx.Commit()
}

// List returns all sessions, newest first.
func (s *SessionStore) List(ctx context.Context) ([]*SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM import_sessions ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*SessionInfo
	for rows.Next() {
		info, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Prune deletes sessions created more than olderThan ago and returns how
// many were removed.
func (s *SessionStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM import_rows WHERE session_id IN
			(SELECT id FROM import_sessions WHERE created_at < ?)`, cutoff); err != nil {
		return 0, fmt.Errorf("prune rows: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM import_sessions WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit prune: %w", err)
	}
	return n, nil
}
