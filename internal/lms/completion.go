package lms

import (
	"context"
	"fmt"
	"time"
)

func getCompletion(ctx context.Context, q querier, moduleID, userID int64) (*Completion, error) {
	c := &Completion{}
	err := q.QueryRowContext(ctx, `
		SELECT id, module_id, user_id, viewed, updated_at
		FROM completions WHERE module_id = ? AND user_id = ?`,
		moduleID, userID,
	).Scan(&c.ID, &c.ModuleID, &c.UserID, &c.Viewed, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get completion: %w", mapSQLiteError(err))
	}
	return c, nil
}

// GetCompletion returns the stored completion state of a module for a user.
// Returns ErrNotFound if nothing has been recorded yet.
func (s *Store) GetCompletion(ctx context.Context, moduleID, userID int64) (*Completion, error) {
	return getCompletion(ctx, s.db, moduleID, userID)
}

// GetCompletion returns the completion state within a transaction.
func (t *Tx) GetCompletion(ctx context.Context, moduleID, userID int64) (*Completion, error) {
	return getCompletion(ctx, t.tx, moduleID, userID)
}

func setViewed(ctx context.Context, q querier, moduleID, userID int64) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO completions (module_id, user_id, viewed, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT (module_id, user_id) DO UPDATE SET viewed = 1, updated_at = excluded.updated_at`,
		moduleID, userID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set viewed: %w", mapSQLiteError(err))
	}
	return nil
}

// MarkViewed reads the completion state of a module for a user and, unless
// it is already viewed, records it as viewed. Read and write happen in one
// transaction. Viewed is monotonic: nothing ever clears it.
func (s *Store) MarkViewed(ctx context.Context, moduleID, userID int64) (ViewResult, error) {
	tx, err := s.Begin(ctx)
	if err != nil {
		return AlreadyViewed, err
	}
	defer func() { _ = tx.Rollback() }()

	current, err := tx.GetCompletion(ctx, moduleID, userID)
	switch {
	case err == nil && current.Viewed:
		return AlreadyViewed, nil
	case err != nil && !isNotFound(err):
		return AlreadyViewed, err
	}

	if err := setViewed(ctx, tx.tx, moduleID, userID); err != nil {
		return AlreadyViewed, err
	}
	if err := tx.Commit(); err != nil {
		return AlreadyViewed, fmt.Errorf("commit: %w", err)
	}
	return NewlyViewed, nil
}
