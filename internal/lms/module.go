package lms

import (
	"context"
	"fmt"
	"time"
)

func addModule(ctx context.Context, q querier, m *Module) error {
	now := time.Now()
	result, err := q.ExecContext(ctx, `
		INSERT INTO course_modules (course_id, module, idnumber, name, added_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.CourseID, m.Module, m.IDNumber, m.Name, now,
	)
	if err != nil {
		return fmt.Errorf("insert module: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	m.ID = id
	m.AddedAt = now
	return nil
}

// AddModule attaches an activity to a course.
// Returns ErrConstraint if the course does not exist.
func (s *Store) AddModule(ctx context.Context, m *Module) error { return addModule(ctx, s.db, m) }

// AddModule attaches an activity to a course within a transaction.
func (t *Tx) AddModule(ctx context.Context, m *Module) error { return addModule(ctx, t.tx, m) }

// PageForCourse returns the page activity of course whose idnumber equals
// the course's own idnumber. The first such page wins.
// Returns ErrNotFound if the course has no matching page.
func (s *Store) PageForCourse(ctx context.Context, course *Course) (*Module, error) {
	m := &Module{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, course_id, module, idnumber, name, added_at
		FROM course_modules
		WHERE course_id = ? AND module = ? AND idnumber = ?
		ORDER BY id LIMIT 1`,
		course.ID, ModulePage, course.IDNumber,
	).Scan(&m.ID, &m.CourseID, &m.Module, &m.IDNumber, &m.Name, &m.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("get page for course %d: %w", course.ID, mapSQLiteError(err))
	}
	return m, nil
}
