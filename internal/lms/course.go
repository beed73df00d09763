package lms

import (
	"context"
	"fmt"
	"time"
)

const courseColumns = "id, idnumber, shortname, fullname, created_at"

func addCourse(ctx context.Context, q querier, c *Course) error {
	now := time.Now()
	result, err := q.ExecContext(ctx, `
		INSERT INTO courses (idnumber, shortname, fullname, created_at)
		VALUES (?, ?, ?, ?)`,
		c.IDNumber, c.ShortName, c.FullName, now,
	)
	if err != nil {
		return fmt.Errorf("insert course: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	c.ID = id
	c.CreatedAt = now
	return nil
}

// AddCourse inserts a course. Sets ID and CreatedAt on the struct.
func (s *Store) AddCourse(ctx context.Context, c *Course) error { return addCourse(ctx, s.db, c) }

// AddCourse inserts a course within a transaction.
func (t *Tx) AddCourse(ctx context.Context, c *Course) error { return addCourse(ctx, t.tx, c) }

// GetCourse retrieves a course by internal ID.
// Returns ErrNotFound if the course does not exist.
func (s *Store) GetCourse(ctx context.Context, id int64) (*Course, error) {
	c := &Course{}
	err := s.db.QueryRowContext(ctx, "SELECT "+courseColumns+" FROM courses WHERE id = ?", id).
		Scan(&c.ID, &c.IDNumber, &c.ShortName, &c.FullName, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get course %d: %w", id, mapSQLiteError(err))
	}
	return c, nil
}

func coursesByIDNumber(ctx context.Context, q querier, idnumber string) ([]*Course, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+courseColumns+" FROM courses WHERE idnumber = ? ORDER BY id", idnumber)
	if err != nil {
		return nil, fmt.Errorf("list courses by idnumber: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Course
	for rows.Next() {
		c := &Course{}
		if err := rows.Scan(&c.ID, &c.IDNumber, &c.ShortName, &c.FullName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return results, nil
}

// CoursesByIDNumber returns every course carrying idnumber, lowest ID first.
// The caller decides what more than one match means.
func (s *Store) CoursesByIDNumber(ctx context.Context, idnumber string) ([]*Course, error) {
	return coursesByIDNumber(ctx, s.db, idnumber)
}

// CoursesByIDNumber returns every course carrying idnumber within a transaction.
func (t *Tx) CoursesByIDNumber(ctx context.Context, idnumber string) ([]*Course, error) {
	return coursesByIDNumber(ctx, t.tx, idnumber)
}
