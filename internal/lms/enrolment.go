package lms

import (
	"context"
	"fmt"
	"time"
)

// Enrol enrols a user in a course with the given role.
// Enrolling an already-enrolled user changes nothing and reports false.
func (s *Store) Enrol(ctx context.Context, courseID, userID, roleID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO enrolments (course_id, user_id, role_id, enrolled_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (course_id, user_id) DO NOTHING`,
		courseID, userID, roleID, time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("enrol user %d in course %d: %w", userID, courseID, mapSQLiteError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

// GetEnrolment returns the enrolment of a user in a course.
// Returns ErrNotFound if the user is not enrolled.
func (s *Store) GetEnrolment(ctx context.Context, courseID, userID int64) (*Enrolment, error) {
	e := &Enrolment{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, course_id, user_id, role_id, enrolled_at
		FROM enrolments WHERE course_id = ? AND user_id = ?`,
		courseID, userID,
	).Scan(&e.ID, &e.CourseID, &e.UserID, &e.RoleID, &e.EnrolledAt)
	if err != nil {
		return nil, fmt.Errorf("get enrolment: %w", mapSQLiteError(err))
	}
	return e, nil
}
