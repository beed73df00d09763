package lms

import (
	"context"
	"fmt"
	"time"
)

func addUser(ctx context.Context, q querier, u *User) error {
	now := time.Now()
	result, err := q.ExecContext(ctx, `
		INSERT INTO users (username, firstname, lastname, email, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.Username, u.FirstName, u.LastName, u.Email, now,
	)
	if err != nil {
		return fmt.Errorf("insert user %q: %w", u.Username, mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	u.ID = id
	u.CreatedAt = now
	return nil
}

// AddUser inserts a user. Returns ErrDuplicate if the username is taken.
func (s *Store) AddUser(ctx context.Context, u *User) error { return addUser(ctx, s.db, u) }

// AddUser inserts a user within a transaction.
func (t *Tx) AddUser(ctx context.Context, u *User) error { return addUser(ctx, t.tx, u) }

// UserByUsername looks a user up by exact username.
// Returns ErrNotFound if no user has that username.
func (s *Store) UserByUsername(ctx context.Context, username string) (*User, error) {
	u := &User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, firstname, lastname, email, created_at
		FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, mapSQLiteError(err))
	}
	return u, nil
}

// RoleByShortName looks a role up by its short name (e.g. "student").
func (s *Store) RoleByShortName(ctx context.Context, shortname string) (*Role, error) {
	r := &Role{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, shortname, name FROM roles WHERE shortname = ?", shortname,
	).Scan(&r.ID, &r.ShortName, &r.Name)
	if err != nil {
		return nil, fmt.Errorf("get role %q: %w", shortname, mapSQLiteError(err))
	}
	return r, nil
}
