package lms

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmunix/pagecomplete/internal/migrations"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err, "open db")
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Apply(db), "apply schema")
	return db
}

func mustAddCourse(t *testing.T, s *Store, idnumber, fullname string) *Course {
	t.Helper()
	c := &Course{IDNumber: idnumber, ShortName: idnumber, FullName: fullname}
	require.NoError(t, s.AddCourse(context.Background(), c))
	return c
}

func mustAddUser(t *testing.T, s *Store, username string) *User {
	t.Helper()
	u := &User{Username: username}
	require.NoError(t, s.AddUser(context.Background(), u))
	return u
}

func addPage(t *testing.T, s *Store, c *Course, idnumber string) *Module {
	t.Helper()
	m := &Module{CourseID: c.ID, Module: ModulePage, IDNumber: idnumber, Name: "Page " + idnumber}
	require.NoError(t, s.AddModule(context.Background(), m))
	return m
}
