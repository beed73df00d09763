package csvimport

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmunix/pagecomplete/internal/migrations"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, migrations.Apply(db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestParser(t *testing.T) (*Parser, *SessionStore) {
	t.Helper()
	store := NewSessionStore(setupTestDB(t))
	return NewParser(store, 0, nil), store
}

func parseString(t *testing.T, p *Parser, text string, opts Options) (*Session, error) {
	t.Helper()
	return p.Parse(context.Background(), strings.NewReader(text), opts)
}
