package events

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmunix/pagecomplete/internal/migrations"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, migrations.Apply(db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type testEvent struct {
	BaseEvent
	Message string `json:"message"`
}

func newTestEvent(eventType string, id int64) *testEvent {
	return &testEvent{BaseEvent: NewBaseEvent(eventType, EntityImport, id), Message: "hello"}
}
