package csvimport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_CreateOpen(t *testing.T) {
	store := NewSessionStore(setupTestDB(t))
	ctx := context.Background()

	rows := [][]string{{"CRS1", "alice"}, {"CRS2", "bob"}}
	id, err := store.Create(ctx, ImportType, "UTF-8", "comma", []string{"c", "u"}, rows)
	require.NoError(t, err)

	info, got, err := store.Open(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	assert.Equal(t, []string{"c", "u"}, info.Headers)
	assert.Equal(t, ImportType, info.Type)
	assert.False(t, info.Started())
	assert.WithinDuration(t, time.Now(), info.CreatedAt, time.Minute)
}

func TestSessionStore_MarkStarted(t *testing.T) {
	store := NewSessionStore(setupTestDB(t))
	ctx := context.Background()

	id, err := store.Create(ctx, ImportType, "UTF-8", "comma", []string{"c", "u"}, [][]string{{"a", "b"}})
	require.NoError(t, err)

	require.NoError(t, store.MarkStarted(ctx, id))
	assert.ErrorIs(t, store.MarkStarted(ctx, id), ErrSessionStarted)
	assert.ErrorIs(t, store.MarkStarted(ctx, id+100), ErrSessionNotFound)

	info, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, info.StartedAt)
}

func TestSessionStore_Cleanup(t *testing.T) {
	db := setupTestDB(t)
	store := NewSessionStore(db)
	ctx := context.Background()

	id, err := store.Create(ctx, ImportType, "UTF-8", "comma", []string{"c", "u"}, [][]string{{"a", "b"}})
	require.NoError(t, err)

	require.NoError(t, store.Cleanup(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, store.Cleanup(ctx, id), ErrSessionNotFound)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM import_rows`).Scan(&n))
	assert.Zero(t, n)
}

func TestSessionStore_ListAndPrune(t *testing.T) {
	db := setupTestDB(t)
	store := NewSessionStore(db)
	ctx := context.Background()

	oldID, err := store.Create(ctx, ImportType, "UTF-8", "comma", []string{"c", "u"}, [][]string{{"a", "b"}})
	require.NoError(t, err)
	newID, err := store.Create(ctx, ImportType, "UTF-8", "comma", []string{"c", "u"}, [][]string{{"a", "b"}})
	require.NoError(t, err)

	_, err = db.Exec(`UPDATE import_sessions SET created_at = ? WHERE id = ?`, time.Now().Add(-100*time.Hour), oldID)
	require.NoError(t, err)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newID, list[0].ID)

	n, err := store.Prune(ctx, 72*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, newID, list[0].ID)
}

func TestSessionStore_ReleaseStarted(t *testing.T) {
	store := NewSessionStore(setupTestDB(t))
	ctx := context.Background()

	id, err := store.Create(ctx, ImportType, "UTF-8", "comma", []string{"c", "u"}, [][]string{{"a", "b"}})
	require.NoError(t, err)

	require.NoError(t, store.MarkStarted(ctx, id))
	require.NoError(t, store.ReleaseStarted(ctx, id))

	info, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, info.Started())

	require.NoError(t, store.MarkStarted(ctx, id), "released session can be claimed again")
	require.NoError(t, store.ReleaseStarted(ctx, id))
	require.NoError(t, store.ReleaseStarted(ctx, id), "releasing twice is a no-op")
	assert.ErrorIs(t, store.ReleaseStarted(ctx, id+100), ErrSessionNotFound)
}
