package importer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryStore_AddList(t *testing.T) {
	store := NewHistoryStore(setupTestDB(t))
	ctx := context.Background()
	now := time.Now()

	for _, id := range []int64{1, 2, 1} {
		r := &Run{ImportID: id, Total: 3, Added: 1, Skipped: 1, Errors: 1, StartedAt: now, FinishedAt: now}
		require.NoError(t, store.Add(ctx, r))
		assert.NotZero(t, r.ID)
	}

	all, err := store.List(ctx, RunFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Greater(t, all[0].ID, all[1].ID, "most recent first")

	id := int64(1)
	runs, err := store.List(ctx, RunFilter{ImportID: &id})
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	limited, err := store.List(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestHistoryStore_Get(t *testing.T) {
	store := NewHistoryStore(setupTestDB(t))
	ctx := context.Background()

	_, err := store.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrRunNotFound)

	require.NoError(t, store.Add(ctx, &Run{ImportID: 42, Total: 1, Added: 1, StartedAt: time.Now(), FinishedAt: time.Now()}))
	r, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Added)
}
