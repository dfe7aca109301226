package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/duartefn/moneybook/internal/kv"
	"github.com/duartefn/moneybook/internal/kv/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	store, err := sqlite.New(db)
	require.NoError(t, err)

	return store
}

func TestStore_PutGet(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, store.Put(ctx, "accounts-alice", []byte(`[{"id":"1"}]`)))

	got, err := store.Get(ctx, "accounts-alice")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), got)

	// Overwrite replaces the whole value.
	require.NoError(t, store.Put(ctx, "accounts-alice", []byte(`[]`)))

	got, err = store.Get(ctx, "accounts-alice")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestStore_Delete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "backup-alice", []byte(`{}`)))
	require.NoError(t, store.Delete(ctx, "backup-alice"))

	_, err := store.Get(ctx, "backup-alice")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, "backup-alice"))
}

func TestStore_List(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "accounts-alice", []byte(`[]`)))
	require.NoError(t, store.Put(ctx, "accounts-bob", []byte(`[]`)))
	require.NoError(t, store.Put(ctx, "users", []byte(`{}`)))

	got, err := store.List(ctx, "accounts-")
	require.NoError(t, err)

	assert.Len(t, got, 2)
	assert.Contains(t, got, "accounts-alice")
	assert.Contains(t, got, "accounts-bob")
}
