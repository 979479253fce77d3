package stores

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spruttybangbang/aim25s-website/internal/data/db"
)

func newTestKVStore(t *testing.T) *KVStore {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "aim25s.db"), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewKVStore(database)
}

func TestKVStore_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)

	type payload struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}

	require.NoError(t, store.Set(ctx, "test-key", payload{Name: "hello", Value: 42}))

	var got payload
	require.NoError(t, store.Get(ctx, "test-key", &got))
	assert.Equal(t, payload{Name: "hello", Value: 42}, got)
}

func TestKVStore_GetNotFound(t *testing.T) {
	store := newTestKVStore(t)

	var v string
	err := store.Get(context.Background(), "nonexistent", &v)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestKVStore_SetOverwrite(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)

	require.NoError(t, store.SetTTL(ctx, "key", "first", time.Minute))
	require.NoError(t, store.Set(ctx, "key", "second"))

	entry, err := store.GetRaw(ctx, "key")
	require.NoError(t, err)
	assert.JSONEq(t, `"second"`, string(entry.Value))
	assert.Nil(t, entry.ExpiresAt, "overwrite without ttl clears expiry")
}

func TestKVStore_DeleteAndHas(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)

	has, err := store.Has(ctx, "key")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.Set(ctx, "key", "value"))
	has, err = store.Has(ctx, "key")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, store.Delete(ctx, "key"))
	has, err = store.Has(ctx, "key")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestKVStore_LazyExpiry(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)

	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }

	require.NoError(t, store.SetTTL(ctx, "short", 1, time.Second))
	require.NoError(t, store.Set(ctx, "forever", 2))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"forever", "short"}, keys)

	now = now.Add(2 * time.Second)

	var v int
	assert.ErrorIs(t, store.Get(ctx, "short", &v), sql.ErrNoRows)

	keys, err = store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"forever"}, keys)
}

func TestKVStore_SweepExpired(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)

	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }

	require.NoError(t, store.SetTTL(ctx, "a", 1, time.Second))
	require.NoError(t, store.SetTTL(ctx, "b", 1, time.Hour))
	now = now.Add(time.Minute)

	n, err := store.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestKVStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)

	require.NoError(t, store.Set(ctx, "columns:desktop", 1))
	require.NoError(t, store.Set(ctx, "columns:mobile", 1))
	require.NoError(t, store.Set(ctx, "battery:total", 1))
	require.NoError(t, store.Set(ctx, "columnsXdesktop", 1))
	require.NoError(t, store.Set(ctx, "col_ms:x", 1))

	n, err := store.Clear(ctx, "columns:")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = store.Clear(ctx, "col_")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "underscore is matched literally")

	n, err = store.Clear(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestIsCorruptionError(t *testing.T) {
	assert.False(t, IsCorruptionError(nil))
	assert.False(t, IsCorruptionError(errors.New("boom")))
	assert.True(t, IsCorruptionError(errors.New("file is not a database")))
}

func TestRecoverFromCorruption(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aim25s.db")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	require.NoError(t, os.WriteFile(path+"-wal", []byte("wal"), 0o644))

	backup, err := RecoverFromCorruption(path)
	require.NoError(t, err)

	assert.NoFileExists(t, path)
	assert.NoFileExists(t, path+"-wal")
	assert.FileExists(t, backup)
	assert.FileExists(t, backup+"-wal")
}
