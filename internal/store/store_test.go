package store_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/festpack/internal/store"
	"github.com/nhle/festpack/tests/testutil"
)

func exerciseKV(t *testing.T, kv store.KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, store.KeyChecklist)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, store.KeyChecklist, `[]`))
	v, ok, err := kv.Get(ctx, store.KeyChecklist)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	require.NoError(t, kv.Set(ctx, store.KeyChecklist, `[{"id":"1"}]`))
	v, _, err = kv.Get(ctx, store.KeyChecklist)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, v)

	require.NoError(t, kv.Set(ctx, store.KeyEvent, ""))
	v, ok, err = kv.Get(ctx, store.KeyEvent)
	require.NoError(t, err)
	assert.True(t, ok, "empty values are still present")
	assert.Empty(t, v)
}

func TestSQLiteStoreKV(t *testing.T) {
	exerciseKV(t, testutil.NewTestStore(t))
}

func TestMemoryStoreKV(t *testing.T) {
	exerciseKV(t, store.NewMemoryStore())
}

func TestSQLiteStoreMigrations(t *testing.T) {
	s := testutil.NewTestStore(t)
	v, err := s.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "festpack.db")

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, store.KeyHistory, `[{"id":"edc"}]`))
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	v, ok, err := s.Get(ctx, store.KeyHistory)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"edc"}]`, v)

	version, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version, "migrations must not be re-applied")
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Set(ctx, store.KeyEvent, "x")
			_, _, _ = m.Get(ctx, store.KeyEvent)
		}()
	}
	wg.Wait()

	v, ok, err := m.Get(ctx, store.KeyEvent)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}
