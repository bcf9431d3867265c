package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nhle/festpack/internal/store"
)

// NewTestStore opens an in-memory SQLite KV store with migrations applied
// and closes it when the test ends.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})
	return s
}

// Seed stores v as JSON under key, the way the session persists values.
func Seed(t *testing.T, kv store.KV, key string, v any) {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("encoding %s: %v", key, err)
	}
	if err := kv.Set(context.Background(), key, string(data)); err != nil {
		t.Fatalf("seeding %s: %v", key, err)
	}
}
