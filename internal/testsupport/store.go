package testsupport

import (
	"context"
	"testing"

	"reelcheck/internal/config"
	"reelcheck/internal/reconcile"
	"reelcheck/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// NewEntry inserts a library entry for tests using the provided store.
func NewEntry(t testing.TB, s *store.Store, path, fileName string) reconcile.LibraryEntry {
	t.Helper()

	entry, err := s.UpsertEntry(context.Background(), path, fileName)
	if err != nil {
		t.Fatalf("store.UpsertEntry: %v", err)
	}
	return entry
}
