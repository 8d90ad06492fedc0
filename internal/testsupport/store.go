package testsupport

import (
	"context"
	"testing"

	"homesight/internal/config"
	"homesight/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// SaveChapters persists chapters for tests using the provided store.
func SaveChapters(t testing.TB, st *store.Store, chapters []store.Chapter) {
	t.Helper()

	if err := st.SaveChapters(context.Background(), chapters); err != nil {
		t.Fatalf("store.SaveChapters: %v", err)
	}
}
