// Package helpers provides shared test fixtures.
package helpers

import (
	"testing"

	"github.com/babynest/assistant/store"
)

// NewTestSQLiteStore returns an in-memory store cleaned up with the test.
func NewTestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}
