package testutil

import (
	"testing"

	"github.com/taskboard/taskboard/internal/persist"
)

// NewTestKV creates an in-memory SQLiteKV for tests. It automatically
// closes the store when the test completes.
func NewTestKV(t *testing.T) *persist.SQLiteKV {
	t.Helper()

	kv, err := persist.OpenSQLiteKV(":memory:")
	if err != nil {
		t.Fatalf("creating test kv store: %v", err)
	}

	t.Cleanup(func() {
		if err := kv.Close(); err != nil {
			t.Errorf("closing test kv store: %v", err)
		}
	})

	return kv
}
