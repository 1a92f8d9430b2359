package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/glquad/internal/quad"
	"github.com/roach88/glquad/internal/rule"
)

// createTestStore creates a new temp-dir store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// startedCheckpoint returns the checkpoint of a session that just received its bounds.
func startedCheckpoint(t *testing.T, order rule.Order, a, b float64) quad.Checkpoint[float64] {
	t.Helper()
	e, err := quad.NewForOrder[float64](order)
	if err != nil {
		t.Fatalf("NewForOrder() failed: %v", err)
	}
	var s quad.Session[float64]
	if _, err := e.Advance(&s, a, b, 0); err != nil {
		t.Fatalf("Advance() failed: %v", err)
	}
	return s.Checkpoint()
}

func bg() context.Context {
	return context.Background()
}
