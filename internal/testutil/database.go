// Package testutil provides test helpers: an in-memory hierarchy store
// with migrations applied and reusable tariff tree fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
	"github.com/chrishsmith/sourcify-sub003/internal/storage"
)

// TestStore wraps an in-memory store for one test.
type TestStore struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestStore creates a migrated in-memory database seeded with the
// given nodes, and registers cleanup.
func SetupTestStore(t *testing.T, nodes []model.HtsNode) *TestStore {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(nodes) > 0 {
		if err := store.SaveNodes(ctx, nodes); err != nil {
			t.Fatalf("failed to seed hierarchy: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestStore{Storage: store, t: t}
}
