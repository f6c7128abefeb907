// Package dbtest opens throwaway migrated databases for store tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/newindiatimber/timbercraft/internal/db"
	"github.com/newindiatimber/timbercraft/internal/migrations"
)

// Open returns a migrated sqlite database in t.TempDir, closed on cleanup.
func Open(t testing.TB) *db.Handle {
	t.Helper()

	ctx := context.Background()
	h, err := db.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { h.Close() })

	if err := migrations.Up(ctx, h.DB, h.Dialect); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return h
}
