package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRebind(t *testing.T) {
	pg := &Handle{Dialect: Postgres}
	lite := &Handle{Dialect: SQLite}

	tests := []struct {
		in, want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"SELECT * FROM products WHERE slug = ?", "SELECT * FROM products WHERE slug = $1"},
		{"UPDATE t SET a = ?, b = ? WHERE id = ?", "UPDATE t SET a = $1, b = $2 WHERE id = $3"},
		{"SELECT '?' AS q, x FROM t WHERE y = ?", "SELECT '?' AS q, x FROM t WHERE y = $1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pg.Rebind(tt.in))
		assert.Equal(t, tt.in, lite.Rebind(tt.in))
	}
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", Placeholders(0))
	assert.Equal(t, "?", Placeholders(1))
	assert.Equal(t, "?, ?, ?", Placeholders(3))
}

func TestOpen_SQLite(t *testing.T) {
	h, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, SQLite, h.Dialect)

	var fk int
	require.NoError(t, h.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	var mode string
	require.NoError(t, h.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "", zap.NewNop())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestWithSQLitePragmas(t *testing.T) {
	assert.Equal(t,
		"./dev.db?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)",
		withSQLitePragmas("./dev.db"))
	assert.Equal(t,
		"file:x.db?mode=rwc&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)",
		withSQLitePragmas("file:x.db?mode=rwc"))
	assert.Equal(t, "x.db?_pragma=foreign_keys(OFF)", withSQLitePragmas("x.db?_pragma=foreign_keys(OFF)"))
}

func TestLists(t *testing.T) {
	assert.Equal(t, "teak,door frames,marine", JoinList([]string{" teak ", "", "door, frames", "marine"}))
	assert.Equal(t, []string{"teak", "door frames", "marine"}, SplitList("teak,door frames,marine"))
	assert.Equal(t, []string{}, SplitList(""))
}

func TestJoinList_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "sal wood,main door", JoinList([]string{"sal ,wood", "  main \t door "}))
	assert.Equal(t, "", JoinList([]string{" , ", ""}))

	items := []string{"teak", "door frames"}
	assert.Equal(t, items, SplitList(JoinList([]string{"teak", "door, frames"})))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "2026-10-14", Date("2026-10-14 09:30:00"))
	assert.Equal(t, "2026-10-14", Date("2026-10-14T09:30:00Z"))
	assert.Equal(t, "", Date(""))
}
