package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL flavour behind a Handle.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Handle is a database pool that knows its dialect. Stores write queries with
// ? placeholders and pass them through Rebind.
type Handle struct {
	*sql.DB
	Dialect Dialect
}

// Open opens a database for driver and retries the initial ping with exponential
// backoff. SQLite connections get WAL, foreign keys and a busy timeout.
func Open(ctx context.Context, driver, dsn string, logger *zap.Logger) (*Handle, error) {
	var dialect Dialect
	switch driver {
	case "sqlite", "":
		dialect = SQLite
	case "postgres":
		dialect = Postgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if dialect == SQLite {
		dsn = withSQLitePragmas(dsn)
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second
	policy.MaxInterval = 5 * time.Second

	err = backoff.RetryNotify(
		func() error { return db.PingContext(ctx) },
		backoff.WithContext(policy, ctx),
		func(err error, next time.Duration) {
			logger.Warn("database ping failed, retrying",
				zap.String("driver", string(dialect)),
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		},
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", dialect, err)
	}

	logger.Info("database ready", zap.String("driver", string(dialect)))
	return &Handle{DB: db, Dialect: dialect}, nil
}

var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(ON)",
	"busy_timeout(5000)",
}

// withSQLitePragmas appends the pragmas as _pragma DSN parameters so that every
// pooled connection gets them, not just the first.
func withSQLitePragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	var b strings.Builder
	b.WriteString(dsn)
	for _, p := range sqlitePragmas {
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(p)
		sep = "&"
	}
	return b.String()
}

// Rebind rewrites ? placeholders to $1, $2, ... for postgres. Question marks inside
// single-quoted literals are left alone.
func (h *Handle) Rebind(query string) string {
	if h.Dialect != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Placeholders returns n comma separated ? placeholders.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
