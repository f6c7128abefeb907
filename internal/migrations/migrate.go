package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/newindiatimber/timbercraft/internal/db"
)

//go:embed sql/sqlite/*.sql sql/postgres/*.sql
var files embed.FS

// Up runs all pending embedded migrations for dialect.
func Up(ctx context.Context, conn *sql.DB, dialect db.Dialect) error {
	gooseDialect, dir, err := source(dialect)
	if err != nil {
		return err
	}

	goose.SetBaseFS(files)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, conn, dir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}
	return nil
}

// Version reports the current schema version.
func Version(ctx context.Context, conn *sql.DB, dialect db.Dialect) (int64, error) {
	gooseDialect, _, err := source(dialect)
	if err != nil {
		return 0, err
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return 0, fmt.Errorf("set goose dialect: %w", err)
	}
	v, err := goose.GetDBVersionContext(ctx, conn)
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return v, nil
}

func source(dialect db.Dialect) (gooseDialect, dir string, err error) {
	switch dialect {
	case db.SQLite:
		return "sqlite3", "sql/sqlite", nil
	case db.Postgres:
		return "postgres", "sql/postgres", nil
	default:
		return "", "", fmt.Errorf("no migrations for dialect %q", dialect)
	}
}
