// Package migrations применяет встроенные SQL-миграции схемы
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var files embed.FS

var (
	// ErrReadMigrations не удалось прочитать встроенные миграции
	ErrReadMigrations = errors.New("migrations: failed to read migrations")

	// ErrApplyMigration не удалось применить миграцию
	ErrApplyMigration = errors.New("migrations: failed to apply migration")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migration одна миграция
type Migration struct {
	Version string
	SQL     string
}

// List возвращает миграции в порядке версий
func List() ([]Migration, error) {
	names, err := fs.Glob(files, "sql/*.sql")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMigrations, err)
	}
	sort.Strings(names)

	result := make([]Migration, 0, len(names))
	for _, name := range names {
		data, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadMigrations, name, err)
		}
		result = append(result, Migration{Version: name[len("sql/"):], SQL: string(data)})
	}
	return result, nil
}

// Apply применяет ещё не применённые миграции, каждую в своей транзакции.
// Возвращает количество применённых миграций
func Apply(ctx context.Context, db *sql.DB, log Logger) (int, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return 0, fmt.Errorf("%w: create schema_migrations: %v", ErrApplyMigration, err)
	}

	migrations, err := List()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, m := range migrations {
		var exists bool
		if err := db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, m.Version,
		).Scan(&exists); err != nil {
			return applied, fmt.Errorf("%w: check %s: %v", ErrApplyMigration, m.Version, err)
		}
		if exists {
			continue
		}

		if err := applyOne(ctx, db, m); err != nil {
			return applied, err
		}
		log.Info("Migration %s applied", m.Version)
		applied++
	}

	return applied, nil
}

func applyOne(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin %s: %v", ErrApplyMigration, m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrApplyMigration, m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version); err != nil {
		return fmt.Errorf("%w: record %s: %v", ErrApplyMigration, m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit %s: %v", ErrApplyMigration, m.Version, err)
	}
	return nil
}
