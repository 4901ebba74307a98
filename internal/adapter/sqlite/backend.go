// Package sqlite keeps profile state in a single local database file. It is
// the default driver for running the backend without external services.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

const table = "profile_state"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Backend implements the store backend on a SQLite database.
type Backend struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(ctx context.Context, path string) (*Backend, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Backend{db: db, now: time.Now}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func (b *Backend) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Question).RunWith(b.db)
}

func (b *Backend) Get(ctx context.Context, profile, key string) ([]byte, bool, error) {
	var value []byte
	err := b.builder().Select("value").
		From(table).
		Where(sq.Eq{"profile_id": profile, "key": key}).
		QueryRowContext(ctx).
		Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s/%s: %w", profile, key, err)
	}
	return value, true, nil
}

func (b *Backend) Put(ctx context.Context, profile, key string, value []byte) error {
	_, err := b.builder().Insert(table).
		Columns("profile_id", "key", "value", "updated_at").
		Values(profile, key, value, b.now().UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT (profile_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", profile, key, err)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, profile, key string) error {
	_, err := b.builder().Delete(table).
		Where(sq.Eq{"profile_id": profile, "key": key}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", profile, key, err)
	}
	return nil
}

func (b *Backend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

// List returns every key stored for profile, ordered by key.
func (b *Backend) List(ctx context.Context, profile string) ([]domain.StateEntry, error) {
	rows, err := b.builder().Select("key", "value", "updated_at").
		From(table).
		Where(sq.Eq{"profile_id": profile}).
		OrderBy("key").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", profile, err)
	}
	defer rows.Close()

	entries := []domain.StateEntry{}
	for rows.Next() {
		var (
			e       domain.StateEntry
			updated string
		)
		if err := rows.Scan(&e.Key, &e.Value, &updated); err != nil {
			return nil, fmt.Errorf("scan %s: %w", profile, err)
		}
		if e.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
			return nil, fmt.Errorf("parse updated_at of %s/%s: %w", profile, e.Key, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteProfile removes every key of profile and reports how many were removed.
func (b *Backend) DeleteProfile(ctx context.Context, profile string) (int64, error) {
	res, err := b.builder().Delete(table).
		Where(sq.Eq{"profile_id": profile}).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete profile %s: %w", profile, err)
	}
	return res.RowsAffected()
}

// Close closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}
