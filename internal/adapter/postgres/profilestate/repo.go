// Package profilestate stores per-profile JSON documents in PostgreSQL.
package profilestate

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/nivara-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nivara-backend/internal/domain"
)

const table = "profile_state"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo implements the store backend on top of a pgx pool.
type Repo struct {
	db postgres.DB
	tx *postgres.TxManager
}

// New creates a Repo.
func New(db postgres.DB) *Repo {
	return &Repo{db: db, tx: postgres.NewTxManager(db)}
}

// Get returns the document stored under key. ok is false when the key was
// never written.
func (r *Repo) Get(ctx context.Context, profile, key string) ([]byte, bool, error) {
	query, args, err := psql.Select("value").
		From(table).
		Where("profile_id = ?", profile).
		Where("key = ?", key).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build query: %w", err)
	}

	var value []byte
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, postgres.MapError(err, table, profile+"/"+key)
	}
	return value, true, nil
}

// Put upserts the document stored under key.
func (r *Repo) Put(ctx context.Context, profile, key string, value []byte) error {
	query, args, err := psql.Insert(table).
		Columns("profile_id", "key", "value", "updated_at").
		Values(profile, key, string(value), sq.Expr("now()")).
		Suffix("ON CONFLICT (profile_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, table, profile+"/"+key)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *Repo) Delete(ctx context.Context, profile, key string) error {
	query, args, err := psql.Delete(table).
		Where("profile_id = ?", profile).
		Where("key = ?", key).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, table, profile+"/"+key)
	}
	return nil
}

// DeleteProfile removes every key of profile and reports how many were removed.
func (r *Repo) DeleteProfile(ctx context.Context, profile string) (int64, error) {
	query, args, err := psql.Delete(table).Where("profile_id = ?", profile).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, table, profile)
	}
	return tag.RowsAffected(), nil
}

// List returns every key stored for profile, ordered by key.
func (r *Repo) List(ctx context.Context, profile string) ([]domain.StateEntry, error) {
	query, args, err := psql.Select("key", "value", "updated_at").
		From(table).
		Where("profile_id = ?", profile).
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []domain.StateEntry
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &entries, query, args...); err != nil {
		return nil, postgres.MapError(err, table, profile)
	}
	if entries == nil {
		entries = []domain.StateEntry{}
	}
	return entries, nil
}

// Import replaces every key of profile with entries in one transaction.
func (r *Repo) Import(ctx context.Context, profile string, entries []domain.StateEntry) error {
	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := r.DeleteProfile(ctx, profile); err != nil {
			return err
		}
		for _, e := range entries {
			if err := r.Put(ctx, profile, e.Key, e.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Ping checks connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
