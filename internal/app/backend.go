package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/nivara-backend/internal/adapter/memory"
	"github.com/heartmarshall/nivara-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nivara-backend/internal/adapter/postgres/profilestate"
	"github.com/heartmarshall/nivara-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/nivara-backend/internal/config"
	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/store"
)

// Backend is a store backend that can also enumerate a profile's keys.
type Backend interface {
	store.Backend
	List(ctx context.Context, profile string) ([]domain.StateEntry, error)
}

// OpenBackend connects the configured storage driver. Postgres schemas are
// migrated on open; SQLite migrates itself. The returned func releases the
// connection.
func OpenBackend(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (Backend, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		version, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("storage ready", slog.String("driver", cfg.Driver), slog.Int64("schema_version", version))
		return profilestate.New(pool), pool.Close, nil

	case config.DriverSQLite:
		b, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Info("storage ready", slog.String("driver", cfg.Driver), slog.String("path", cfg.SQLite.Path))
		return b, func() {
			if err := b.Close(); err != nil {
				log.Error("close sqlite", slog.String("error", err.Error()))
			}
		}, nil

	case config.DriverMemory:
		log.Warn("storage is in-memory; profile state is lost on restart")
		return memory.New(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
