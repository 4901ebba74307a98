package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/nivara-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nivara-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/nivara-backend/internal/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending storage migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch cfg.Storage.Driver {
			case config.DriverPostgres:
				pool, err := postgres.NewPool(ctx, cfg.Storage.Postgres)
				if err != nil {
					return err
				}
				defer pool.Close()
				version, err := postgres.Migrate(ctx, pool)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "postgres schema at version %d\n", version)
			case config.DriverSQLite:
				b, err := sqlite.Open(ctx, cfg.Storage.SQLite.Path)
				if err != nil {
					return err
				}
				defer b.Close()
				fmt.Fprintf(out, "sqlite schema up to date at %s\n", cfg.Storage.SQLite.Path)
			default:
				fmt.Fprintf(out, "driver %q has no schema\n", cfg.Storage.Driver)
			}
			return nil
		},
	}
}
