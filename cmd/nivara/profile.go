package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/nivara-backend/internal/app"
	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/store"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect or reset a profile's persisted state",
	}
	cmd.AddCommand(newProfileShowCmd(), newProfileResetCmd(), newProfileCopyCmd())
	return cmd
}

// Optional bulk operations some backends provide.
type (
	profileDeleter interface {
		DeleteProfile(ctx context.Context, profile string) (int64, error)
	}
	profileImporter interface {
		Import(ctx context.Context, profile string, entries []domain.StateEntry) error
	}
)

// withBackend opens the configured storage for a one-off command.
func withBackend(cmd *cobra.Command, fn func(app.Backend) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)
	backend, closeBackend, err := app.OpenBackend(cmd.Context(), cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeBackend()
	return fn(backend)
}

func profileArg(args []string) (string, error) {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return "", fmt.Errorf("invalid profile id %q: %w", args[0], err)
	}
	return id.String(), nil
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print every persisted key of a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := profileArg(args)
			if err != nil {
				return err
			}
			return withBackend(cmd, func(b app.Backend) error {
				entries, err := b.List(cmd.Context(), profile)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintf(out, "profile %s has no persisted state\n", profile)
					return nil
				}
				for _, e := range entries {
					fmt.Fprintf(out, "%s (updated %s)\n%s\n\n", e.Key, e.UpdatedAt.Format("2006-01-02 15:04:05"), e.Value)
				}
				return nil
			})
		},
	}
}

func newProfileResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Delete a profile's persisted state; it is reseeded on next use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := profileArg(args)
			if err != nil {
				return err
			}
			return withBackend(cmd, func(b app.Backend) error {
				if d, ok := b.(profileDeleter); ok {
					n, err := d.DeleteProfile(cmd.Context(), profile)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "profile %s reset (%d keys removed)\n", profile, n)
					return nil
				}
				reg, err := store.NewRegistry(b, 1, store.WithLogger(slog.Default()))
				if err != nil {
					return err
				}
				if err := reg.Reset(cmd.Context(), profile); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "profile %s reset\n", profile)
				return nil
			})
		},
	}
}

func newProfileCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <from> <to>",
		Short: "Replace the state of one profile with a copy of another's",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := profileArg(args[:1])
			if err != nil {
				return err
			}
			to, err := profileArg(args[1:])
			if err != nil {
				return err
			}
			return withBackend(cmd, func(b app.Backend) error {
				entries, err := b.List(cmd.Context(), from)
				if err != nil {
					return err
				}
				if err := replaceProfile(cmd.Context(), b, to, entries); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "copied %d keys from %s to %s\n", len(entries), from, to)
				return nil
			})
		},
	}
}

// replaceProfile overwrites profile with entries, atomically when the backend
// supports it.
func replaceProfile(ctx context.Context, b app.Backend, profile string, entries []domain.StateEntry) error {
	if imp, ok := b.(profileImporter); ok {
		return imp.Import(ctx, profile, entries)
	}
	for _, key := range store.Keys {
		if err := b.Delete(ctx, profile, key); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if err := b.Put(ctx, profile, e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}
