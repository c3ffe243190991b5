package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/stinex/backend/internal/config"
	"github.com/stinex/backend/internal/logging"
	"github.com/stinex/backend/internal/repository"
	"github.com/stinex/backend/internal/seed"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the Stinex document store",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(upCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(resetCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Create collections and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, store *repository.Store) error {
				if err := store.Migrate(ctx); err != nil {
					return err
				}
				slog.Info("migration applied")
				return nil
			})
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample services and testimonials into empty collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, store *repository.Store) error {
				if err := store.Migrate(ctx); err != nil {
					return err
				}
				return runSeed(ctx, store)
			})
		},
	}
}

func resetCmd() *cobra.Command {
	var withSeed bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop every collection and recreate it",
		Long: `Drop contacts, services and testimonials, then recreate the
collections with their indexes. All stored data is lost.

Examples:
  migrate reset
  migrate reset --seed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, store *repository.Store) error {
				if err := store.Reset(ctx); err != nil {
					return err
				}
				slog.Info("store reset")
				if !withSeed {
					return nil
				}
				return runSeed(ctx, store)
			})
		},
	}
	cmd.Flags().BoolVar(&withSeed, "seed", false, "insert sample data after the reset")
	return cmd
}

// withStore loads the configuration, opens the store and closes it after fn.
func withStore(ctx context.Context, fn func(context.Context, *repository.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel)

	store, err := repository.Open(ctx, repository.Options{
		Driver:      cfg.StoreDriver,
		MongoURL:    cfg.MongoURL,
		DBName:      cfg.DBName,
		PostgresURL: cfg.DatabaseURL,
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			slog.Warn("failed to close store", "error", err)
		}
	}()
	return fn(ctx, store)
}

func runSeed(ctx context.Context, store *repository.Store) error {
	res, err := seed.Run(ctx, store)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	slog.Info("seed finished", "services", res.Services, "testimonials", res.Testimonials)
	return nil
}
