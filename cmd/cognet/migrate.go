package main

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/cognet-graph/internal/adapter/postgres"
	"github.com/heartmarshall/cognet-graph/internal/app"
	"github.com/heartmarshall/cognet-graph/internal/config"
	"github.com/heartmarshall/cognet-graph/migrations"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := app.NewLogger(cfg.Log)

			pool, err := postgres.NewPool(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			db := stdlib.OpenDBFromPool(pool)
			defer db.Close()

			provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
			if err != nil {
				return fmt.Errorf("goose new provider: %w", err)
			}

			results, err := provider.Up(ctx)
			if err != nil {
				return fmt.Errorf("goose up: %w", err)
			}
			for _, r := range results {
				logger.Info("migration applied",
					slog.Int64("version", r.Source.Version),
					slog.Duration("duration", r.Duration),
				)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cognet: %d migration(s) applied\n", len(results))
			return nil
		},
	}
}
