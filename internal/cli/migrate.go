package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/roze-storefront/internal/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded SQL migrations",
		Long: `Apply the embedded SQL migrations to DATABASE_URL in file name order.

Every migration is idempotent, so running the command twice is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := rootOpts.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if cfg.DatabaseURL == "" {
				return errors.New("database_url is empty")
			}

			pool, err := pgxpool.New(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("pgxpool.New: %w", err)
			}
			defer pool.Close()

			return migrate(cmd.Context(), pool, logger)
		},
	}
}

func migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	all, err := migrations.All()
	if err != nil {
		return fmt.Errorf("migrations.All: %w", err)
	}

	for _, m := range all {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			return fmt.Errorf("pool.Exec[%s]: %w", m.Name, err)
		}
		logger.Info("migration applied", zap.String("name", m.Name))
	}

	return nil
}
