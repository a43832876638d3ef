package cli

import (
	"github.com/spf13/cobra"

	"github.com/spec-kit/registry-dashboard/internal/config"
	"github.com/spec-kit/registry-dashboard/internal/observability"
	"github.com/spec-kit/registry-dashboard/internal/persistence"
)

func newMigrateCommand() *cobra.Command {
	var databaseURL string

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	migrateCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Database connection URL. Defaults to POSTGRES_DSN.")

	run := func(direction persistence.MigrationDirection) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := observability.NewLogger(cfg.Logger)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			dsn := databaseURL
			if dsn == "" {
				dsn = cfg.Postgres.DSN
			}
			return persistence.RunMigrations(dsn, direction, logger)
		}
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  run(persistence.MigrateUp),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			Args:  cobra.NoArgs,
			RunE:  run(persistence.MigrateDown),
		},
	)
	return migrateCmd
}
