package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"quizmaster/internal/bank"
	"quizmaster/internal/infra/file"
	"quizmaster/internal/infra/postgres"
	pgmigrations "quizmaster/internal/infra/postgres/migrations"
)

// newMigrateCmd applies database migrations.
func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the questions table in Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(opts)
			if err != nil {
				return err
			}
			defer rt.Close()
			db, err := openDB(rt.cfg.Postgres.URL)
			if err != nil {
				return err
			}
			defer db.Close()
			return runMigrations(cmd.Context(), db, rt.logger)
		},
	}
}

// newSeedCmd loads a question document into Postgres, migrating first.
func newSeedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [questions.json|questions.yaml]",
		Short: "Upsert questions from a document into Postgres",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			path := rt.cfg.Questions.Path
			if len(args) == 1 {
				path = args[0]
			}
			questions, err := bank.Load(cmd.Context(), file.NewQuestionLoader(path))
			if err != nil {
				return err
			}

			db, err := openDB(rt.cfg.Postgres.URL)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := runMigrations(cmd.Context(), db, rt.logger); err != nil {
				return err
			}
			n, err := postgres.Seed(cmd.Context(), db, questions.All())
			if err != nil {
				return err
			}
			rt.logger.Info("questions seeded", zap.String("from", path), zap.Int("rows", n))
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d questions from %s\n", n, path)
			return nil
		},
	}
}

func openDB(url string) (*bun.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("postgres url not configured")
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(url)))
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

func runMigrations(ctx context.Context, db *bun.DB, logger *zap.Logger) error {
	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}
	if group.IsZero() {
		logger.Info("no new migrations")
		return nil
	}
	logger.Info("migrations applied", zap.String("group", group.String()))
	return nil
}
