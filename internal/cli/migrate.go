package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"festival-quiz/internal/app"
	"festival-quiz/internal/config"
	"festival-quiz/internal/infra/memory"
	pgloader "festival-quiz/internal/infra/postgres"
	pgmigrations "festival-quiz/internal/infra/postgres/migrations"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// NewMigrateCmd applies database migrations and optionally seeds the demo question set.
func NewMigrateCmd(opts *options) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrationsWithConfig(cmd.Context(), opts.cfg); err != nil {
				return err
			}
			if seed {
				return seedDemoSet(cmd.Context(), opts.cfg)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed-demo", false, "store the built-in demo question set")
	return cmd
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}
	if group.IsZero() {
		log.Printf("no new migrations")
		return nil
	}
	log.Printf("migrations applied: %s", group)
	return nil
}

func seedDemoSet(ctx context.Context, cfg config.Config) error {
	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := pgloader.NewQuestionLoader(pool).SaveQuestions(ctx, app.DefaultQuestionSet, memory.DemoQuestions()); err != nil {
		return fmt.Errorf("seed demo set: %w", err)
	}
	log.Printf("seeded question set %q", app.DefaultQuestionSet)
	return nil
}
