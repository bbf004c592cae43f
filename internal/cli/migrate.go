package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"talentbridge/internal/config"
	"talentbridge/internal/database"
	"talentbridge/internal/database/migration"
	dbpostgres "talentbridge/internal/database/postgres"
	"talentbridge/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrationRunner reads the embedded migrations unless fromDisk is set, in
// which case dir (MIGRATIONS_DIR) is used.
func migrationRunner(dir string, fromDisk bool, log *zap.Logger) migration.Runner {
	if fromDisk {
		return migration.Runner{Dir: dir, Logger: log}
	}
	return migration.Runner{Source: migrations.FS, Logger: log}
}

func newMigrateCommand(env *environment) *cobra.Command {
	var fromDisk bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), env, func(ctx context.Context, db database.DB, cfg config.Config, log *zap.Logger) error {
				return migrationRunner(cfg.Paths.MigrationsDir, fromDisk, log).Run(ctx, db.SQLDB())
			})
		},
	}
	cmd.PersistentFlags().BoolVar(&fromDisk, "from-disk", false, "read migrations from MIGRATIONS_DIR instead of the binary")

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), env, func(ctx context.Context, db database.DB, cfg config.Config, log *zap.Logger) error {
				st, err := migrationRunner(cfg.Paths.MigrationsDir, fromDisk, log).Status(ctx, db.SQLDB())
				if err != nil {
					return err
				}
				return printStatus(cmd, st)
			})
		},
	})
	return cmd
}

func printStatus(cmd *cobra.Command, st []migration.Status) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED\tAT")
	for _, s := range st {
		at := "-"
		if s.Applied {
			at = s.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%d\t%s\t%t\t%s\n", s.Version, s.Name, s.Applied, at)
	}
	return w.Flush()
}

func withDB(ctx context.Context, env *environment, fn func(ctx context.Context, db database.DB, cfg config.Config, log *zap.Logger) error) error {
	cfg, log, err := env.load()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	return fn(ctx, db, cfg, log)
}
