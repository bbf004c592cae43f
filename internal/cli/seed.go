package cli

import (
	"context"

	"talentbridge/internal/config"
	"talentbridge/internal/database"
	"talentbridge/internal/database/seeder"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSeedCommand(env *environment) *cobra.Command {
	var demo bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the skill catalog, and demo data with --demo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), env, func(ctx context.Context, db database.DB, cfg config.Config, log *zap.Logger) error {
				r := seeder.Runner{Seeders: seeder.Defaults(cfg.Paths.SeedSkillsFile, demo), Logger: log}
				return r.Run(ctx, db)
			})
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "also insert a demo employer with open jobs")
	return cmd
}
