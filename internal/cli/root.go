package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"talentbridge/internal/config"
	"talentbridge/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Execute runs the talentbridge command tree until it returns or the process
// receives SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

func NewRootCommand() *cobra.Command {
	env := &environment{v: viper.New()}

	root := &cobra.Command{
		Use:           "talentbridge",
		Short:         "Recruiting backend: job board, applications and skills matching",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&env.configFile, "config", "", "YAML file using the same keys as the environment")
	flags.Bool("debug", false, "debug logging (LOG_DEBUG)")
	flags.Bool("json", false, "JSON log output (LOG_JSON)")
	_ = env.v.BindPFlag("LOG_DEBUG", flags.Lookup("debug"))
	_ = env.v.BindPFlag("LOG_JSON", flags.Lookup("json"))

	root.AddCommand(
		newServeCommand(env),
		newMigrateCommand(env),
		newSeedCommand(env),
		newScoreCommand(),
	)
	return root
}

// environment loads config and the logger lazily so commands that need
// neither, like score, run without any environment set.
type environment struct {
	v          *viper.Viper
	configFile string
}

func (e *environment) load() (config.Config, *zap.Logger, error) {
	cfg, err := config.LoadFrom(e.v, e.configFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log.With(zap.String("app", cfg.App.AppName), zap.String("env", cfg.App.Environment)), nil
}
