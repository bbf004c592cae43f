package cli

import (
	"context"
	"errors"
	"time"

	"talentbridge/internal/app"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(env *environment) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and websocket server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), env, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before listening")
	return cmd
}

func runServe(ctx context.Context, env *environment, migrate bool) error {
	cfg, log, err := env.load()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}

	c, err := app.NewContainer(ctx, cfg, log)
	if err != nil {
		return err
	}

	if migrate {
		if err := migrationRunner(cfg.Paths.MigrationsDir, false, log).Run(ctx, c.DB.SQLDB()); err != nil {
			_ = c.Close()
			return err
		}
	}

	runCtx, stopWorkers := context.WithCancel(context.Background())
	c.Start(runCtx)
	a := app.New(c)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	log.Info("[HTTP] listening", zap.String("addr", addr), zap.Bool("webhook", c.Webhook != nil))

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
		log.Info("[HTTP] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		serveErr = a.Fiber.ShutdownWithContext(shutdownCtx)
		cancel()
	}

	// Queued notifications drain before the workers' context is cancelled.
	closeErr := c.Close()
	stopWorkers()

	return errors.Join(serveErr, closeErr)
}
