package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/tetris-go/internal/api"
	"github.com/mcoot/tetris-go/internal/factory"
)

func newServeCmd() *cobra.Command {
	serverCfg := api.DefaultServerConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API over the configured storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := cfg.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			app, err := factory.New(cfg.FactoryConfig(logger, 0))
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					logger.Error("closing storage", slog.String("error", err.Error()))
				}
			}()

			router := api.NewRouter(api.RouterConfig{
				Logger: logger,
				Scores: app.ScoreService,
				Game:   app.Tracker,
			})
			server := api.NewServer(router, serverCfg, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := server.Run(ctx); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&serverCfg.Addr, "addr", getEnvOrDefault("TETRIS_ADDR", serverCfg.Addr), "Listen address (env: TETRIS_ADDR)")

	return cmd
}
