package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomcast-server/internal/app"
	"github.com/vovakirdan/roomcast-server/internal/config"
	"github.com/vovakirdan/roomcast-server/internal/log"
)

func main() {
	var (
		configPath string
		overrides  config.Config
	)

	rootCmd := &cobra.Command{
		Use:           "roomcast-server",
		Short:         "Room-scoped real-time broadcast server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bootLog := log.New(overrides.LogLevel)

			cfg, path, err := config.Load(bootLog, configPath)
			if err != nil {
				return err
			}
			cfg.UpdateFrom(overrides)

			logger := log.New(cfg.LogLevel)
			logger.Info().Str("config", path).Str("addr", cfg.Addr).Msg("starting roomcast server")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application := app.New(cfg, logger)
			if err := application.Run(ctx); err != nil {
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&overrides.Addr, "addr", "", "HTTP listen address")
	rootCmd.Flags().StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.New("error").Fatal().Err(err).Msg("server exited with error")
	}
}
