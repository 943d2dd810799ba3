package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/benx421/payment-gateway/escrow/internal/app"
	"github.com/benx421/payment-gateway/escrow/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting escrow api",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"db_driver", cfg.Database.Driver,
		"provider_mode", cfg.Providers.Mode,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}

	runErr := a.Run(ctx)
	if err := a.Close(context.Background()); err != nil {
		logger.Error("failed to close cleanly", "error", err)
	}
	if runErr != nil {
		logger.Error("server stopped with error", "error", runErr)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
