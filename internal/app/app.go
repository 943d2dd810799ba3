// Package app wires configuration, storage, providers and the escrow engine
// into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/benx421/payment-gateway/escrow/internal/config"
	"github.com/benx421/payment-gateway/escrow/internal/db"
	"github.com/benx421/payment-gateway/escrow/internal/handlers"
	"github.com/benx421/payment-gateway/escrow/internal/metrics"
	"github.com/benx421/payment-gateway/escrow/internal/orders"
	"github.com/benx421/payment-gateway/escrow/internal/provider"
	"github.com/benx421/payment-gateway/escrow/internal/repository"
	"github.com/benx421/payment-gateway/escrow/internal/service"
	"github.com/benx421/payment-gateway/escrow/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

// App is the assembled escrow service
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	database *db.DB
	engine   *service.Engine
	sweeper  *service.Sweeper
	server   *http.Server

	shutdownTelemetry func(context.Context) error
}

// New connects to the database, applies migrations and builds every component.
// The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise telemetry: %w", err)
	}

	database, err := db.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		_ = shutdownTelemetry(ctx) //nolint:errcheck // already failing
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(ctx); err != nil {
		_ = database.Close()       //nolint:errcheck // already failing
		_ = shutdownTelemetry(ctx) //nolint:errcheck // already failing
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	a := &App{
		cfg:               cfg,
		logger:            logger,
		database:          database,
		shutdownTelemetry: shutdownTelemetry,
	}

	if err := a.build(); err != nil {
		_ = a.Close(ctx) //nolint:errcheck // already failing
		return nil, err
	}
	return a, nil
}

func (a *App) build() error {
	engineMetrics := metrics.Engine()

	escrows := repository.NewEscrowRepository(a.database)
	events := repository.NewEventRepository(a.database)
	idempotency := repository.NewIdempotencyRepository(a.database)

	registry, err := provider.BuildRegistry(&a.cfg.Providers, engineMetrics, a.logger)
	if err != nil {
		return fmt.Errorf("failed to build provider registry: %w", err)
	}

	syncer := orders.NewSynchronizer(newOrderUpdater(&a.cfg.Orders, a.logger), escrows, engineMetrics, a.logger)

	a.engine = service.NewEngine(escrows, events, registry, syncer, service.EngineConfig{
		Currency:        a.cfg.Engine.Currency,
		ProviderTimeout: a.cfg.Engine.ProviderTimeout,
		LeaseTTL:        a.cfg.Engine.LeaseTTL,
		LeaseWait:       a.cfg.Engine.LeaseWait,
	}, engineMetrics, a.logger)

	a.sweeper = service.NewSweeper(a.engine, escrows, idempotency, service.SweepConfig{
		Interval:       a.cfg.Engine.SweepInterval,
		BatchSize:      a.cfg.Engine.SweepBatchSize,
		IdempotencyTTL: a.cfg.Engine.IdempotencyTTL,
	}, a.logger)

	router, err := handlers.NewRouter(a.engine, a.database, idempotency, a.logger)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}
	return nil
}

func newOrderUpdater(cfg *config.OrdersConfig, logger *slog.Logger) orders.Updater {
	if cfg.BaseURL == "" {
		logger.Warn("ORDERS_API_URL not set, order status changes will only be logged")
		return orders.NewLogUpdater(logger)
	}
	return orders.NewHTTPUpdater(cfg.BaseURL, cfg.Timeout)
}

// Engine exposes the escrow engine for operator tooling
func (a *App) Engine() *service.Engine {
	return a.engine
}

// Sweeper exposes the reconciliation sweeper for operator tooling
func (a *App) Sweeper() *service.Sweeper {
	return a.sweeper
}

// Handler returns the HTTP handler serving the API
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP and runs the sweeper until ctx is cancelled or either fails.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("server listening", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return a.sweeper.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("server forced to shutdown", "error", err)
			return err
		}
		return nil
	})

	return g.Wait()
}

// Close releases the database and flushes telemetry
func (a *App) Close(ctx context.Context) error {
	flushCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var errs []error
	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(flushCtx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
		}
	}
	if a.database != nil {
		if err := a.database.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}
	return errors.Join(errs...)
}
