package provider

import (
	"fmt"
	"log/slog"

	"github.com/benx421/payment-gateway/escrow/internal/config"
	"github.com/benx421/payment-gateway/escrow/internal/metrics"
	"github.com/benx421/payment-gateway/escrow/internal/models"
)

// BuildRegistry creates an instrumented adapter for every supported provider:
// simulated networks, or live gateways from the providers file.
func BuildRegistry(cfg *config.ProvidersConfig, m *metrics.EngineMetrics, logger *slog.Logger) (*Registry, error) {
	registry := NewRegistry()

	if cfg.Mode == config.ProviderModeSimulated {
		simCfg := SimulatedConfig{
			FailureRate:  cfg.FailureRate,
			TimeoutRate:  cfg.TimeoutRate,
			MinLatencyMS: cfg.MinLatencyMS,
			MaxLatencyMS: cfg.MaxLatencyMS,
		}
		for _, p := range models.Providers {
			registry.Register(p, NewInstrumented(NewSimulated(p, simCfg, logger), p, m, logger))
		}
		logger.Info("payment providers configured", "mode", cfg.Mode, "providers", len(models.Providers))
		return registry, nil
	}

	endpoints, err := config.LoadProviderEndpoints(cfg.File)
	if err != nil {
		return nil, err
	}

	for name, endpoint := range endpoints {
		p := models.Provider(name)
		if !p.Valid() {
			return nil, fmt.Errorf("providers file: %w: %s", ErrUnsupportedProvider, name)
		}

		adapter := NewMobileMoney(MobileMoneyConfig{
			Provider:     p,
			BaseURL:      endpoint.BaseURL,
			APIKey:       endpoint.APIKey(),
			RateLimitRPS: endpoint.RateLimitRPS,
			Burst:        endpoint.Burst,
			Timeout:      endpoint.Timeout,
		}, logger)
		registry.Register(p, NewInstrumented(adapter, p, m, logger))
	}

	logger.Info("payment providers configured", "mode", cfg.Mode, "providers", len(endpoints))
	return registry, nil
}
