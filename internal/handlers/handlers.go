// Package handlers implements HTTP handlers for the escrow API.
package handlers

import (
	"log/slog"

	"github.com/benx421/payment-gateway/escrow/internal/service"
)

// Handler implements the api.StrictServerInterface for all endpoints
type Handler struct {
	escrows       service.EscrowService
	healthChecker service.HealthChecker
	logger        *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	escrows service.EscrowService,
	healthChecker service.HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		escrows:       escrows,
		healthChecker: healthChecker,
		logger:        logger.With("component", "handlers"),
	}
}
