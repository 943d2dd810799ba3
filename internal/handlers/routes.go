package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/benx421/payment-gateway/escrow/internal/api"
	"github.com/benx421/payment-gateway/escrow/internal/metrics"
	"github.com/benx421/payment-gateway/escrow/internal/middleware"
	"github.com/benx421/payment-gateway/escrow/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	escrows service.EscrowService,
	healthChecker service.HealthChecker,
	idempotencyRepo middleware.IdempotencyRepository,
	logger *slog.Logger,
) (http.Handler, error) {
	handler := NewHandler(escrows, healthChecker, logger)
	strictHandler := api.NewStrictHandlerWithOptions(
		handler,
		[]api.StrictMiddlewareFunc{operationLogger(logger)},
		api.StrictHTTPServerOptions{
			RequestErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
				middleware.WriteError(w, http.StatusBadRequest, api.ErrorKindValidationFailed, err.Error())
			},
			ResponseErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
				logger.Error("failed to write response", "path", r.URL.Path, "error", err)
				middleware.WriteError(w, http.StatusInternalServerError, api.ErrorKindInternalError, "internal error")
			},
		},
	)

	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	validator, err := middleware.RequestValidator(swagger, logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(metrics.HTTP()))

	r.Handle("/metrics", promhttp.Handler())
	api.RegisterDocsRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(validator)
		r.Use(middleware.Idempotency(idempotencyRepo, logger))

		api.HandlerWithOptions(strictHandler, api.ChiServerOptions{
			BaseRouter: r,
			ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
				middleware.WriteError(w, http.StatusBadRequest, api.ErrorKindValidationFailed, err.Error())
			},
		})
	})

	return otelhttp.NewHandler(r, "escrow-api"), nil
}

// operationLogger logs each API operation with its outcome and duration
func operationLogger(logger *slog.Logger) api.StrictMiddlewareFunc {
	return func(f api.StrictHandlerFunc, operationID string) api.StrictHandlerFunc {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
			start := time.Now()
			response, err := f(ctx, w, r, request)
			logger.Debug("operation handled",
				"operation", operationID,
				"request_id", chimw.GetReqID(ctx),
				"duration_ms", time.Since(start).Milliseconds(),
				"response", fmt.Sprintf("%T", response),
			)
			return response, err
		}
	}
}
