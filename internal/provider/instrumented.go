package provider

import (
	"context"
	"log/slog"
	"time"

	"github.com/benx421/payment-gateway/escrow/internal/metrics"
	"github.com/benx421/payment-gateway/escrow/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/benx421/payment-gateway/escrow/internal/provider"

// Instrumented decorates an Adapter with spans, metrics and outcome logging
type Instrumented struct {
	next     Adapter
	provider models.Provider
	metrics  *metrics.EngineMetrics
	tracer   trace.Tracer
	logger   *slog.Logger
}

var _ Adapter = (*Instrumented)(nil)

// NewInstrumented wraps next. m may be nil.
func NewInstrumented(next Adapter, p models.Provider, m *metrics.EngineMetrics, logger *slog.Logger) *Instrumented {
	return &Instrumented{
		next:     next,
		provider: p,
		metrics:  m,
		tracer:   otel.Tracer(tracerName),
		logger:   logger.With("provider", string(p)),
	}
}

func (a *Instrumented) InitiatePayment(ctx context.Context, req PaymentRequest) Result {
	ctx, span := a.start(ctx, CallInitiate, req.Reference)
	started := time.Now()
	res := a.next.InitiatePayment(ctx, req)
	a.finish(span, CallInitiate, req.Reference, res.Outcome, res.ErrorCode, time.Since(started))
	return res
}

func (a *Instrumented) VerifyPayment(ctx context.Context, p models.Provider, transactionRef string) Verification {
	ctx, span := a.start(ctx, CallVerify, transactionRef)
	started := time.Now()
	res := a.next.VerifyPayment(ctx, p, transactionRef)
	span.SetAttributes(attribute.Bool("escrow.provider.verified", res.Verified))
	a.finish(span, CallVerify, transactionRef, res.Outcome, res.ErrorCode, time.Since(started))
	return res
}

func (a *Instrumented) ReleaseFunds(ctx context.Context, req PaymentRequest) Result {
	ctx, span := a.start(ctx, CallRelease, req.Reference)
	started := time.Now()
	res := a.next.ReleaseFunds(ctx, req)
	a.finish(span, CallRelease, req.Reference, res.Outcome, res.ErrorCode, time.Since(started))
	return res
}

func (a *Instrumented) RefundFunds(ctx context.Context, req PaymentRequest) Result {
	ctx, span := a.start(ctx, CallRefund, req.Reference)
	started := time.Now()
	res := a.next.RefundFunds(ctx, req)
	a.finish(span, CallRefund, req.Reference, res.Outcome, res.ErrorCode, time.Since(started))
	return res
}

func (a *Instrumented) start(ctx context.Context, call Call, reference string) (context.Context, trace.Span) {
	return a.tracer.Start(ctx, "provider."+string(call),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("escrow.provider", string(a.provider)),
			attribute.String("escrow.provider.reference", reference),
		),
	)
}

func (a *Instrumented) finish(span trace.Span, call Call, reference string, outcome Outcome, errorCode string, elapsed time.Duration) {
	defer span.End()

	span.SetAttributes(attribute.String("escrow.provider.outcome", string(outcome)))
	if outcome != OutcomeSuccess {
		span.SetStatus(codes.Error, string(outcome))
	}

	a.metrics.ObserveProviderCall(string(a.provider), string(call), string(outcome), elapsed)

	level := slog.LevelInfo
	if outcome == OutcomeUnknown {
		level = slog.LevelWarn
	}
	a.logger.Log(context.Background(), level, "provider call finished",
		"call", call,
		"reference", reference,
		"outcome", outcome,
		"error_code", errorCode,
		"duration_ms", elapsed.Milliseconds(),
	)
}
