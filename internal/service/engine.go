package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/benx421/payment-gateway/escrow/internal/metrics"
	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/benx421/payment-gateway/escrow/internal/orders"
	"github.com/benx421/payment-gateway/escrow/internal/provider"
	"github.com/benx421/payment-gateway/escrow/internal/repository"
	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/benx421/payment-gateway/escrow/internal/service"

// Operation names used in logs, spans and metrics
const (
	opInitiate       = "initiate"
	opConfirm        = "confirm_payment"
	opRelease        = "release"
	opRefund         = "refund"
	opDispute        = "raise_dispute"
	opResolve        = "resolve_dispute"
	opResolvePending = "resolve_pending"
)

// OrderSyncer pushes escrow status changes to the order collaborator
type OrderSyncer interface {
	Sync(ctx context.Context, escrow *models.EscrowTransaction) error
	Resync(ctx context.Context, escrow *models.EscrowTransaction) error
}

// EngineConfig holds the engine's timing and currency settings
type EngineConfig struct {
	Currency        string
	ProviderTimeout time.Duration
	LeaseTTL        time.Duration
	LeaseWait       time.Duration
}

// Engine runs the escrow state machine. Every mutating operation holds the
// record's lease for its whole duration, so at most one provider call is in
// flight per escrow across all instances.
type Engine struct {
	escrows   repository.EscrowRepository
	events    repository.EventRepository
	providers *provider.Registry
	orders    OrderSyncer
	metrics   *metrics.EngineMetrics
	tracer    trace.Tracer
	logger    *slog.Logger
	now       func() time.Time
	newHolder func() string
	cfg       EngineConfig
}

// NewEngine creates an Engine. m may be nil.
func NewEngine(
	escrows repository.EscrowRepository,
	events repository.EventRepository,
	providers *provider.Registry,
	syncer OrderSyncer,
	cfg EngineConfig,
	m *metrics.EngineMetrics,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		escrows:   escrows,
		events:    events,
		providers: providers,
		orders:    syncer,
		metrics:   m,
		tracer:    otel.Tracer(tracerName),
		logger:    logger.With("component", "escrow_engine"),
		now:       func() time.Time { return time.Now().UTC() },
		newHolder: uuid.NewString,
		cfg:       cfg,
	}
}

// GetEscrow retrieves an escrow by ID
func (e *Engine) GetEscrow(ctx context.Context, id uuid.UUID) (*models.EscrowTransaction, error) {
	return e.load(ctx, id)
}

// ListEvents returns the escrow's audit trail, oldest first
func (e *Engine) ListEvents(ctx context.Context, id uuid.UUID) ([]*models.EscrowEvent, error) {
	if _, err := e.load(ctx, id); err != nil {
		return nil, err
	}

	events, err := e.events.ListByEscrow(ctx, id)
	if err != nil {
		return nil, internalError("failed to list events", err)
	}
	return events, nil
}

// begin starts the span and timer for one engine operation. The returned
// func must be called with the operation's final error.
func (e *Engine) begin(ctx context.Context, op string, id uuid.UUID) (context.Context, func(error)) {
	ctx, span := e.tracer.Start(ctx, "escrow."+op)
	if id != uuid.Nil {
		span.SetAttributes(attribute.String("escrow.id", id.String()))
	}
	started := time.Now()

	return ctx, func(err error) {
		result := "ok"
		if err != nil {
			result = errorCode(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, result)
		}
		span.End()
		e.metrics.ObserveOperation(op, result, time.Since(started))
	}
}

// withLease runs fn while holding the escrow's lease. It waits up to
// LeaseWait for a competing operation to finish.
func (e *Engine) withLease(
	ctx context.Context,
	id uuid.UUID,
	fn func(holder string) (*models.EscrowTransaction, error),
) (*models.EscrowTransaction, error) {
	holder := e.newHolder()
	if err := e.acquireLease(ctx, id, holder); err != nil {
		return nil, err
	}
	defer e.releaseLease(ctx, id, holder)

	return fn(holder)
}

func (e *Engine) acquireLease(ctx context.Context, id uuid.UUID, holder string) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 10 * time.Millisecond
	policy.MaxInterval = 250 * time.Millisecond

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := e.escrows.AcquireLease(ctx, id, holder, e.cfg.LeaseTTL)
		if err == nil || errors.Is(err, models.ErrLeaseHeld) {
			return struct{}{}, err
		}
		return struct{}{}, backoff.Permanent(err)
	}, backoff.WithBackOff(policy), backoff.WithMaxElapsedTime(e.cfg.LeaseWait))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrNotFound):
		return newError(ErrCodeNotFound, "escrow not found")
	case errors.Is(err, models.ErrLeaseHeld), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return newError(ErrCodeConcurrentOperation, "another operation is in progress for this escrow")
	default:
		return internalError("failed to acquire lease", err)
	}
}

func (e *Engine) releaseLease(ctx context.Context, id uuid.UUID, holder string) {
	if err := e.escrows.ReleaseLease(context.WithoutCancel(ctx), id, holder); err != nil {
		e.logger.Warn("failed to release lease; it will expire",
			"escrow_id", id,
			"error", err,
		)
	}
}

func (e *Engine) load(ctx context.Context, id uuid.UUID) (*models.EscrowTransaction, error) {
	escrow, err := e.escrows.FindByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, newError(ErrCodeNotFound, "escrow not found")
	}
	if err != nil {
		return nil, internalError("failed to load escrow", err)
	}
	return escrow, nil
}

func (e *Engine) adapterFor(p models.Provider) (provider.Adapter, error) {
	adapter, err := e.providers.Adapter(p)
	if err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeValidationFailed,
			Message: fmt.Sprintf("unsupported provider: %s", p),
			Err:     err,
		}
	}
	return adapter, nil
}

// providerContext bounds a provider call by ProviderTimeout. It survives the
// caller's cancellation so a dispatched call always gets a classified outcome.
func (e *Engine) providerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), e.cfg.ProviderTimeout)
}

func (e *Engine) paymentRequest(escrow *models.EscrowTransaction, op models.Operation, phone string) provider.PaymentRequest {
	return provider.PaymentRequest{
		Amount:      escrow.Amount,
		Provider:    escrow.Provider,
		Phone:       phone,
		Currency:    escrow.Currency,
		Reference:   op.Reference(escrow.ID),
		Description: fmt.Sprintf("escrow %s for order %s", op, escrow.OrderID),
	}
}

// commit persists a status transition and pushes it to the order. Transitions
// models.CanTransition does not allow are rejected before any write. If the
// write fails after money moved, the operation is marked pending so the sweep
// can reconcile it.
func (e *Engine) commit(
	ctx context.Context,
	escrow *models.EscrowTransaction,
	holder string,
	moved *models.Operation,
	patch *models.EscrowPatch,
	event models.EventType,
	detail string,
) (*models.EscrowTransaction, error) {
	if patch.Status == nil || !models.CanTransition(escrow.Status, *patch.Status) {
		e.logger.Error("rejected illegal escrow transition",
			"escrow_id", escrow.ID,
			"from", escrow.Status,
			"to", patch.Status,
		)
		return nil, invalidState(escrow, "commit this transition for")
	}

	_, affectsOrder := orders.StatusFor(*patch.Status)
	if affectsOrder {
		patch.OrderSyncPending = ptr(true)
	}

	updated, err := e.escrows.Update(ctx, escrow.ID, escrow.Status, holder, patch)
	if err != nil {
		e.logger.Error("failed to commit escrow transition",
			"escrow_id", escrow.ID,
			"from", escrow.Status,
			"to", patch.Status,
			"error", err,
		)
		if moved != nil {
			e.markPending(ctx, escrow, holder, *moved)
		}
		return nil, internalError("failed to commit escrow transition", err)
	}

	e.recordEvent(ctx, updated.ID, &escrow.Status, &updated.Status, event, detail)
	e.logger.Info("escrow transition committed",
		"escrow_id", updated.ID,
		"order_id", updated.OrderID,
		"from", escrow.Status,
		"to", updated.Status,
	)

	if affectsOrder {
		if err := e.orders.Sync(ctx, updated); err == nil {
			updated.OrderSyncPending = false
		}
	}

	return updated, nil
}

// markPending records that op's outcome is unknown. It returns the updated
// record, or the original if the marker could not be written.
func (e *Engine) markPending(
	ctx context.Context,
	escrow *models.EscrowTransaction,
	holder string,
	op models.Operation,
) *models.EscrowTransaction {
	updated, err := e.escrows.Update(ctx, escrow.ID, escrow.Status, holder, &models.EscrowPatch{
		PendingOperation: &op,
	})
	if err != nil {
		e.logger.Error("failed to record pending operation",
			"escrow_id", escrow.ID,
			"operation", op,
			"error", err,
		)
		return escrow
	}

	e.recordEvent(ctx, escrow.ID, &escrow.Status, &escrow.Status, models.EventTypeOutcomeUnknown,
		fmt.Sprintf("%s outcome unknown", op))
	e.logger.Warn("provider outcome unknown; operation marked pending",
		"escrow_id", escrow.ID,
		"operation", op,
	)
	return updated
}

// recordEvent appends to the audit trail. Failures are logged only.
func (e *Engine) recordEvent(
	ctx context.Context,
	escrowID uuid.UUID,
	from, to *models.EscrowStatus,
	eventType models.EventType,
	detail string,
) {
	event := &models.EscrowEvent{
		EscrowID:   escrowID,
		Type:       eventType,
		FromStatus: from,
		ToStatus:   to,
		Detail:     detail,
		CreatedAt:  e.now(),
	}
	if err := e.events.Append(ctx, event); err != nil {
		e.logger.Warn("failed to append escrow event",
			"escrow_id", escrowID,
			"type", eventType,
			"error", err,
		)
	}
}

// resultError maps a failed money-moving call to a ServiceError
func resultError(call provider.Call, res provider.Result) *ServiceError {
	return outcomeError(call, res.Outcome, res.ErrorCode, res.Message)
}

func outcomeError(call provider.Call, outcome provider.Outcome, providerCode, message string) *ServiceError {
	detail := message
	if providerCode != "" {
		detail = fmt.Sprintf("%s (%s)", message, providerCode)
	}

	switch outcome {
	case provider.OutcomeRejected:
		return newError(ErrCodeProviderRejected, fmt.Sprintf("provider rejected %s: %s", call, detail))
	case provider.OutcomeUnavailable:
		return newError(ErrCodeProviderUnavailable, fmt.Sprintf("provider unavailable for %s; nothing was charged", call))
	case provider.OutcomeUnknown:
		return newError(ErrCodeProviderTimeout, fmt.Sprintf("%s outcome unknown; retry to resolve", call))
	case provider.OutcomeSuccess:
		return internalError(fmt.Sprintf("unexpected success outcome for %s", call), nil)
	default:
		return internalError(fmt.Sprintf("unrecognised provider outcome %q for %s", outcome, call), nil)
	}
}

func invalidState(escrow *models.EscrowTransaction, action string) *ServiceError {
	return newError(ErrCodeInvalidState, fmt.Sprintf("cannot %s escrow in status %s", action, escrow.Status))
}

func outcomeUnknown(escrow *models.EscrowTransaction) *ServiceError {
	return newError(ErrCodeOutcomeUnknown,
		fmt.Sprintf("a previous %s has an unknown outcome; it must be resolved first", *escrow.PendingOperation))
}

func cancelled(err error) *ServiceError {
	return &ServiceError{Code: ErrCodeInternalError, Message: "request cancelled before contacting provider", Err: err}
}

func errorCode(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return ErrCodeInternalError
}

func ptr[T any](v T) *T {
	return &v
}
