package service

import (
	"context"
	"fmt"

	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/benx421/payment-gateway/escrow/internal/provider"
	"github.com/google/uuid"
)

// Pending resolution labels
const (
	resolutionCompleted    = "completed"
	resolutionNotCompleted = "not_completed"
	resolutionUnknown      = "still_unknown"
)

// ResolvePending settles an escrow's unknown provider outcome by asking the
// provider what happened. An escrow with nothing pending is returned as-is.
func (e *Engine) ResolvePending(ctx context.Context, id uuid.UUID) (escrow *models.EscrowTransaction, err error) {
	ctx, done := e.begin(ctx, opResolvePending, id)
	defer func() { done(err) }()

	return e.withLease(ctx, id, func(holder string) (*models.EscrowTransaction, error) {
		escrow, err := e.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if !escrow.HasPendingOutcome() {
			return escrow, nil
		}

		settled, _, err := e.settlePending(ctx, escrow, holder, e.defaultSettlement(escrow))
		return settled, err
	})
}

// ResyncOrder retries the order status update for an escrow whose last sync
// was not acknowledged. It holds the lease so the status it pushes is the
// latest committed one.
func (e *Engine) ResyncOrder(ctx context.Context, id uuid.UUID) error {
	_, err := e.withLease(ctx, id, func(string) (*models.EscrowTransaction, error) {
		escrow, err := e.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if !escrow.OrderSyncPending {
			return escrow, nil
		}

		if err := e.orders.Resync(ctx, escrow); err != nil {
			return nil, internalError("order sync failed", err)
		}
		return escrow, nil
	})
	return err
}

// settlePending verifies the pending operation with the provider. completed is
// true when the provider confirms the operation happened and the transition
// built by onSuccess was committed. When the provider has no record of it the
// marker is cleared and the returned record may be retried.
func (e *Engine) settlePending(
	ctx context.Context,
	escrow *models.EscrowTransaction,
	holder string,
	onSuccess func(ref string) *models.EscrowPatch,
) (settled *models.EscrowTransaction, completed bool, err error) {
	op := *escrow.PendingOperation

	adapter, err := e.adapterFor(escrow.Provider)
	if err != nil {
		return escrow, false, err
	}

	pctx, cancel := e.providerContext(ctx)
	verification := adapter.VerifyPayment(pctx, escrow.Provider, op.Reference(escrow.ID))
	cancel()

	ctx = context.WithoutCancel(ctx)

	switch {
	case verification.Outcome != provider.OutcomeSuccess:
		e.metrics.RecordPendingResolution(string(op), resolutionUnknown)
		return escrow, false, outcomeUnknown(escrow)

	case !verification.Verified:
		e.metrics.RecordPendingResolution(string(op), resolutionNotCompleted)
		cleared, err := e.clearPending(ctx, escrow, holder, fmt.Sprintf("%s not completed", op))
		return cleared, false, err

	default:
		e.metrics.RecordPendingResolution(string(op), resolutionCompleted)
		patch := onSuccess(verification.TransactionRef)
		if op == models.OperationCollect {
			updated, err := e.escrows.Update(ctx, escrow.ID, escrow.Status, holder, patch)
			if err != nil {
				return escrow, false, internalError("failed to record collection", err)
			}
			e.recordEvent(ctx, escrow.ID, &escrow.Status, &escrow.Status, models.EventTypeOutcomeResolved,
				fmt.Sprintf("%s completed, ref %s", op, verification.TransactionRef))
			return updated, true, nil
		}

		event := models.EventTypeReleased
		if op == models.OperationRefund {
			event = models.EventTypeRefunded
		}
		e.recordEvent(ctx, escrow.ID, &escrow.Status, &escrow.Status, models.EventTypeOutcomeResolved,
			fmt.Sprintf("%s completed, ref %s", op, verification.TransactionRef))
		updated, err := e.commit(ctx, escrow, holder, &op, patch, event,
			fmt.Sprintf("%s %s %s, ref %s", op, escrow.Amount.StringFixed(2), escrow.Currency, verification.TransactionRef))
		return updated, err == nil, err
	}
}

// defaultSettlement builds the transition for a pending operation found
// complete outside of a client request
func (e *Engine) defaultSettlement(escrow *models.EscrowTransaction) func(ref string) *models.EscrowPatch {
	return func(ref string) *models.EscrowPatch {
		now := e.now()
		switch *escrow.PendingOperation {
		case models.OperationRelease:
			return &models.EscrowPatch{
				Status:           ptr(models.EscrowStatusReleased),
				ReleaseRef:       &ref,
				ReleasedAt:       &now,
				ReleaseCondition: ptr(models.ReleaseConditionDeliveryConfirmed),
				ClearPending:     true,
			}
		case models.OperationRefund:
			return &models.EscrowPatch{
				Status:       ptr(models.EscrowStatusRefunded),
				RefundRef:    &ref,
				RefundedAt:   &now,
				ClearPending: true,
			}
		default:
			return &models.EscrowPatch{
				ProviderTransactionRef: &ref,
				ClearPending:           true,
			}
		}
	}
}

// clearPending drops the pending marker after the provider confirmed the
// operation never happened
func (e *Engine) clearPending(
	ctx context.Context,
	escrow *models.EscrowTransaction,
	holder string,
	detail string,
) (*models.EscrowTransaction, error) {
	updated, err := e.escrows.Update(ctx, escrow.ID, escrow.Status, holder, &models.EscrowPatch{ClearPending: true})
	if err != nil {
		return escrow, internalError("failed to clear pending operation", err)
	}

	e.recordEvent(ctx, escrow.ID, &escrow.Status, &escrow.Status, models.EventTypeOutcomeResolved, detail)
	e.logger.Info("pending operation cleared",
		"escrow_id", escrow.ID,
		"operation", escrow.PendingOperation,
		"detail", detail,
	)
	return updated, nil
}
