package service

import (
	"context"
	"fmt"

	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/benx421/payment-gateway/escrow/internal/provider"
)

const holdReasonPaymentVerified = "payment_verified"

// ConfirmPayment verifies the customer's payment with the provider and moves
// the escrow from pending to held. A held escrow is returned as-is.
func (e *Engine) ConfirmPayment(ctx context.Context, req ConfirmRequest) (escrow *models.EscrowTransaction, err error) {
	ctx, done := e.begin(ctx, opConfirm, req.EscrowID)
	defer func() { done(err) }()

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	return e.withLease(ctx, req.EscrowID, func(holder string) (*models.EscrowTransaction, error) {
		escrow, err := e.load(ctx, req.EscrowID)
		if err != nil {
			return nil, err
		}

		if escrow.Status == models.EscrowStatusHeld {
			return escrow, nil
		}
		if escrow.Status != models.EscrowStatusPending {
			return nil, invalidState(escrow, "confirm payment for")
		}
		if escrow.HasPendingOutcome() && *escrow.PendingOperation != models.OperationCollect {
			return nil, outcomeUnknown(escrow)
		}
		if escrow.ProviderTransactionRef == nil && !escrow.HasPendingOutcome() {
			return nil, newError(ErrCodePreconditionFailed, "payment collection has not been started for this escrow")
		}

		return e.confirm(ctx, escrow, holder, req.Proof)
	})
}

func (e *Engine) confirm(
	ctx context.Context,
	escrow *models.EscrowTransaction,
	holder string,
	proof *string,
) (*models.EscrowTransaction, error) {
	adapter, err := e.adapterFor(escrow.Provider)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}

	reference := models.OperationCollect.Reference(escrow.ID)
	if escrow.ProviderTransactionRef != nil {
		reference = *escrow.ProviderTransactionRef
	}

	pctx, cancel := e.providerContext(ctx)
	verification := adapter.VerifyPayment(pctx, escrow.Provider, reference)
	cancel()

	ctx = context.WithoutCancel(ctx)

	if verification.Outcome != provider.OutcomeSuccess {
		return nil, outcomeError(provider.CallVerify, verification.Outcome, verification.ErrorCode, verification.Message)
	}

	if !verification.Verified {
		if escrow.HasPendingOutcome() {
			// The collection never completed; clear the marker so a retried
			// initiate can request it again.
			if _, err := e.clearPending(ctx, escrow, holder, "collect not completed"); err != nil {
				return nil, err
			}
			e.metrics.RecordPendingResolution(string(models.OperationCollect), resolutionNotCompleted)
		}
		return nil, newError(ErrCodePaymentNotVerified, "the provider has no completed payment for this escrow yet")
	}

	now := e.now()
	patch := &models.EscrowPatch{
		Status:       ptr(models.EscrowStatusHeld),
		HeldAt:       &now,
		HoldReason:   ptr(holdReasonPaymentVerified),
		PaymentProof: proof,
		ClearPending: true,
	}
	if verification.Proof != "" {
		patch.VerificationProof = ptr(verification.Proof)
	}
	if escrow.ProviderTransactionRef == nil && verification.TransactionRef != "" {
		patch.ProviderTransactionRef = ptr(verification.TransactionRef)
	}

	if escrow.HasPendingOutcome() {
		e.metrics.RecordPendingResolution(string(models.OperationCollect), resolutionCompleted)
	}

	return e.commit(ctx, escrow, holder, nil, patch, models.EventTypeHeld,
		fmt.Sprintf("payment verified, ref %s", reference))
}
