package service

import (
	"context"
	"fmt"

	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/benx421/payment-gateway/escrow/internal/provider"
)

// Release pays the held amount to the farmer once delivery is confirmed. A
// released escrow is returned as-is.
func (e *Engine) Release(ctx context.Context, req ReleaseRequest) (escrow *models.EscrowTransaction, err error) {
	ctx, done := e.begin(ctx, opRelease, req.EscrowID)
	defer func() { done(err) }()

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	return e.withLease(ctx, req.EscrowID, func(holder string) (*models.EscrowTransaction, error) {
		escrow, err := e.load(ctx, req.EscrowID)
		if err != nil {
			return nil, err
		}

		if escrow.Status == models.EscrowStatusReleased {
			return escrow, nil
		}

		onSuccess := func(ref string) *models.EscrowPatch {
			now := e.now()
			return &models.EscrowPatch{
				Status:             ptr(models.EscrowStatusReleased),
				ReleaseRef:         &ref,
				ReleasedAt:         &now,
				ReleaseCondition:   ptr(models.ReleaseConditionDeliveryConfirmed),
				ConfirmationMethod: ptr(req.ConfirmationMethod),
				ConfirmationProof:  req.ConfirmationProof,
				FarmerPhone:        req.FarmerPhone,
				ClearPending:       true,
			}
		}

		if escrow.Status != models.EscrowStatusHeld {
			return nil, invalidState(escrow, "release")
		}

		if escrow.HasPendingOutcome() {
			if *escrow.PendingOperation != models.OperationRelease {
				return nil, outcomeUnknown(escrow)
			}
			settled, completed, err := e.settlePending(ctx, escrow, holder, onSuccess)
			if err != nil || completed {
				return settled, err
			}
			escrow = settled
		}

		if !req.DeliveryConfirmed {
			return nil, newError(ErrCodePreconditionFailed, "delivery must be confirmed before funds are released")
		}

		phone := escrow.FarmerPhone
		if req.FarmerPhone != nil {
			phone = req.FarmerPhone
		}
		if phone == nil || *phone == "" {
			return nil, newError(ErrCodePreconditionFailed, "farmer phone number is required to release funds")
		}

		return e.disburse(ctx, escrow, holder, models.OperationRelease, *phone, onSuccess)
	})
}

// disburse sends funds out of escrow for a release or refund and commits the
// transition built by onSuccess.
func (e *Engine) disburse(
	ctx context.Context,
	escrow *models.EscrowTransaction,
	holder string,
	op models.Operation,
	phone string,
	onSuccess func(ref string) *models.EscrowPatch,
) (*models.EscrowTransaction, error) {
	adapter, err := e.adapterFor(escrow.Provider)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}

	call, send := provider.CallRelease, adapter.ReleaseFunds
	if op == models.OperationRefund {
		call, send = provider.CallRefund, adapter.RefundFunds
	}

	pctx, cancel := e.providerContext(ctx)
	res := send(pctx, e.paymentRequest(escrow, op, phone))
	cancel()

	ctx = context.WithoutCancel(ctx)

	switch res.Outcome {
	case provider.OutcomeSuccess:
		event := models.EventTypeReleased
		if op == models.OperationRefund {
			event = models.EventTypeRefunded
		}
		return e.commit(ctx, escrow, holder, &op, onSuccess(res.TransactionRef), event,
			fmt.Sprintf("%s %s %s, ref %s", op, escrow.Amount.StringFixed(2), escrow.Currency, res.TransactionRef))
	case provider.OutcomeUnknown:
		e.markPending(ctx, escrow, holder, op)
		return nil, resultError(call, res)
	default:
		return nil, resultError(call, res)
	}
}
