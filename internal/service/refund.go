package service

import (
	"context"

	"github.com/benx421/payment-gateway/escrow/internal/models"
)

// Refund returns the held amount to the customer. A refunded escrow is
// returned as-is.
func (e *Engine) Refund(ctx context.Context, req RefundRequest) (escrow *models.EscrowTransaction, err error) {
	ctx, done := e.begin(ctx, opRefund, req.EscrowID)
	defer func() { done(err) }()

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	return e.withLease(ctx, req.EscrowID, func(holder string) (*models.EscrowTransaction, error) {
		escrow, err := e.load(ctx, req.EscrowID)
		if err != nil {
			return nil, err
		}

		if escrow.Status == models.EscrowStatusRefunded {
			return escrow, nil
		}

		onSuccess := func(ref string) *models.EscrowPatch {
			now := e.now()
			return &models.EscrowPatch{
				Status:       ptr(models.EscrowStatusRefunded),
				RefundRef:    &ref,
				RefundedAt:   &now,
				RefundReason: ptr(req.Reason),
				ClearPending: true,
			}
		}

		if escrow.Status != models.EscrowStatusHeld {
			return nil, invalidState(escrow, "refund")
		}

		if escrow.HasPendingOutcome() {
			if *escrow.PendingOperation != models.OperationRefund {
				return nil, outcomeUnknown(escrow)
			}
			settled, completed, err := e.settlePending(ctx, escrow, holder, onSuccess)
			if err != nil || completed {
				return settled, err
			}
			escrow = settled
		}

		return e.disburse(ctx, escrow, holder, models.OperationRefund, escrow.CustomerPhone, onSuccess)
	})
}
