package service

import (
	"context"

	"github.com/benx421/payment-gateway/escrow/internal/models"
)

// RaiseDispute freezes a pending or held escrow. A disputed escrow is
// returned as-is.
func (e *Engine) RaiseDispute(ctx context.Context, req DisputeRequest) (escrow *models.EscrowTransaction, err error) {
	ctx, done := e.begin(ctx, opDispute, req.EscrowID)
	defer func() { done(err) }()

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	return e.withLease(ctx, req.EscrowID, func(holder string) (*models.EscrowTransaction, error) {
		escrow, err := e.load(ctx, req.EscrowID)
		if err != nil {
			return nil, err
		}

		if escrow.Status == models.EscrowStatusDisputed {
			return escrow, nil
		}
		if !models.CanTransition(escrow.Status, models.EscrowStatusDisputed) {
			return nil, invalidState(escrow, "dispute")
		}
		if escrow.HasPendingOutcome() {
			return nil, outcomeUnknown(escrow)
		}

		now := e.now()
		evidence := req.Evidence
		if evidence == nil {
			evidence = []string{}
		}

		return e.commit(ctx, escrow, holder, nil, &models.EscrowPatch{
			Status:          ptr(models.EscrowStatusDisputed),
			DisputeReason:   ptr(req.Reason),
			DisputeEvidence: evidence,
			DisputedAt:      &now,
		}, models.EventTypeDisputed, req.Reason)
	})
}
