package service

import (
	"context"
	"fmt"

	"github.com/benx421/payment-gateway/escrow/internal/models"
)

// ResolveDispute records the outcome of a dispute settled outside the engine.
// No provider call is made: a released or refunded outcome carries the
// reference of the settlement that already moved the funds, and a held
// outcome returns the escrow to normal processing.
func (e *Engine) ResolveDispute(ctx context.Context, req ResolutionRequest) (escrow *models.EscrowTransaction, err error) {
	ctx, done := e.begin(ctx, opResolve, req.EscrowID)
	defer func() { done(err) }()

	if err := validateResolution(req); err != nil {
		return nil, err
	}

	return e.withLease(ctx, req.EscrowID, func(holder string) (*models.EscrowTransaction, error) {
		escrow, err := e.load(ctx, req.EscrowID)
		if err != nil {
			return nil, err
		}

		if alreadyResolved(escrow, req) {
			return escrow, nil
		}
		if escrow.Status != models.EscrowStatusDisputed {
			return nil, invalidState(escrow, "resolve a dispute on")
		}
		if req.Outcome == models.EscrowStatusHeld && escrow.HeldAt == nil {
			return nil, newError(ErrCodePreconditionFailed,
				"payment was never verified for this escrow; it can only be resolved as released or refunded")
		}

		now := e.now()
		patch := &models.EscrowPatch{
			Status:         ptr(req.Outcome),
			ResolvedAt:     &now,
			ResolutionNote: ptr(req.Note),
		}

		switch req.Outcome {
		case models.EscrowStatusReleased:
			patch.ReleaseRef = req.SettlementReference
			patch.ReleasedAt = &now
			patch.ReleaseCondition = ptr(models.ReleaseConditionDisputeResolution)
		case models.EscrowStatusRefunded:
			patch.RefundRef = req.SettlementReference
			patch.RefundedAt = &now
			patch.RefundReason = ptr(req.Note)
		case models.EscrowStatusHeld:
			patch.HoldReason = ptr("dispute_resolved")
		}

		return e.commit(ctx, escrow, holder, nil, patch, models.EventTypeResolved,
			fmt.Sprintf("resolved to %s: %s", req.Outcome, req.Note))
	})
}

// alreadyResolved reports whether escrow already carries the result of req, as
// opposed to a later transition into the same status
func alreadyResolved(escrow *models.EscrowTransaction, req ResolutionRequest) bool {
	if escrow.ResolvedAt == nil || escrow.Status != req.Outcome {
		return false
	}

	switch req.Outcome {
	case models.EscrowStatusReleased:
		return escrow.ReleaseCondition != nil &&
			*escrow.ReleaseCondition == models.ReleaseConditionDisputeResolution &&
			sameReference(escrow.ReleaseRef, req.SettlementReference)
	case models.EscrowStatusRefunded:
		return escrow.RefundedAt != nil && escrow.RefundedAt.Equal(*escrow.ResolvedAt) &&
			sameReference(escrow.RefundRef, req.SettlementReference)
	default:
		return true
	}
}

func sameReference(stored, requested *string) bool {
	return stored != nil && requested != nil && *stored == *requested
}

func validateResolution(req ResolutionRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	switch req.Outcome {
	case models.EscrowStatusHeld:
		return nil
	case models.EscrowStatusReleased, models.EscrowStatusRefunded:
		if req.SettlementReference == nil || *req.SettlementReference == "" {
			return newError(ErrCodeValidationFailed,
				fmt.Sprintf("a settlement reference is required to resolve a dispute as %s", req.Outcome))
		}
		return nil
	default:
		return newError(ErrCodeValidationFailed,
			fmt.Sprintf("outcome must be held, released or refunded, got %q", req.Outcome))
	}
}
