package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/benx421/payment-gateway/escrow/internal/provider"
	"github.com/google/uuid"
)

// Initiate opens a pending escrow for the order and asks the provider to
// collect the amount from the customer.
//
// A retry with the same definition while the escrow is active returns the
// existing record, re-attempting collection only if it never reached the
// provider. On a provider failure the pending record is returned alongside
// the error so callers can report its ID.
func (e *Engine) Initiate(ctx context.Context, req InitiateRequest) (escrow *models.EscrowTransaction, err error) {
	ctx, done := e.begin(ctx, opInitiate, uuid.Nil)
	defer func() { done(err) }()

	if err := e.validateInitiate(req); err != nil {
		return nil, err
	}

	adapter, err := e.adapterFor(req.Provider)
	if err != nil {
		return nil, err
	}

	candidate := &models.EscrowTransaction{
		ID:            uuid.New(),
		OrderID:       req.OrderID,
		CustomerID:    req.CustomerID,
		FarmerID:      req.FarmerID,
		Amount:        req.Amount,
		Currency:      e.cfg.Currency,
		Provider:      req.Provider,
		CustomerPhone: req.CustomerPhone,
		FarmerPhone:   req.FarmerPhone,
		Status:        models.EscrowStatusPending,
	}

	existing, err := e.escrows.FindActiveByOrderID(ctx, req.OrderID)
	switch {
	case err == nil:
		return e.resumeInitiate(ctx, existing, candidate, adapter)
	case !errors.Is(err, models.ErrNotFound):
		return nil, internalError("failed to look up order", err)
	}

	holder := e.newHolder()
	err = e.escrows.Create(ctx, candidate, holder, e.cfg.LeaseTTL)
	if errors.Is(err, models.ErrDuplicateTransaction) {
		// Lost a race with a concurrent initiate for the same order
		existing, findErr := e.escrows.FindActiveByOrderID(ctx, req.OrderID)
		if findErr != nil {
			return nil, newError(ErrCodeDuplicateTransaction, "an active escrow already exists for this order")
		}
		return e.resumeInitiate(ctx, existing, candidate, adapter)
	}
	if err != nil {
		return nil, internalError("failed to create escrow", err)
	}
	defer e.releaseLease(ctx, candidate.ID, holder)

	e.recordEvent(ctx, candidate.ID, nil, &candidate.Status, models.EventTypeInitiated,
		fmt.Sprintf("order %s, %s %s via %s", candidate.OrderID, candidate.Amount.StringFixed(2), candidate.Currency, candidate.Provider))
	e.logger.Info("escrow created",
		"escrow_id", candidate.ID,
		"order_id", candidate.OrderID,
		"amount", candidate.Amount.StringFixed(2),
		"provider", candidate.Provider,
	)

	return e.collect(ctx, candidate, holder, adapter)
}

func (e *Engine) validateInitiate(req InitiateRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if err := ValidateAmount(req.Amount); err != nil {
		return newError(ErrCodeValidationFailed, err.Error())
	}
	if !req.Provider.Valid() {
		return newError(ErrCodeValidationFailed, fmt.Sprintf("unsupported provider: %s", req.Provider))
	}
	return nil
}

// resumeInitiate handles an initiate for an order that already has an active escrow
func (e *Engine) resumeInitiate(
	ctx context.Context,
	existing, candidate *models.EscrowTransaction,
	adapter provider.Adapter,
) (*models.EscrowTransaction, error) {
	if !existing.SameDefinition(candidate) {
		return nil, newError(ErrCodeDuplicateTransaction, "an active escrow already exists for this order")
	}
	if !needsCollection(existing) {
		return existing, nil
	}

	return e.withLease(ctx, existing.ID, func(holder string) (*models.EscrowTransaction, error) {
		current, err := e.load(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
		if !needsCollection(current) {
			return current, nil
		}
		return e.collect(ctx, current, holder, adapter)
	})
}

// needsCollection reports whether the escrow's collection never reached a
// known provider outcome
func needsCollection(escrow *models.EscrowTransaction) bool {
	return escrow.Status == models.EscrowStatusPending &&
		escrow.ProviderTransactionRef == nil &&
		!escrow.HasPendingOutcome()
}

func (e *Engine) collect(
	ctx context.Context,
	escrow *models.EscrowTransaction,
	holder string,
	adapter provider.Adapter,
) (*models.EscrowTransaction, error) {
	if err := ctx.Err(); err != nil {
		return escrow, cancelled(err)
	}

	pctx, cancel := e.providerContext(ctx)
	res := adapter.InitiatePayment(pctx, e.paymentRequest(escrow, models.OperationCollect, escrow.CustomerPhone))
	cancel()

	ctx = context.WithoutCancel(ctx)

	switch res.Outcome {
	case provider.OutcomeSuccess:
		ref := res.TransactionRef
		updated, err := e.escrows.Update(ctx, escrow.ID, escrow.Status, holder, &models.EscrowPatch{
			ProviderTransactionRef: &ref,
		})
		if err != nil {
			e.markPending(ctx, escrow, holder, models.OperationCollect)
			return escrow, internalError("failed to record provider transaction", err)
		}
		e.logger.Info("collection requested",
			"escrow_id", escrow.ID,
			"provider_transaction_ref", ref,
		)
		return updated, nil
	case provider.OutcomeUnknown:
		return e.markPending(ctx, escrow, holder, models.OperationCollect),
			resultError(provider.CallInitiate, res)
	default:
		return escrow, resultError(provider.CallInitiate, res)
	}
}
