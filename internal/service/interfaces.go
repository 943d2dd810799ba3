package service

import (
	"context"

	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/google/uuid"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// Initiator opens escrows
type Initiator interface {
	Initiate(ctx context.Context, req InitiateRequest) (*models.EscrowTransaction, error)
}

// PaymentConfirmer moves a pending escrow to held once the collection is verified
type PaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, req ConfirmRequest) (*models.EscrowTransaction, error)
}

// Releaser pays held funds to the farmer
type Releaser interface {
	Release(ctx context.Context, req ReleaseRequest) (*models.EscrowTransaction, error)
}

// Refunder returns held funds to the customer
type Refunder interface {
	Refund(ctx context.Context, req RefundRequest) (*models.EscrowTransaction, error)
}

// Disputer freezes an escrow
type Disputer interface {
	RaiseDispute(ctx context.Context, req DisputeRequest) (*models.EscrowTransaction, error)
}

// DisputeResolver records the out-of-band outcome of a dispute
type DisputeResolver interface {
	ResolveDispute(ctx context.Context, req ResolutionRequest) (*models.EscrowTransaction, error)
}

// EscrowReader reads escrow records and their audit trail
type EscrowReader interface {
	GetEscrow(ctx context.Context, id uuid.UUID) (*models.EscrowTransaction, error)
	ListEvents(ctx context.Context, id uuid.UUID) ([]*models.EscrowEvent, error)
}

// Reconciler settles unknown provider outcomes and retries order syncs
type Reconciler interface {
	ResolvePending(ctx context.Context, id uuid.UUID) (*models.EscrowTransaction, error)
	ResyncOrder(ctx context.Context, id uuid.UUID) error
}

// EscrowService is everything the HTTP layer needs
type EscrowService interface {
	Initiator
	PaymentConfirmer
	Releaser
	Refunder
	Disputer
	DisputeResolver
	EscrowReader
}

// Ensure concrete types implement interfaces
var (
	_ EscrowService = (*Engine)(nil)
	_ Reconciler    = (*Engine)(nil)
)
