package service

import (
	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InitiateRequest opens an escrow for an order and starts collection from the customer
type InitiateRequest struct {
	Amount        decimal.Decimal
	FarmerPhone   *string `validate:"omitempty,msisdn"`
	OrderID       string  `validate:"required,max=128"`
	CustomerID    string  `validate:"required,max=128"`
	FarmerID      string  `validate:"required,max=128"`
	CustomerPhone string  `validate:"required,msisdn"`
	Provider      models.Provider
}

// ConfirmRequest asks the engine to verify the collection and hold the funds
type ConfirmRequest struct {
	Proof    *string   `validate:"omitempty,max=1000"`
	EscrowID uuid.UUID `validate:"required"`
}

// ReleaseRequest pays the farmer after delivery
type ReleaseRequest struct {
	ConfirmationProof  *string   `validate:"omitempty,max=1000"`
	FarmerPhone        *string   `validate:"omitempty,msisdn"`
	ConfirmationMethod string    `validate:"required,max=64"`
	EscrowID           uuid.UUID `validate:"required"`
	DeliveryConfirmed  bool
}

// RefundRequest returns held funds to the customer
type RefundRequest struct {
	Reason   string    `validate:"required,max=500"`
	EscrowID uuid.UUID `validate:"required"`
}

// DisputeRequest freezes an escrow pending out-of-band resolution
type DisputeRequest struct {
	Reason   string    `validate:"required,max=500"`
	Evidence []string  `validate:"max=10,dive,required,max=500"`
	EscrowID uuid.UUID `validate:"required"`
}

// ResolutionRequest records the outcome of a dispute settled outside the engine.
// Released and refunded outcomes carry the reference of the settlement that
// already moved the funds.
type ResolutionRequest struct {
	SettlementReference *string `validate:"omitempty,max=128"`
	Note                string  `validate:"required,max=1000"`
	Outcome             models.EscrowStatus
	EscrowID            uuid.UUID `validate:"required"`
}
