package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Provider identifies the mobile-money network that holds and moves the funds
type Provider string

const (
	ProviderMTNMoMo         Provider = "mtn_momo"
	ProviderVodafoneCash    Provider = "vodafone_cash"
	ProviderAirtelTigoMoney Provider = "airteltigo_money"
)

// Providers lists every supported network
var Providers = []Provider{ProviderMTNMoMo, ProviderVodafoneCash, ProviderAirtelTigoMoney}

// Valid reports whether p is a supported provider
func (p Provider) Valid() bool {
	switch p {
	case ProviderMTNMoMo, ProviderVodafoneCash, ProviderAirtelTigoMoney:
		return true
	default:
		return false
	}
}

// Operation names a money-moving provider call whose outcome can be unknown
type Operation string

const (
	OperationCollect Operation = "collect"
	OperationRelease Operation = "release"
	OperationRefund  Operation = "refund"
)

// Valid reports whether o is a known operation
func (o Operation) Valid() bool {
	switch o {
	case OperationCollect, OperationRelease, OperationRefund:
		return true
	default:
		return false
	}
}

// Reference returns the deterministic provider reference for this operation on
// the given escrow. Providers deduplicate on it.
func (o Operation) Reference(id uuid.UUID) string {
	return string(o) + "-" + id.String()
}

// Release conditions recorded on the transition to released
const (
	ReleaseConditionDeliveryConfirmed = "delivery_confirmed"
	ReleaseConditionDisputeResolution = "dispute_resolution"
)

// EscrowTransaction is the durable record of one order's funds held in trust
type EscrowTransaction struct {
	CreatedAt              time.Time       `db:"created_at"`
	UpdatedAt              time.Time       `db:"updated_at"`
	Amount                 decimal.Decimal `db:"amount"`
	FarmerPhone            *string         `db:"farmer_phone"`
	ProviderTransactionRef *string         `db:"provider_transaction_ref"`
	ReleaseRef             *string         `db:"release_ref"`
	RefundRef              *string         `db:"refund_ref"`
	PaymentProof           *string         `db:"payment_proof"`
	VerificationProof      *string         `db:"verification_proof"`
	ReleaseCondition       *string         `db:"release_condition"`
	ConfirmationMethod     *string         `db:"confirmation_method"`
	ConfirmationProof      *string         `db:"confirmation_proof"`
	HoldReason             *string         `db:"hold_reason"`
	RefundReason           *string         `db:"refund_reason"`
	DisputeReason          *string         `db:"dispute_reason"`
	ResolutionNote         *string         `db:"resolution_note"`
	PendingOperation       *Operation      `db:"pending_operation"`
	PendingSince           *time.Time      `db:"pending_since"`
	HeldAt                 *time.Time      `db:"held_at"`
	ReleasedAt             *time.Time      `db:"released_at"`
	RefundedAt             *time.Time      `db:"refunded_at"`
	DisputedAt             *time.Time      `db:"disputed_at"`
	ResolvedAt             *time.Time      `db:"resolved_at"`
	OrderID                string          `db:"order_id"`
	CustomerID             string          `db:"customer_id"`
	FarmerID               string          `db:"farmer_id"`
	Currency               string          `db:"currency"`
	Provider               Provider        `db:"provider"`
	CustomerPhone          string          `db:"customer_phone"`
	Status                 EscrowStatus    `db:"status"`
	DisputeEvidence        []string        `db:"dispute_evidence"`
	OrderSyncPending       bool            `db:"order_sync_pending"`
	ID                     uuid.UUID       `db:"id"`
}

// HasPendingOutcome reports whether a provider call for this record ended with
// an unknown outcome that has not been resolved yet.
func (e *EscrowTransaction) HasPendingOutcome() bool {
	return e.PendingOperation != nil
}

// SameDefinition reports whether other describes the same logical escrow:
// same order, parties, amount and provider.
func (e *EscrowTransaction) SameDefinition(other *EscrowTransaction) bool {
	return e.OrderID == other.OrderID &&
		e.CustomerID == other.CustomerID &&
		e.FarmerID == other.FarmerID &&
		e.Amount.Equal(other.Amount) &&
		e.Provider == other.Provider &&
		e.CustomerPhone == other.CustomerPhone
}

// EscrowPatch lists the fields a single conditional update may set. Nil fields
// are left untouched.
type EscrowPatch struct {
	Status                 *EscrowStatus
	FarmerPhone            *string
	ProviderTransactionRef *string
	ReleaseRef             *string
	RefundRef              *string
	PaymentProof           *string
	VerificationProof      *string
	ReleaseCondition       *string
	ConfirmationMethod     *string
	ConfirmationProof      *string
	HoldReason             *string
	RefundReason           *string
	DisputeReason          *string
	DisputeEvidence        []string
	ResolutionNote         *string
	PendingOperation       *Operation
	HeldAt                 *time.Time
	ReleasedAt             *time.Time
	RefundedAt             *time.Time
	DisputedAt             *time.Time
	ResolvedAt             *time.Time
	OrderSyncPending       *bool
	ClearPending           bool
}
