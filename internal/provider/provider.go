// Package provider is the boundary to the mobile-money networks that actually
// move funds. Every call reports a tagged Outcome; no Go error crosses it.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/shopspring/decimal"
)

// Outcome classifies a provider call
type Outcome string

const (
	// OutcomeSuccess means the provider accepted and completed the call
	OutcomeSuccess Outcome = "success"
	// OutcomeRejected is a permanent refusal; retrying will not help
	OutcomeRejected Outcome = "rejected"
	// OutcomeUnavailable means the request was not accepted; nothing happened
	OutcomeUnavailable Outcome = "unavailable"
	// OutcomeUnknown means the call timed out or failed ambiguously; funds may
	// or may not have moved
	OutcomeUnknown Outcome = "unknown"
)

// Call names the adapter method, used in logs and metrics
type Call string

const (
	CallInitiate Call = "initiate_payment"
	CallVerify   Call = "verify_payment"
	CallRelease  Call = "release_funds"
	CallRefund   Call = "refund_funds"
)

// PaymentRequest moves amount to or from phone. Reference is deterministic per
// escrow and operation so the provider can deduplicate retries.
type PaymentRequest struct {
	Amount      decimal.Decimal
	Provider    models.Provider
	Phone       string
	Currency    string
	Reference   string
	Description string
}

// Result is the outcome of a money-moving call
type Result struct {
	Outcome        Outcome
	TransactionRef string
	ErrorCode      string
	Message        string
}

// Verification is the outcome of a status lookup. With OutcomeSuccess,
// Verified tells whether the referenced transaction completed; false means the
// provider definitively has no completed transaction for the reference.
type Verification struct {
	Outcome        Outcome
	Verified       bool
	TransactionRef string
	Proof          string
	ErrorCode      string
	Message        string
}

// Adapter is implemented once per payment network
type Adapter interface {
	InitiatePayment(ctx context.Context, req PaymentRequest) Result
	VerifyPayment(ctx context.Context, provider models.Provider, transactionRef string) Verification
	ReleaseFunds(ctx context.Context, req PaymentRequest) Result
	RefundFunds(ctx context.Context, req PaymentRequest) Result
}

// ErrUnsupportedProvider is returned for a provider with no registered adapter
var ErrUnsupportedProvider = errors.New("unsupported provider")

// Registry selects the adapter for a provider
type Registry struct {
	adapters map[models.Provider]Adapter
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[models.Provider]Adapter)}
}

// Register binds adapter to p, replacing any previous binding
func (r *Registry) Register(p models.Provider, adapter Adapter) {
	r.adapters[p] = adapter
}

// Adapter returns the adapter registered for p
func (r *Registry) Adapter(p models.Provider) (Adapter, error) {
	adapter, ok := r.adapters[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, p)
	}
	return adapter, nil
}

// Providers lists the registered providers
func (r *Registry) Providers() []models.Provider {
	providers := make([]models.Provider, 0, len(r.adapters))
	for _, p := range models.Providers {
		if _, ok := r.adapters[p]; ok {
			providers = append(providers, p)
		}
	}
	return providers
}
