package provider

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/benx421/payment-gateway/escrow/internal/models"
)

// SimulatedConfig tunes the in-process payment network
type SimulatedConfig struct {
	FailureRate  float64
	TimeoutRate  float64
	MinLatencyMS int
	MaxLatencyMS int
}

type simulatedEntry struct {
	call           Call
	transactionRef string
	reference      string
}

// Simulated is an in-process mobile-money network with injected latency,
// transient failures and ambiguous timeouts. It deduplicates on reference, so
// a retried request never moves funds twice.
//
// A simulated timeout still books the transaction before reporting
// OutcomeUnknown, which is the case reconciliation has to handle.
type Simulated struct {
	cfg      SimulatedConfig
	provider models.Provider
	logger   *slog.Logger

	mu          sync.Mutex
	byReference map[string]*simulatedEntry
	byTxnRef    map[string]*simulatedEntry
}

var _ Adapter = (*Simulated)(nil)

// NewSimulated creates a simulated network for provider p
func NewSimulated(p models.Provider, cfg SimulatedConfig, logger *slog.Logger) *Simulated {
	return &Simulated{
		cfg:         cfg,
		provider:    p,
		logger:      logger.With("provider", string(p), "adapter", "simulated"),
		byReference: make(map[string]*simulatedEntry),
		byTxnRef:    make(map[string]*simulatedEntry),
	}
}

func (s *Simulated) InitiatePayment(ctx context.Context, req PaymentRequest) Result {
	return s.move(ctx, CallInitiate, req)
}

func (s *Simulated) ReleaseFunds(ctx context.Context, req PaymentRequest) Result {
	return s.move(ctx, CallRelease, req)
}

func (s *Simulated) RefundFunds(ctx context.Context, req PaymentRequest) Result {
	return s.move(ctx, CallRefund, req)
}

func (s *Simulated) VerifyPayment(ctx context.Context, _ models.Provider, transactionRef string) Verification {
	if err := injectLatency(ctx, s.cfg.MinLatencyMS, s.cfg.MaxLatencyMS); err != nil {
		return Verification{Outcome: OutcomeUnknown, Message: "verification timed out"}
	}
	if shouldInjectFailure(s.cfg.FailureRate) {
		return Verification{Outcome: OutcomeUnavailable, ErrorCode: "service_unavailable", Message: "random failure injection"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.byReference[transactionRef]
	if !ok {
		entry, ok = s.byTxnRef[transactionRef]
	}
	if !ok {
		return Verification{Outcome: OutcomeSuccess, Verified: false, Message: "no transaction for reference"}
	}

	return Verification{
		Outcome:        OutcomeSuccess,
		Verified:       true,
		TransactionRef: entry.transactionRef,
		Proof:          "sim:" + string(entry.call) + ":" + entry.transactionRef,
	}
}

func (s *Simulated) move(ctx context.Context, call Call, req PaymentRequest) Result {
	if err := injectLatency(ctx, s.cfg.MinLatencyMS, s.cfg.MaxLatencyMS); err != nil {
		return Result{Outcome: OutcomeUnknown, Message: "request timed out"}
	}

	if !req.Amount.IsPositive() {
		return Result{Outcome: OutcomeRejected, ErrorCode: "invalid_amount", Message: "amount must be positive"}
	}
	if req.Phone == "" {
		return Result{Outcome: OutcomeRejected, ErrorCode: "invalid_msisdn", Message: "phone number is required"}
	}

	s.mu.Lock()
	if entry, ok := s.byReference[req.Reference]; ok {
		s.mu.Unlock()
		return Result{Outcome: OutcomeSuccess, TransactionRef: entry.transactionRef}
	}
	s.mu.Unlock()

	if shouldInjectFailure(s.cfg.FailureRate) {
		s.logger.Debug("injecting random failure", "call", call, "reference", req.Reference)
		return Result{Outcome: OutcomeUnavailable, ErrorCode: "service_unavailable", Message: "random failure injection"}
	}

	entry := &simulatedEntry{
		call:           call,
		reference:      req.Reference,
		transactionRef: newTransactionRef(s.provider),
	}

	s.mu.Lock()
	if existing, ok := s.byReference[req.Reference]; ok {
		entry = existing
	} else {
		s.byReference[req.Reference] = entry
		s.byTxnRef[entry.transactionRef] = entry
	}
	s.mu.Unlock()

	if shouldInjectFailure(s.cfg.TimeoutRate) {
		s.logger.Debug("injecting ambiguous timeout", "call", call, "reference", req.Reference)
		return Result{Outcome: OutcomeUnknown, Message: "random timeout injection"}
	}

	return Result{Outcome: OutcomeSuccess, TransactionRef: entry.transactionRef}
}

func newTransactionRef(p models.Provider) string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return string(p) + "-" + time.Now().UTC().Format("20060102150405.000000000")
	}
	return string(p) + "-" + hex.EncodeToString(buf)
}

func injectLatency(ctx context.Context, minMS, maxMS int) error {
	if minMS <= 0 && maxMS <= 0 {
		return ctx.Err()
	}

	sleepMS := minMS
	if rangeMS := maxMS - minMS; rangeMS > 0 {
		if randomOffset, err := rand.Int(rand.Reader, big.NewInt(int64(rangeMS))); err == nil {
			sleepMS += int(randomOffset.Int64())
		}
	}

	timer := time.NewTimer(time.Duration(sleepMS) * time.Millisecond)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func shouldInjectFailure(rate float64) bool {
	if rate <= 0 {
		return false
	}
	if rate >= 1 {
		return true
	}

	const precision = 1000000
	randomNum, err := rand.Int(rand.Reader, big.NewInt(precision))
	if err != nil {
		return false
	}

	threshold := int64(rate * precision)
	return randomNum.Int64() < threshold
}
