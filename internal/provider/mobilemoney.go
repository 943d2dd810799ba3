package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/benx421/payment-gateway/escrow/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// Gateway transaction states
const (
	gatewayStatusSuccessful = "successful"
	gatewayStatusPending    = "pending"
	gatewayStatusFailed     = "failed"
)

// MobileMoneyConfig locates one network's JSON gateway
type MobileMoneyConfig struct {
	Provider     models.Provider
	BaseURL      string
	APIKey       string
	RateLimitRPS float64
	Burst        int
	Timeout      time.Duration
}

// MobileMoney talks to a mobile-money gateway over JSON/HTTP
type MobileMoney struct {
	cfg     MobileMoneyConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

var _ Adapter = (*MobileMoney)(nil)

// Option customises a MobileMoney adapter
type Option func(*MobileMoney)

// WithHTTPClient replaces the instrumented default client
func WithHTTPClient(client *http.Client) Option {
	return func(m *MobileMoney) {
		m.client = client
	}
}

// NewMobileMoney creates an adapter for cfg.Provider
func NewMobileMoney(cfg MobileMoneyConfig, logger *slog.Logger, opts ...Option) *MobileMoney {
	limit := rate.Inf
	if cfg.RateLimitRPS > 0 {
		limit = rate.Limit(cfg.RateLimitRPS)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	m := &MobileMoney{
		cfg:     cfg,
		client:  &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.With("provider", string(cfg.Provider), "adapter", "mobile_money"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type transferRequest struct {
	Reference   string `json:"reference"`
	MSISDN      string `json:"msisdn"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Network     string `json:"network"`
	Description string `json:"description,omitempty"`
}

type transactionResponse struct {
	TransactionID string `json:"transaction_id"`
	Reference     string `json:"reference"`
	Status        string `json:"status"`
	Proof         string `json:"proof"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (m *MobileMoney) InitiatePayment(ctx context.Context, req PaymentRequest) Result {
	return m.transfer(ctx, "/v1/collections", req, true)
}

func (m *MobileMoney) ReleaseFunds(ctx context.Context, req PaymentRequest) Result {
	return m.transfer(ctx, "/v1/disbursements", req, false)
}

func (m *MobileMoney) RefundFunds(ctx context.Context, req PaymentRequest) Result {
	return m.transfer(ctx, "/v1/refunds", req, false)
}

// transfer posts a money movement. Collections are complete once accepted,
// since the customer approves them on the handset; a disbursement or refund
// still pending at the gateway has not settled yet and is reported unknown.
func (m *MobileMoney) transfer(ctx context.Context, path string, req PaymentRequest, pendingIsAccepted bool) Result {
	body, err := json.Marshal(transferRequest{
		Reference:   req.Reference,
		MSISDN:      req.Phone,
		Amount:      req.Amount.StringFixed(2),
		Currency:    req.Currency,
		Network:     string(m.cfg.Provider),
		Description: req.Description,
	})
	if err != nil {
		return Result{Outcome: OutcomeRejected, ErrorCode: "invalid_request", Message: err.Error()}
	}

	status, raw, outcome, msg := m.do(ctx, http.MethodPost, path, body)
	if outcome != OutcomeSuccess {
		code, message := decodeError(raw, msg)
		return Result{Outcome: outcome, ErrorCode: code, Message: message}
	}

	var txn transactionResponse
	if err := json.Unmarshal(raw, &txn); err != nil {
		return Result{Outcome: OutcomeUnknown, Message: fmt.Sprintf("unreadable response (status %d)", status)}
	}

	switch strings.ToLower(txn.Status) {
	case gatewayStatusSuccessful:
		return Result{Outcome: OutcomeSuccess, TransactionRef: txn.TransactionID}
	case gatewayStatusPending:
		if pendingIsAccepted {
			return Result{Outcome: OutcomeSuccess, TransactionRef: txn.TransactionID}
		}
		return Result{Outcome: OutcomeUnknown, TransactionRef: txn.TransactionID, Message: "transaction still pending at provider"}
	case gatewayStatusFailed:
		return Result{Outcome: OutcomeRejected, TransactionRef: txn.TransactionID, ErrorCode: "transaction_failed", Message: "provider reported failure"}
	default:
		return Result{Outcome: OutcomeUnknown, TransactionRef: txn.TransactionID, Message: "unrecognised status " + txn.Status}
	}
}

func (m *MobileMoney) VerifyPayment(ctx context.Context, _ models.Provider, transactionRef string) Verification {
	status, raw, outcome, msg := m.do(ctx, http.MethodGet, "/v1/transactions/"+url.PathEscape(transactionRef), nil)
	if status == http.StatusNotFound {
		return Verification{Outcome: OutcomeSuccess, Verified: false, Message: "no transaction for reference"}
	}
	if outcome != OutcomeSuccess {
		code, message := decodeError(raw, msg)
		return Verification{Outcome: outcome, ErrorCode: code, Message: message}
	}

	var txn transactionResponse
	if err := json.Unmarshal(raw, &txn); err != nil {
		return Verification{Outcome: OutcomeUnknown, Message: "unreadable verification response"}
	}

	switch strings.ToLower(txn.Status) {
	case gatewayStatusSuccessful:
		return Verification{Outcome: OutcomeSuccess, Verified: true, TransactionRef: txn.TransactionID, Proof: txn.Proof}
	case gatewayStatusFailed:
		return Verification{Outcome: OutcomeSuccess, Verified: false, TransactionRef: txn.TransactionID, Message: "transaction failed"}
	default:
		return Verification{Outcome: OutcomeUnknown, TransactionRef: txn.TransactionID, Message: "transaction still pending at provider"}
	}
}

// do performs one gateway request and classifies the transport-level outcome
func (m *MobileMoney) do(ctx context.Context, method, path string, body []byte) (int, []byte, Outcome, string) {
	if m.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.Timeout)
		defer cancel()
	}

	// Nothing has been sent while waiting on the limiter.
	if err := m.limiter.Wait(ctx); err != nil {
		return 0, nil, OutcomeUnavailable, "rate limit wait aborted: " + err.Error()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimSuffix(m.cfg.BaseURL, "/")+path, reader)
	if err != nil {
		return 0, nil, OutcomeRejected, err.Error()
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if m.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, nil, classifyTransportError(err), err.Error()
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, OutcomeUnknown, "failed to read response: " + err.Error()
	}

	return resp.StatusCode, raw, classifyStatus(resp.StatusCode), http.StatusText(resp.StatusCode)
}

func classifyStatus(status int) Outcome {
	switch {
	case status >= 200 && status < 300:
		return OutcomeSuccess
	case status == http.StatusTooManyRequests,
		status == http.StatusBadGateway,
		status == http.StatusServiceUnavailable:
		return OutcomeUnavailable
	case status == http.StatusRequestTimeout,
		status == http.StatusGatewayTimeout,
		status >= 500:
		return OutcomeUnknown
	case status >= 400:
		return OutcomeRejected
	default:
		return OutcomeUnknown
	}
}

// classifyTransportError separates failures where the request never left
// (dial errors) from those where it may have been processed.
func classifyTransportError(err error) Outcome {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return OutcomeUnknown
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return OutcomeUnavailable
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return OutcomeUnavailable
	}

	return OutcomeUnknown
}

func decodeError(raw []byte, fallback string) (string, string) {
	var e errorResponse
	if len(raw) > 0 && json.Unmarshal(raw, &e) == nil && (e.Code != "" || e.Message != "") {
		return e.Code, e.Message
	}
	return "", fallback
}
