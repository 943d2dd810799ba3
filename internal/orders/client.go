package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/benx421/payment-gateway/escrow/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPUpdater updates order status through the order service's REST API
type HTTPUpdater struct {
	baseURL string
	client  *http.Client
}

var _ Updater = (*HTTPUpdater)(nil)

// NewHTTPUpdater creates an updater for the order service at baseURL
func NewHTTPUpdater(baseURL string, timeout time.Duration) *HTTPUpdater {
	return &HTTPUpdater{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type statusUpdate struct {
	Status string `json:"status"`
}

// UpdateOrderStatus sends PUT {base}/orders/{id}/status
func (u *HTTPUpdater) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	body, err := json.Marshal(statusUpdate{Status: string(status)})
	if err != nil {
		return fmt.Errorf("failed to encode order status: %w", err)
	}

	endpoint := u.baseURL + "/orders/" + url.PathEscape(orderID) + "/status"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build order status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("order service request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("order service returned status %d", resp.StatusCode)
	}
	return nil
}

// LogUpdater records order status changes in the log only, for deployments
// without an order service endpoint
type LogUpdater struct {
	logger *slog.Logger
}

var _ Updater = (*LogUpdater)(nil)

// NewLogUpdater creates a LogUpdater
func NewLogUpdater(logger *slog.Logger) *LogUpdater {
	return &LogUpdater{logger: logger}
}

func (u *LogUpdater) UpdateOrderStatus(_ context.Context, orderID string, status models.OrderStatus) error {
	u.logger.Info("order status change", "order_id", orderID, "order_status", status)
	return nil
}
