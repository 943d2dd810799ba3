package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPUpdater_UpdateOrderStatus(t *testing.T) {
	t.Run("sends status update", func(t *testing.T) {
		var gotPath, gotMethod string
		var got statusUpdate

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.EscapedPath()
			gotMethod = r.Method
			_ = json.NewDecoder(r.Body).Decode(&got) //nolint:errcheck
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		updater := NewHTTPUpdater(server.URL+"/", time.Second)
		err := updater.UpdateOrderStatus(context.Background(), "order/7", models.OrderStatusDelivered)

		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, gotMethod)
		assert.Equal(t, "/orders/order%2F7/status", gotPath)
		assert.Equal(t, "delivered", got.Status)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		err := NewHTTPUpdater(server.URL, time.Second).
			UpdateOrderStatus(context.Background(), "order-1", models.OrderStatusConfirmed)

		assert.ErrorContains(t, err, "503")
	})

	t.Run("unreachable service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := server.URL
		server.Close()

		err := NewHTTPUpdater(url, time.Second).
			UpdateOrderStatus(context.Background(), "order-1", models.OrderStatusConfirmed)

		assert.Error(t, err)
	})
}

func TestLogUpdater(t *testing.T) {
	err := NewLogUpdater(testLogger()).UpdateOrderStatus(context.Background(), "order-1", models.OrderStatusCancelled)
	assert.NoError(t, err)
}
