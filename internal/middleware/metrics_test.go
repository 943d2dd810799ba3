package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benx421/payment-gateway/escrow/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics(metrics.HTTP()))
	r.Get("/api/v1/escrows/{transactionId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/escrows/esc_123", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	found := false
	for _, family := range families {
		if family.GetName() != "escrow_http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			if labels["route"] == "/api/v1/escrows/{transactionId}" && labels["status"] == "404" {
				found = true
			}
		}
	}
	assert.True(t, found, "request should be recorded under its route pattern")
}

func TestMetrics_DefaultsStatusToOK(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics(metrics.HTTP()))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok")) //nolint:errcheck // test handler
	})

	before, err := testutil.GatherAndCount(prometheus.DefaultGatherer, "escrow_http_requests_total")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	after, err := testutil.GatherAndCount(prometheus.DefaultGatherer, "escrow_http_requests_total")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after, before)
}

func TestMetrics_NilRegistryPassesThrough(t *testing.T) {
	handlerCalled := false
	handler := Metrics(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/anything", nil))

	assert.True(t, handlerCalled)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
