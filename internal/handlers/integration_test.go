//nolint:errcheck // unchecked errors are acceptable in test files
package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benx421/payment-gateway/escrow/internal/db"
	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/benx421/payment-gateway/escrow/internal/orders"
	"github.com/benx421/payment-gateway/escrow/internal/provider"
	"github.com/benx421/payment-gateway/escrow/internal/repository"
	"github.com/benx421/payment-gateway/escrow/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServer runs the full router against sqlite and simulated providers
type testServer struct {
	server *httptest.Server
}

func setupServer(t *testing.T) *testServer {
	t.Helper()

	logger := testLogger()
	database := db.NewTestDB(t)

	escrows := repository.NewEscrowRepository(database)
	events := repository.NewEventRepository(database)
	idempotency := repository.NewIdempotencyRepository(database)

	registry := provider.NewRegistry()
	for _, p := range models.Providers {
		registry.Register(p, provider.NewSimulated(p, provider.SimulatedConfig{}, logger))
	}

	engine := service.NewEngine(
		escrows,
		events,
		registry,
		orders.NewSynchronizer(orders.NewLogUpdater(logger), escrows, nil, logger),
		service.EngineConfig{
			Currency:        "GHS",
			ProviderTimeout: time.Second,
			LeaseTTL:        5 * time.Second,
			LeaseWait:       3 * time.Second,
		},
		nil,
		logger,
	)

	router, err := NewRouter(engine, database, idempotency, logger)
	require.NoError(t, err)

	ts := &testServer{server: httptest.NewServer(router)}
	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) url(path string) string {
	return ts.server.URL + path
}

func (ts *testServer) post(t *testing.T, path, idempotencyKey string, body any) *http.Response {
	t.Helper()

	jsonBody, _ := json.Marshal(body)

	req, err := http.NewRequest(http.MethodPost, ts.url(path), bytes.NewReader(jsonBody))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func initiateBody(orderID string) map[string]any {
	return map[string]any{
		"order_id":       orderID,
		"customer_id":    "cust-1",
		"farmer_id":      "farm-1",
		"amount":         "250.50",
		"provider":       "mtn_momo",
		"customer_phone": "0241234567",
		"farmer_phone":   "0201234567",
	}
}

// heldEscrow initiates and confirms an escrow, returning its transaction id
func (ts *testServer) heldEscrow(t *testing.T, orderID string) string {
	t.Helper()

	resp := ts.post(t, "/api/v1/escrows", orderID+"-init", initiateBody(orderID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeBody(t, resp)
	id := created["transaction_id"].(string)

	resp = ts.post(t, "/api/v1/escrows/confirmations", orderID+"-confirm", map[string]any{
		"transaction_id": id,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "held", decodeBody(t, resp)["status"])

	return id
}

func (ts *testServer) eventTypes(t *testing.T, id string) []string {
	t.Helper()

	resp, err := http.Get(ts.url("/api/v1/escrows/" + id + "/events"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Events []struct {
			Type string `json:"type"`
		} `json:"events"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()

	types := make([]string, 0, len(list.Events))
	for _, event := range list.Events {
		types = append(types, event.Type)
	}
	return types
}

func TestAPI_HappyPath(t *testing.T) {
	ts := setupServer(t)

	resp := ts.post(t, "/api/v1/escrows", "happy-init", initiateBody("order-happy"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeBody(t, resp)

	assert.Equal(t, true, created["success"])
	assert.Equal(t, "pending", created["status"])
	assert.NotEmpty(t, created["provider_reference"])
	id := created["transaction_id"].(string)
	assert.True(t, strings.HasPrefix(id, "esc_"))

	resp = ts.post(t, "/api/v1/escrows/confirmations", "happy-confirm", map[string]any{"transaction_id": id})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "held", decodeBody(t, resp)["status"])

	resp = ts.post(t, "/api/v1/escrows/releases", "happy-release", map[string]any{
		"transaction_id":      id,
		"delivery_confirmed":  true,
		"confirmation_method": "buyer_app",
		"confirmation_proof":  "otp-9911",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	released := decodeBody(t, resp)
	assert.Equal(t, "released", released["status"])
	assert.NotEmpty(t, released["release_reference"])

	resp, err := http.Get(ts.url("/api/v1/escrows/" + id))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	record := decodeBody(t, resp)

	assert.Equal(t, "released", record["status"])
	assert.Equal(t, "250.50", record["amount"])
	assert.Equal(t, "GHS", record["currency"])
	assert.Equal(t, "delivery_confirmed", record["release_condition"])
	assert.Equal(t, "buyer_app", record["confirmation_method"])
	assert.NotEmpty(t, record["verification_proof"])
	assert.Nil(t, record["refund_ref"])

	assert.Equal(t, []string{"escrow.initiated", "escrow.held", "escrow.released"}, ts.eventTypes(t, id))
}

func TestAPI_RefundPath(t *testing.T) {
	ts := setupServer(t)
	id := ts.heldEscrow(t, "order-refund")

	resp := ts.post(t, "/api/v1/escrows/refunds", "refund-1", map[string]any{
		"transaction_id": id,
		"reason":         "farmer cancelled",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	refunded := decodeBody(t, resp)
	assert.Equal(t, "refunded", refunded["status"])
	assert.NotEmpty(t, refunded["refund_reference"])

	resp = ts.post(t, "/api/v1/escrows/releases", "release-after-refund", map[string]any{
		"transaction_id":      id,
		"delivery_confirmed":  true,
		"confirmation_method": "buyer_app",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "invalid_state", body["kind"])
}

func TestAPI_ReleaseBeforeHold(t *testing.T) {
	ts := setupServer(t)

	resp := ts.post(t, "/api/v1/escrows", "early-init", initiateBody("order-early"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id := decodeBody(t, resp)["transaction_id"].(string)

	resp = ts.post(t, "/api/v1/escrows/releases", "early-release", map[string]any{
		"transaction_id":      id,
		"delivery_confirmed":  true,
		"confirmation_method": "buyer_app",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "invalid_state", decodeBody(t, resp)["kind"])
}

func TestAPI_DisputeFreezesAndResolves(t *testing.T) {
	ts := setupServer(t)
	id := ts.heldEscrow(t, "order-dispute")

	resp := ts.post(t, "/api/v1/escrows/disputes", "dispute-1", map[string]any{
		"transaction_id": id,
		"reason":         "produce arrived spoiled",
		"evidence":       []string{"photo-1"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "disputed", decodeBody(t, resp)["status"])

	resp = ts.post(t, "/api/v1/escrows/releases", "dispute-release", map[string]any{
		"transaction_id":      id,
		"delivery_confirmed":  true,
		"confirmation_method": "buyer_app",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = ts.post(t, "/api/v1/escrows/refunds", "dispute-refund", map[string]any{
		"transaction_id": id,
		"reason":         "trying anyway",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = ts.post(t, "/api/v1/escrows/resolutions", "resolve-1", map[string]any{
		"transaction_id":       id,
		"outcome":              "refunded",
		"settlement_reference": "MANUAL-REF-7",
		"note":                 "refunded after inspection",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resolved := decodeBody(t, resp)
	assert.Equal(t, "refunded", resolved["status"])
	assert.Equal(t, "MANUAL-REF-7", resolved["refund_reference"])

	types := ts.eventTypes(t, id)
	assert.Equal(t, "escrow.resolved", types[len(types)-1])
}

func TestAPI_DuplicateOrder(t *testing.T) {
	ts := setupServer(t)

	resp := ts.post(t, "/api/v1/escrows", "dup-1", initiateBody("order-dup"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decodeBody(t, resp)

	// Same definition under a new key resumes the existing escrow
	resp = ts.post(t, "/api/v1/escrows", "dup-2", initiateBody("order-dup"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, first["transaction_id"], decodeBody(t, resp)["transaction_id"])

	changed := initiateBody("order-dup")
	changed["amount"] = "999.00"
	resp = ts.post(t, "/api/v1/escrows", "dup-3", changed)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "duplicate_transaction", decodeBody(t, resp)["kind"])
}

func TestAPI_IdempotencyReplaysSameResponse(t *testing.T) {
	ts := setupServer(t)

	resp1 := ts.post(t, "/api/v1/escrows", "replay-key", initiateBody("order-replay"))
	require.Equal(t, http.StatusOK, resp1.StatusCode)
	body1, _ := io.ReadAll(resp1.Body)
	resp1.Body.Close()

	resp2 := ts.post(t, "/api/v1/escrows", "replay-key", initiateBody("order-replay"))
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	body2, _ := io.ReadAll(resp2.Body)
	resp2.Body.Close()

	assert.Equal(t, string(body1), string(body2))
	assert.Equal(t, "true", resp2.Header.Get("X-Idempotent-Replayed"))
}

func TestAPI_IdempotentReleaseAfterStateChange(t *testing.T) {
	ts := setupServer(t)
	id := ts.heldEscrow(t, "order-a")
	other := ts.heldEscrow(t, "order-b")

	release := map[string]any{
		"transaction_id":      id,
		"delivery_confirmed":  true,
		"confirmation_method": "buyer_app",
	}
	resp := ts.post(t, "/api/v1/escrows/releases", "release-a", release)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	// A refund under a new key reaches the engine and is refused
	resp = ts.post(t, "/api/v1/escrows/refunds", "refund-a", map[string]any{
		"transaction_id": id,
		"reason":         "customer cancelled",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "invalid_state", decodeBody(t, resp)["kind"])

	// The original release key still replays the payout response
	resp = ts.post(t, "/api/v1/escrows/releases", "release-a", release)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	replayed, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "true", resp.Header.Get("X-Idempotent-Replayed"))
	assert.Equal(t, string(first), string(replayed))

	// Reusing that key for another escrow must not replay or pay out
	release["transaction_id"] = other
	resp = ts.post(t, "/api/v1/escrows/releases", "release-a", release)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "duplicate_transaction", decodeBody(t, resp)["kind"])

	resp, err := http.Get(ts.url("/api/v1/escrows/" + other))
	require.NoError(t, err)
	assert.Equal(t, "held", decodeBody(t, resp)["status"])
}

func TestAPI_ConcurrentReleases_OnePayout(t *testing.T) {
	ts := setupServer(t)
	id := ts.heldEscrow(t, "order-race")

	const numGoroutines = 5
	var wg sync.WaitGroup

	type result struct {
		status    int
		reference any
	}
	results := make(chan result, numGoroutines)

	for i := range numGoroutines {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			resp := ts.post(t, "/api/v1/escrows/releases", "race-"+string(rune('a'+idx)), map[string]any{
				"transaction_id":      id,
				"delivery_confirmed":  true,
				"confirmation_method": "buyer_app",
			})
			var body map[string]any
			json.NewDecoder(resp.Body).Decode(&body)
			resp.Body.Close()
			results <- result{status: resp.StatusCode, reference: body["release_reference"]}
		}(i)
	}

	wg.Wait()
	close(results)

	var references []any
	for r := range results {
		switch r.status {
		case http.StatusOK:
			references = append(references, r.reference)
		case http.StatusConflict:
		default:
			t.Errorf("unexpected status %d", r.status)
		}
	}

	require.NotEmpty(t, references)
	for _, ref := range references {
		assert.Equal(t, references[0], ref, "every success reports the same payout")
	}

	released := 0
	for _, eventType := range ts.eventTypes(t, id) {
		if eventType == "escrow.released" {
			released++
		}
	}
	assert.Equal(t, 1, released, "exactly one release is recorded")
}

func TestAPI_Validation(t *testing.T) {
	ts := setupServer(t)

	resp := ts.post(t, "/api/v1/escrows", "", initiateBody("order-nokey"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "validation_failed", decodeBody(t, resp)["kind"])

	bad := initiateBody("order-bad")
	bad["amount"] = "-5"
	resp = ts.post(t, "/api/v1/escrows", "bad-amount", bad)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "validation_failed", decodeBody(t, resp)["kind"])

	resp = ts.post(t, "/api/v1/escrows/releases", "no-delivery", map[string]any{
		"transaction_id": "esc_00000000-0000-0000-0000-000000000000",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_GetEscrow_NotFound(t *testing.T) {
	ts := setupServer(t)

	resp, err := http.Get(ts.url("/api/v1/escrows/esc_00000000-0000-0000-0000-000000000000"))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", decodeBody(t, resp)["kind"])
}

func TestAPI_OperationalEndpoints(t *testing.T) {
	ts := setupServer(t)

	for _, path := range []string{"/health", "/metrics", "/docs", "/docs/openapi"} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(ts.url(path))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}
