package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/benx421/payment-gateway/escrow/internal/db"
	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/benx421/payment-gateway/escrow/internal/orders"
	ordermocks "github.com/benx421/payment-gateway/escrow/internal/orders/mocks"
	"github.com/benx421/payment-gateway/escrow/internal/provider"
	providermocks "github.com/benx421/payment-gateway/escrow/internal/provider/mocks"
	"github.com/benx421/payment-gateway/escrow/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testCollectRef = "MTN-COLLECT-1"
	testPhone      = "0241234567"
	testFarmer     = "0201234567"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	engine   *Engine
	adapter  *providermocks.MockAdapter
	updater  *ordermocks.MockUpdater
	escrows  repository.EscrowRepository
	events   repository.EventRepository
	database *db.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database := db.NewTestDB(t)
	escrows := repository.NewEscrowRepository(database)
	events := repository.NewEventRepository(database)

	adapter := providermocks.NewMockAdapter(t)
	updater := ordermocks.NewMockUpdater(t)

	registry := provider.NewRegistry()
	registry.Register(models.ProviderMTNMoMo, adapter)

	engine := NewEngine(
		escrows,
		events,
		registry,
		orders.NewSynchronizer(updater, escrows, nil, testLogger()),
		EngineConfig{
			Currency:        "GHS",
			ProviderTimeout: time.Second,
			LeaseTTL:        5 * time.Second,
			LeaseWait:       200 * time.Millisecond,
		},
		nil,
		testLogger(),
	)

	return &testEnv{
		engine:   engine,
		adapter:  adapter,
		updater:  updater,
		escrows:  escrows,
		events:   events,
		database: database,
	}
}

func strPtr(s string) *string {
	return &s
}

func initiateRequest(orderID string) InitiateRequest {
	return InitiateRequest{
		OrderID:       orderID,
		CustomerID:    "cust-1",
		FarmerID:      "farm-1",
		Amount:        decimal.RequireFromString("150.00"),
		Provider:      models.ProviderMTNMoMo,
		CustomerPhone: testPhone,
		FarmerPhone:   strPtr(testFarmer),
	}
}

func success(ref string) provider.Result {
	return provider.Result{Outcome: provider.OutcomeSuccess, TransactionRef: ref}
}

func verified(ref string) provider.Verification {
	return provider.Verification{
		Outcome:        provider.OutcomeSuccess,
		Verified:       true,
		TransactionRef: ref,
		Proof:          "receipt-" + ref,
	}
}

func withReference(ref string) any {
	return mock.MatchedBy(func(req provider.PaymentRequest) bool {
		return req.Reference == ref
	})
}

// pendingEscrow initiates an escrow whose collection the provider accepted
func (env *testEnv) pendingEscrow(t *testing.T, orderID string) *models.EscrowTransaction {
	t.Helper()

	env.adapter.On("InitiatePayment", mock.Anything, mock.AnythingOfType("provider.PaymentRequest")).
		Return(success(testCollectRef)).Once()

	escrow, err := env.engine.Initiate(context.Background(), initiateRequest(orderID))
	require.NoError(t, err)
	require.Equal(t, models.EscrowStatusPending, escrow.Status)
	return escrow
}

// heldEscrow initiates and confirms an escrow
func (env *testEnv) heldEscrow(t *testing.T, orderID string) *models.EscrowTransaction {
	t.Helper()

	escrow := env.pendingEscrow(t, orderID)

	env.adapter.On("VerifyPayment", mock.Anything, models.ProviderMTNMoMo, testCollectRef).
		Return(verified(testCollectRef)).Once()
	env.updater.On("UpdateOrderStatus", mock.Anything, orderID, models.OrderStatusConfirmed).
		Return(nil).Once()

	held, err := env.engine.ConfirmPayment(context.Background(), ConfirmRequest{EscrowID: escrow.ID})
	require.NoError(t, err)
	require.Equal(t, models.EscrowStatusHeld, held.Status)
	return held
}

func (env *testEnv) reload(t *testing.T, escrow *models.EscrowTransaction) *models.EscrowTransaction {
	t.Helper()

	current, err := env.escrows.FindByID(context.Background(), escrow.ID)
	require.NoError(t, err)
	return current
}

func (env *testEnv) eventTypes(t *testing.T, escrow *models.EscrowTransaction) []models.EventType {
	t.Helper()

	events, err := env.engine.ListEvents(context.Background(), escrow.ID)
	require.NoError(t, err)

	types := make([]models.EventType, 0, len(events))
	for _, event := range events {
		types = append(types, event.Type)
	}
	return types
}

func assertServiceError(t *testing.T, err error, code string) {
	t.Helper()

	var svcErr *ServiceError
	if assert.ErrorAs(t, err, &svcErr) {
		assert.Equal(t, code, svcErr.Code)
	}
}
