package repository

import (
	"context"
	"testing"
	"time"

	"github.com/benx421/payment-gateway/escrow/internal/db"
	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()
	return db.NewTestDB(t)
}

func strPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func newEscrow(orderID string) *models.EscrowTransaction {
	now := time.Now().UTC()
	return &models.EscrowTransaction{
		ID:            uuid.New(),
		OrderID:       orderID,
		CustomerID:    "cust-1",
		FarmerID:      "farm-1",
		Amount:        decimal.RequireFromString("250.00"),
		Currency:      "GHS",
		Provider:      models.ProviderMTNMoMo,
		CustomerPhone: "0241234567",
		Status:        models.EscrowStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func createEscrow(t *testing.T, repo EscrowRepository, orderID, holder string) *models.EscrowTransaction {
	t.Helper()

	escrow := newEscrow(orderID)
	require.NoError(t, repo.Create(context.Background(), escrow, holder, time.Minute))
	return escrow
}
