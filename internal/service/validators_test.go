package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{
			name:   "valid whole amount",
			amount: "100",
		},
		{
			name:   "valid amount with pesewas",
			amount: "12.50",
		},
		{
			name:    "zero amount",
			amount:  "0",
			wantErr: true,
		},
		{
			name:    "negative amount",
			amount:  "-5.00",
			wantErr: true,
		},
		{
			name:    "too many decimal places",
			amount:  "10.005",
			wantErr: true,
		},
		{
			name:    "too large",
			amount:  "100000000000000000",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{
			name:  "local format",
			phone: "0241234567",
		},
		{
			name:  "international format",
			phone: "+233241234567",
		},
		{
			name:  "with spaces",
			phone: "024 123 4567",
		},
		{
			name:    "empty",
			phone:   "",
			wantErr: true,
		},
		{
			name:    "too short",
			phone:   "02412",
			wantErr: true,
		},
		{
			name:    "letters",
			phone:   "02412abc67",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.phone)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	t.Run("missing order id", func(t *testing.T) {
		err := validateRequest(InitiateRequest{
			CustomerID:    "cust-1",
			FarmerID:      "farm-1",
			CustomerPhone: "0241234567",
		})

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeValidationFailed, svcErr.Code)
		assert.Equal(t, "OrderID: is required", svcErr.Message)
	})

	t.Run("bad farmer phone", func(t *testing.T) {
		bad := "12ab"
		err := validateRequest(InitiateRequest{
			OrderID:       "order-1",
			CustomerID:    "cust-1",
			FarmerID:      "farm-1",
			CustomerPhone: "0241234567",
			FarmerPhone:   &bad,
		})

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Contains(t, svcErr.Message, "FarmerPhone")
	})

	t.Run("too much evidence", func(t *testing.T) {
		evidence := make([]string, 11)
		for i := range evidence {
			evidence[i] = "photo.jpg"
		}
		err := validateRequest(DisputeRequest{
			EscrowID: uuid.New(),
			Reason:   "damaged goods",
			Evidence: evidence,
		})

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Contains(t, svcErr.Message, "Evidence")
	})

	t.Run("reason too long", func(t *testing.T) {
		err := validateRequest(RefundRequest{
			EscrowID: uuid.New(),
			Reason:   strings.Repeat("x", 501),
		})
		assert.Error(t, err)
	})

	t.Run("valid release request", func(t *testing.T) {
		err := validateRequest(ReleaseRequest{
			EscrowID:           uuid.New(),
			DeliveryConfirmed:  true,
			ConfirmationMethod: "buyer_confirmation",
		})
		assert.NoError(t, err)
	})

	t.Run("nil escrow id", func(t *testing.T) {
		err := validateRequest(ConfirmRequest{})
		assert.Error(t, err)
	})
}
