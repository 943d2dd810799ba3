package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/benx421/payment-gateway/escrow/internal/provider"
	repomocks "github.com/benx421/payment-gateway/escrow/internal/repository/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errStorage = errors.New("connection reset")

func newMockedEngine(t *testing.T) (*Engine, *repomocks.MockEscrowRepository, *repomocks.MockEventRepository) {
	t.Helper()

	escrows := repomocks.NewMockEscrowRepository(t)
	events := repomocks.NewMockEventRepository(t)

	engine := NewEngine(escrows, events, provider.NewRegistry(), nil, EngineConfig{
		Currency:        "GHS",
		ProviderTimeout: time.Second,
		LeaseTTL:        time.Second,
		LeaseWait:       50 * time.Millisecond,
	}, nil, testLogger())

	return engine, escrows, events
}

func TestEngine_GetEscrow_StorageErrors(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode string
	}{
		{name: "missing record", repoErr: models.ErrNotFound, wantCode: ErrCodeNotFound},
		{name: "database failure", repoErr: errStorage, wantCode: ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, escrows, _ := newMockedEngine(t)
			id := uuid.New()

			escrows.On("FindByID", mock.Anything, id).Return(nil, tt.repoErr).Once()

			escrow, err := engine.GetEscrow(context.Background(), id)

			assert.Nil(t, escrow)
			assertServiceError(t, err, tt.wantCode)
		})
	}
}

func TestEngine_ListEvents_StorageError(t *testing.T) {
	engine, escrows, events := newMockedEngine(t)
	id := uuid.New()

	escrows.On("FindByID", mock.Anything, id).
		Return(&models.EscrowTransaction{ID: id, Status: models.EscrowStatusHeld}, nil).Once()
	events.On("ListByEscrow", mock.Anything, id).Return(nil, errStorage).Once()

	list, err := engine.ListEvents(context.Background(), id)

	assert.Nil(t, list)
	assertServiceError(t, err, ErrCodeInternalError)
}

func TestEngine_Release_LeaseErrors(t *testing.T) {
	t.Run("lease held until wait expires", func(t *testing.T) {
		engine, escrows, _ := newMockedEngine(t)
		id := uuid.New()

		escrows.On("AcquireLease", mock.Anything, id, mock.Anything, time.Second).Return(models.ErrLeaseHeld)

		_, err := engine.Release(context.Background(), ReleaseRequest{
			EscrowID:           id,
			DeliveryConfirmed:  true,
			ConfirmationMethod: "buyer_app",
		})

		assertServiceError(t, err, ErrCodeConcurrentOperation)
	})

	t.Run("storage failure is not retried", func(t *testing.T) {
		engine, escrows, _ := newMockedEngine(t)
		id := uuid.New()

		escrows.On("AcquireLease", mock.Anything, id, mock.Anything, time.Second).Return(errStorage).Once()

		_, err := engine.Release(context.Background(), ReleaseRequest{
			EscrowID:           id,
			DeliveryConfirmed:  true,
			ConfirmationMethod: "buyer_app",
		})

		assertServiceError(t, err, ErrCodeInternalError)
		escrows.AssertNumberOfCalls(t, "AcquireLease", 1)
	})

	t.Run("lease is returned after a failed load", func(t *testing.T) {
		engine, escrows, _ := newMockedEngine(t)
		id := uuid.New()
		var holder string

		escrows.On("AcquireLease", mock.Anything, id, mock.AnythingOfType("string"), time.Second).
			Run(func(args mock.Arguments) { holder = args.String(2) }).
			Return(nil).Once()
		escrows.On("FindByID", mock.Anything, id).Return(nil, errStorage).Once()
		escrows.On("ReleaseLease", mock.Anything, id, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				assert.Equal(t, holder, args.String(2))
			}).
			Return(nil).Once()

		_, err := engine.Release(context.Background(), ReleaseRequest{
			EscrowID:           id,
			DeliveryConfirmed:  true,
			ConfirmationMethod: "buyer_app",
		})

		require.Error(t, err)
		assertServiceError(t, err, ErrCodeInternalError)
	})
}

func TestEngine_Commit_RejectsIllegalTransitions(t *testing.T) {
	tests := []struct {
		from models.EscrowStatus
		to   models.EscrowStatus
	}{
		{models.EscrowStatusPending, models.EscrowStatusReleased},
		{models.EscrowStatusPending, models.EscrowStatusRefunded},
		{models.EscrowStatusReleased, models.EscrowStatusRefunded},
		{models.EscrowStatusRefunded, models.EscrowStatusHeld},
		{models.EscrowStatusHeld, models.EscrowStatusPending},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			engine, _, _ := newMockedEngine(t)
			escrow := &models.EscrowTransaction{ID: uuid.New(), Status: tt.from}

			updated, err := engine.commit(context.Background(), escrow, "holder-1", nil,
				&models.EscrowPatch{Status: ptr(tt.to)}, models.EventTypeResolved, "test")

			assert.Nil(t, updated)
			assertServiceError(t, err, ErrCodeInvalidState)
		})
	}
}
