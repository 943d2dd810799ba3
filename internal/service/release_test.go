package service

import (
	"context"
	"errors"
	"testing"

	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/benx421/payment-gateway/escrow/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func releaseRequest(escrow *models.EscrowTransaction) ReleaseRequest {
	return ReleaseRequest{
		EscrowID:           escrow.ID,
		DeliveryConfirmed:  true,
		ConfirmationMethod: "buyer_app",
		ConfirmationProof:  strPtr("delivery-photo.jpg"),
	}
}

func TestEngine_Release(t *testing.T) {
	t.Run("pays farmer and marks order delivered", func(t *testing.T) {
		env := newTestEnv(t)
		held := env.heldEscrow(t, "order-1")

		env.adapter.On("ReleaseFunds", mock.Anything, mock.MatchedBy(func(req provider.PaymentRequest) bool {
			return req.Phone == testFarmer && req.Reference == models.OperationRelease.Reference(held.ID)
		})).Return(success("MTN-REL-1")).Once()
		env.updater.On("UpdateOrderStatus", mock.Anything, "order-1", models.OrderStatusDelivered).
			Return(nil).Once()

		released, err := env.engine.Release(context.Background(), releaseRequest(held))

		require.NoError(t, err)
		assert.Equal(t, models.EscrowStatusReleased, released.Status)
		require.NotNil(t, released.ReleaseRef)
		assert.Equal(t, "MTN-REL-1", *released.ReleaseRef)
		require.NotNil(t, released.ReleaseCondition)
		assert.Equal(t, models.ReleaseConditionDeliveryConfirmed, *released.ReleaseCondition)
		require.NotNil(t, released.ConfirmationMethod)
		assert.Equal(t, "buyer_app", *released.ConfirmationMethod)
		assert.NotNil(t, released.ReleasedAt)
		assert.Equal(t, []models.EventType{
			models.EventTypeInitiated,
			models.EventTypeHeld,
			models.EventTypeReleased,
		}, env.eventTypes(t, released))
	})

	t.Run("second release returns stored record", func(t *testing.T) {
		env := newTestEnv(t)
		held := env.heldEscrow(t, "order-1")

		env.adapter.On("ReleaseFunds", mock.Anything, mock.Anything).Return(success("MTN-REL-1")).Once()
		env.updater.On("UpdateOrderStatus", mock.Anything, "order-1", models.OrderStatusDelivered).
			Return(nil).Once()

		first, err := env.engine.Release(context.Background(), releaseRequest(held))
		require.NoError(t, err)

		second, err := env.engine.Release(context.Background(), releaseRequest(held))
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, *first.ReleaseRef, *second.ReleaseRef)
		env.adapter.AssertNumberOfCalls(t, "ReleaseFunds", 1)
	})

	t.Run("preconditions", func(t *testing.T) {
		tests := []struct {
			name     string
			mutate   func(*ReleaseRequest)
			noFarmer bool
			wantCode string
		}{
			{
				name:     "delivery not confirmed",
				mutate:   func(r *ReleaseRequest) { r.DeliveryConfirmed = false },
				wantCode: ErrCodePreconditionFailed,
			},
			{
				name:     "farmer phone unknown",
				mutate:   func(*ReleaseRequest) {},
				noFarmer: true,
				wantCode: ErrCodePreconditionFailed,
			},
			{
				name:     "confirmation method missing",
				mutate:   func(r *ReleaseRequest) { r.ConfirmationMethod = "" },
				wantCode: ErrCodeValidationFailed,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				env := newTestEnv(t)

				req := initiateRequest("order-1")
				if tt.noFarmer {
					req.FarmerPhone = nil
				}
				env.adapter.On("InitiatePayment", mock.Anything, mock.Anything).Return(success(testCollectRef)).Once()
				escrow, err := env.engine.Initiate(context.Background(), req)
				require.NoError(t, err)

				env.adapter.On("VerifyPayment", mock.Anything, models.ProviderMTNMoMo, testCollectRef).
					Return(verified(testCollectRef)).Once()
				env.updater.On("UpdateOrderStatus", mock.Anything, "order-1", models.OrderStatusConfirmed).
					Return(nil).Once()
				_, err = env.engine.ConfirmPayment(context.Background(), ConfirmRequest{EscrowID: escrow.ID})
				require.NoError(t, err)

				release := releaseRequest(escrow)
				tt.mutate(&release)
				_, err = env.engine.Release(context.Background(), release)

				assertServiceError(t, err, tt.wantCode)
				assert.Equal(t, models.EscrowStatusHeld, env.reload(t, escrow).Status)
			})
		}
	})

	t.Run("farmer phone supplied at release", func(t *testing.T) {
		env := newTestEnv(t)

		req := initiateRequest("order-1")
		req.FarmerPhone = nil
		env.adapter.On("InitiatePayment", mock.Anything, mock.Anything).Return(success(testCollectRef)).Once()
		escrow, err := env.engine.Initiate(context.Background(), req)
		require.NoError(t, err)

		env.adapter.On("VerifyPayment", mock.Anything, models.ProviderMTNMoMo, testCollectRef).
			Return(verified(testCollectRef)).Once()
		env.updater.On("UpdateOrderStatus", mock.Anything, "order-1", mock.Anything).Return(nil).Twice()
		_, err = env.engine.ConfirmPayment(context.Background(), ConfirmRequest{EscrowID: escrow.ID})
		require.NoError(t, err)

		env.adapter.On("ReleaseFunds", mock.Anything, mock.MatchedBy(func(req provider.PaymentRequest) bool {
			return req.Phone == "0551234567"
		})).Return(success("MTN-REL-1")).Once()

		release := releaseRequest(escrow)
		release.FarmerPhone = strPtr("0551234567")
		released, err := env.engine.Release(context.Background(), release)

		require.NoError(t, err)
		require.NotNil(t, released.FarmerPhone)
		assert.Equal(t, "0551234567", *released.FarmerPhone)
	})

	t.Run("pending escrow cannot be released", func(t *testing.T) {
		env := newTestEnv(t)
		escrow := env.pendingEscrow(t, "order-1")

		_, err := env.engine.Release(context.Background(), releaseRequest(escrow))

		assertServiceError(t, err, ErrCodeInvalidState)
	})

	t.Run("provider rejection keeps funds held", func(t *testing.T) {
		env := newTestEnv(t)
		held := env.heldEscrow(t, "order-1")

		env.adapter.On("ReleaseFunds", mock.Anything, mock.Anything).
			Return(provider.Result{Outcome: provider.OutcomeRejected, ErrorCode: "ACCOUNT_BLOCKED"}).Once()

		_, err := env.engine.Release(context.Background(), releaseRequest(held))

		assertServiceError(t, err, ErrCodeProviderRejected)
		current := env.reload(t, held)
		assert.Equal(t, models.EscrowStatusHeld, current.Status)
		assert.False(t, current.HasPendingOutcome())
	})

	t.Run("timeout then retry resolves completed release", func(t *testing.T) {
		env := newTestEnv(t)
		held := env.heldEscrow(t, "order-1")
		reference := models.OperationRelease.Reference(held.ID)

		env.adapter.On("ReleaseFunds", mock.Anything, withReference(reference)).
			Return(provider.Result{Outcome: provider.OutcomeUnknown}).Once()

		_, err := env.engine.Release(context.Background(), releaseRequest(held))

		assertServiceError(t, err, ErrCodeProviderTimeout)
		pending := env.reload(t, held)
		assert.Equal(t, models.EscrowStatusHeld, pending.Status)
		require.NotNil(t, pending.PendingOperation)
		assert.Equal(t, models.OperationRelease, *pending.PendingOperation)

		env.adapter.On("VerifyPayment", mock.Anything, models.ProviderMTNMoMo, reference).
			Return(verified("MTN-REL-1")).Once()
		env.updater.On("UpdateOrderStatus", mock.Anything, "order-1", models.OrderStatusDelivered).
			Return(nil).Once()

		released, err := env.engine.Release(context.Background(), releaseRequest(held))

		require.NoError(t, err)
		assert.Equal(t, models.EscrowStatusReleased, released.Status)
		assert.False(t, released.HasPendingOutcome())
		assert.Equal(t, "MTN-REL-1", *released.ReleaseRef)
		assert.Equal(t, "buyer_app", *released.ConfirmationMethod)
		env.adapter.AssertNumberOfCalls(t, "ReleaseFunds", 1)
	})

	t.Run("timeout then retry re-sends release that never happened", func(t *testing.T) {
		env := newTestEnv(t)
		held := env.heldEscrow(t, "order-1")
		reference := models.OperationRelease.Reference(held.ID)

		env.adapter.On("ReleaseFunds", mock.Anything, withReference(reference)).
			Return(provider.Result{Outcome: provider.OutcomeUnknown}).Once()
		_, err := env.engine.Release(context.Background(), releaseRequest(held))
		assertServiceError(t, err, ErrCodeProviderTimeout)

		env.adapter.On("VerifyPayment", mock.Anything, models.ProviderMTNMoMo, reference).
			Return(provider.Verification{Outcome: provider.OutcomeSuccess, Verified: false}).Once()
		env.adapter.On("ReleaseFunds", mock.Anything, withReference(reference)).
			Return(success("MTN-REL-2")).Once()
		env.updater.On("UpdateOrderStatus", mock.Anything, "order-1", models.OrderStatusDelivered).
			Return(nil).Once()

		released, err := env.engine.Release(context.Background(), releaseRequest(held))

		require.NoError(t, err)
		assert.Equal(t, models.EscrowStatusReleased, released.Status)
		assert.Equal(t, "MTN-REL-2", *released.ReleaseRef)
	})

	t.Run("refund blocked while release outcome unknown", func(t *testing.T) {
		env := newTestEnv(t)
		held := env.heldEscrow(t, "order-1")

		env.adapter.On("ReleaseFunds", mock.Anything, mock.Anything).
			Return(provider.Result{Outcome: provider.OutcomeUnknown}).Once()
		_, err := env.engine.Release(context.Background(), releaseRequest(held))
		require.Error(t, err)

		_, err = env.engine.Refund(context.Background(), RefundRequest{EscrowID: held.ID, Reason: "customer cancelled"})

		assertServiceError(t, err, ErrCodeOutcomeUnknown)
		env.adapter.AssertNotCalled(t, "RefundFunds", mock.Anything, mock.Anything)
	})

	t.Run("pending escrow with unknown collection cannot be paid out", func(t *testing.T) {
		env := newTestEnv(t)

		env.adapter.On("InitiatePayment", mock.Anything, mock.Anything).
			Return(provider.Result{Outcome: provider.OutcomeUnknown}).Once()
		escrow, err := env.engine.Initiate(context.Background(), initiateRequest("order-1"))
		assertServiceError(t, err, ErrCodeProviderTimeout)
		require.True(t, escrow.HasPendingOutcome())

		_, err = env.engine.Release(context.Background(), releaseRequest(escrow))
		assertServiceError(t, err, ErrCodeInvalidState)

		_, err = env.engine.Refund(context.Background(), RefundRequest{EscrowID: escrow.ID, Reason: "customer cancelled"})
		assertServiceError(t, err, ErrCodeInvalidState)

		env.adapter.AssertNotCalled(t, "VerifyPayment", mock.Anything, mock.Anything, mock.Anything)
		env.adapter.AssertNotCalled(t, "ReleaseFunds", mock.Anything, mock.Anything)
		env.adapter.AssertNotCalled(t, "RefundFunds", mock.Anything, mock.Anything)
		assert.Equal(t, models.EscrowStatusPending, env.reload(t, escrow).Status)
	})

	t.Run("order sync failure does not undo release", func(t *testing.T) {
		env := newTestEnv(t)
		held := env.heldEscrow(t, "order-1")

		env.adapter.On("ReleaseFunds", mock.Anything, mock.Anything).Return(success("MTN-REL-1")).Once()
		env.updater.On("UpdateOrderStatus", mock.Anything, "order-1", models.OrderStatusDelivered).
			Return(errors.New("orders service down")).Once()

		released, err := env.engine.Release(context.Background(), releaseRequest(held))

		require.NoError(t, err)
		assert.Equal(t, models.EscrowStatusReleased, released.Status)
		assert.True(t, released.OrderSyncPending)

		env.updater.On("UpdateOrderStatus", mock.Anything, "order-1", models.OrderStatusDelivered).
			Return(nil).Once()

		require.NoError(t, env.engine.ResyncOrder(context.Background(), held.ID))
		assert.False(t, env.reload(t, held).OrderSyncPending)
	})
}

func TestEngine_Refund(t *testing.T) {
	t.Run("returns funds to customer and cancels order", func(t *testing.T) {
		env := newTestEnv(t)
		held := env.heldEscrow(t, "order-1")

		env.adapter.On("RefundFunds", mock.Anything, mock.MatchedBy(func(req provider.PaymentRequest) bool {
			return req.Phone == testPhone && req.Reference == models.OperationRefund.Reference(held.ID)
		})).Return(success("MTN-REF-1")).Once()
		env.updater.On("UpdateOrderStatus", mock.Anything, "order-1", models.OrderStatusCancelled).
			Return(nil).Once()

		refunded, err := env.engine.Refund(context.Background(), RefundRequest{
			EscrowID: held.ID,
			Reason:   "produce spoiled",
		})

		require.NoError(t, err)
		assert.Equal(t, models.EscrowStatusRefunded, refunded.Status)
		assert.Equal(t, "MTN-REF-1", *refunded.RefundRef)
		assert.Equal(t, "produce spoiled", *refunded.RefundReason)
		assert.NotNil(t, refunded.RefundedAt)
	})

	t.Run("refunded escrow cannot be released", func(t *testing.T) {
		env := newTestEnv(t)
		held := env.heldEscrow(t, "order-1")

		env.adapter.On("RefundFunds", mock.Anything, mock.Anything).Return(success("MTN-REF-1")).Once()
		env.updater.On("UpdateOrderStatus", mock.Anything, "order-1", models.OrderStatusCancelled).
			Return(nil).Once()

		_, err := env.engine.Refund(context.Background(), RefundRequest{EscrowID: held.ID, Reason: "cancelled"})
		require.NoError(t, err)

		_, err = env.engine.Release(context.Background(), releaseRequest(held))

		assertServiceError(t, err, ErrCodeInvalidState)
		env.adapter.AssertNotCalled(t, "ReleaseFunds", mock.Anything, mock.Anything)
	})

	t.Run("refund twice moves funds once", func(t *testing.T) {
		env := newTestEnv(t)
		held := env.heldEscrow(t, "order-1")

		env.adapter.On("RefundFunds", mock.Anything, mock.Anything).Return(success("MTN-REF-1")).Once()
		env.updater.On("UpdateOrderStatus", mock.Anything, "order-1", models.OrderStatusCancelled).
			Return(nil).Once()

		for range 2 {
			refunded, err := env.engine.Refund(context.Background(), RefundRequest{EscrowID: held.ID, Reason: "cancelled"})
			require.NoError(t, err)
			assert.Equal(t, models.EscrowStatusRefunded, refunded.Status)
		}
		env.adapter.AssertNumberOfCalls(t, "RefundFunds", 1)
	})

	t.Run("pending escrow cannot be refunded", func(t *testing.T) {
		env := newTestEnv(t)
		escrow := env.pendingEscrow(t, "order-1")

		_, err := env.engine.Refund(context.Background(), RefundRequest{EscrowID: escrow.ID, Reason: "cancelled"})

		assertServiceError(t, err, ErrCodeInvalidState)
	})

	t.Run("unavailable provider", func(t *testing.T) {
		env := newTestEnv(t)
		held := env.heldEscrow(t, "order-1")

		env.adapter.On("RefundFunds", mock.Anything, mock.Anything).
			Return(provider.Result{Outcome: provider.OutcomeUnavailable}).Once()

		_, err := env.engine.Refund(context.Background(), RefundRequest{EscrowID: held.ID, Reason: "cancelled"})

		assertServiceError(t, err, ErrCodeProviderUnavailable)
		assert.Equal(t, models.EscrowStatusHeld, env.reload(t, held).Status)
	})
}
