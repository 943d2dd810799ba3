// Package orders keeps the order collaborator's status in line with escrow status.
package orders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/benx421/payment-gateway/escrow/internal/metrics"
	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/google/uuid"
)

// StatusFor maps an escrow status to the order status it implies.
// ok is false when the escrow status has no order-side effect.
func StatusFor(status models.EscrowStatus) (models.OrderStatus, bool) {
	switch status {
	case models.EscrowStatusHeld:
		return models.OrderStatusConfirmed, true
	case models.EscrowStatusReleased:
		return models.OrderStatusDelivered, true
	case models.EscrowStatusRefunded:
		return models.OrderStatusCancelled, true
	case models.EscrowStatusPending, models.EscrowStatusDisputed:
		return "", false
	default:
		return "", false
	}
}

// Updater is the order collaborator
type Updater interface {
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error
}

// SyncMarker clears an escrow's pending order sync once acknowledged
type SyncMarker interface {
	MarkOrderSynced(ctx context.Context, id uuid.UUID, status models.EscrowStatus) error
}

// Synchronizer pushes derived order statuses. Failures never undo an escrow
// transition; the record keeps its sync flag and the sweep retries.
type Synchronizer struct {
	updater Updater
	marker  SyncMarker
	metrics *metrics.EngineMetrics
	logger  *slog.Logger
}

// NewSynchronizer creates a Synchronizer. m may be nil.
func NewSynchronizer(updater Updater, marker SyncMarker, m *metrics.EngineMetrics, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		updater: updater,
		marker:  marker,
		metrics: m,
		logger:  logger.With("component", "order_sync"),
	}
}

// Sync propagates the escrow's current status to its order. It returns an
// error only for logging by the caller.
func (s *Synchronizer) Sync(ctx context.Context, escrow *models.EscrowTransaction) error {
	orderStatus, ok := StatusFor(escrow.Status)
	if !ok {
		return nil
	}

	if err := s.updater.UpdateOrderStatus(ctx, escrow.OrderID, orderStatus); err != nil {
		s.metrics.RecordOrderSyncFailure(string(orderStatus))
		s.logger.Warn("order status update failed; will retry",
			"escrow_id", escrow.ID,
			"order_id", escrow.OrderID,
			"order_status", orderStatus,
			"error", err,
		)
		return fmt.Errorf("failed to update order %s: %w", escrow.OrderID, err)
	}

	if err := s.marker.MarkOrderSynced(ctx, escrow.ID, escrow.Status); err != nil {
		s.logger.Error("failed to clear order sync flag",
			"escrow_id", escrow.ID,
			"error", err,
		)
		return err
	}

	s.logger.Info("order status updated",
		"escrow_id", escrow.ID,
		"order_id", escrow.OrderID,
		"order_status", orderStatus,
	)
	return nil
}

// Resync re-derives the order status from the stored escrow status, used for
// records whose earlier sync was not acknowledged.
func (s *Synchronizer) Resync(ctx context.Context, escrow *models.EscrowTransaction) error {
	if _, ok := StatusFor(escrow.Status); !ok {
		return s.marker.MarkOrderSynced(ctx, escrow.ID, escrow.Status)
	}
	return s.Sync(ctx, escrow)
}
