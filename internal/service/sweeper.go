package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/google/uuid"
)

// SweepSource lists records that need background attention
type SweepSource interface {
	ListPendingOperations(ctx context.Context, limit int) ([]*models.EscrowTransaction, error)
	ListOrderSyncPending(ctx context.Context, limit int) ([]*models.EscrowTransaction, error)
}

// KeyPruner deletes expired idempotency keys
type KeyPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SweepConfig tunes the background sweep
type SweepConfig struct {
	Interval       time.Duration
	BatchSize      int
	IdempotencyTTL time.Duration
}

// SweepReport summarises one sweep pass
type SweepReport struct {
	Resolved     int   `json:"resolved"`
	StillPending int   `json:"still_pending"`
	Resynced     int   `json:"resynced"`
	SyncFailed   int   `json:"sync_failed"`
	KeysPruned   int64 `json:"keys_pruned"`
}

// Sweeper periodically resolves unknown provider outcomes, retries order
// syncs and prunes expired idempotency keys
type Sweeper struct {
	reconciler Reconciler
	source     SweepSource
	keys       KeyPruner
	logger     *slog.Logger
	now        func() time.Time
	cfg        SweepConfig
}

// NewSweeper creates a Sweeper. keys may be nil to skip pruning.
func NewSweeper(reconciler Reconciler, source SweepSource, keys KeyPruner, cfg SweepConfig, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		reconciler: reconciler,
		source:     source,
		keys:       keys,
		logger:     logger.With("component", "sweeper"),
		now:        time.Now,
		cfg:        cfg,
	}
}

// Run sweeps every Interval until ctx is done
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started", "interval", s.cfg.Interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return nil
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single pass
func (s *Sweeper) SweepOnce(ctx context.Context) SweepReport {
	var report SweepReport

	pending, err := s.source.ListPendingOperations(ctx, s.cfg.BatchSize)
	if err != nil {
		s.logger.Error("failed to list pending operations", "error", err)
	}
	for _, escrow := range pending {
		if ctx.Err() != nil {
			return report
		}
		s.resolve(ctx, escrow.ID, &report)
	}

	unsynced, err := s.source.ListOrderSyncPending(ctx, s.cfg.BatchSize)
	if err != nil {
		s.logger.Error("failed to list unsynced orders", "error", err)
	}
	for _, escrow := range unsynced {
		if ctx.Err() != nil {
			return report
		}
		if err := s.reconciler.ResyncOrder(ctx, escrow.ID); err != nil {
			report.SyncFailed++
			continue
		}
		report.Resynced++
	}

	if s.keys != nil && s.cfg.IdempotencyTTL > 0 {
		pruned, err := s.keys.DeleteOlderThan(ctx, s.now().Add(-s.cfg.IdempotencyTTL))
		if err != nil {
			s.logger.Error("failed to prune idempotency keys", "error", err)
		}
		report.KeysPruned = pruned
	}

	if report != (SweepReport{}) {
		s.logger.Info("sweep complete",
			"resolved", report.Resolved,
			"still_pending", report.StillPending,
			"resynced", report.Resynced,
			"sync_failed", report.SyncFailed,
			"keys_pruned", report.KeysPruned,
		)
	}
	return report
}

func (s *Sweeper) resolve(ctx context.Context, id uuid.UUID, report *SweepReport) {
	escrow, err := s.reconciler.ResolvePending(ctx, id)
	if err != nil {
		report.StillPending++
		s.logger.Warn("pending operation not resolved",
			"escrow_id", id,
			"error", err,
		)
		return
	}
	if escrow.HasPendingOutcome() {
		report.StillPending++
		return
	}
	report.Resolved++
}
