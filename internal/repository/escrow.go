// Package repository provides data access layer implementations for the escrow service.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benx421/payment-gateway/escrow/internal/db"
	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/google/uuid"
)

// EscrowRepository defines the interface for escrow record storage.
// Every state write is conditional on the expected status and lease holder.
type EscrowRepository interface {
	Create(ctx context.Context, escrow *models.EscrowTransaction, leaseHolder string, leaseTTL time.Duration) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.EscrowTransaction, error)
	FindActiveByOrderID(ctx context.Context, orderID string) (*models.EscrowTransaction, error)
	Update(ctx context.Context, id uuid.UUID, expected models.EscrowStatus, leaseHolder string, patch *models.EscrowPatch) (*models.EscrowTransaction, error)
	AcquireLease(ctx context.Context, id uuid.UUID, holder string, ttl time.Duration) error
	ReleaseLease(ctx context.Context, id uuid.UUID, holder string) error
	ListPendingOperations(ctx context.Context, limit int) ([]*models.EscrowTransaction, error)
	ListOrderSyncPending(ctx context.Context, limit int) ([]*models.EscrowTransaction, error)
	MarkOrderSynced(ctx context.Context, id uuid.UUID, status models.EscrowStatus) error
}

const escrowColumns = `
	id, order_id, customer_id, farmer_id, amount, currency, provider,
	customer_phone, farmer_phone, status, provider_transaction_ref,
	release_ref, refund_ref, payment_proof, verification_proof,
	release_condition, confirmation_method, confirmation_proof,
	hold_reason, refund_reason, dispute_reason, dispute_evidence,
	resolution_note, pending_operation, pending_since, order_sync_pending,
	created_at, updated_at, held_at, released_at, refunded_at,
	disputed_at, resolved_at`

type escrowRepository struct {
	db  *db.DB
	now func() time.Time
}

// NewEscrowRepository creates a new EscrowRepository
func NewEscrowRepository(database *db.DB) EscrowRepository {
	return &escrowRepository{
		db:  database,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create inserts a new escrow already leased to leaseHolder. It returns
// models.ErrDuplicateTransaction when the order already has an active escrow.
func (r *escrowRepository) Create(
	ctx context.Context,
	escrow *models.EscrowTransaction,
	leaseHolder string,
	leaseTTL time.Duration,
) error {
	evidence, err := encodeEvidence(escrow.DisputeEvidence)
	if err != nil {
		return err
	}

	if escrow.CreatedAt.IsZero() {
		escrow.CreatedAt = r.now()
	}
	if escrow.UpdatedAt.IsZero() {
		escrow.UpdatedAt = escrow.CreatedAt
	}

	query := r.db.Rebind(`
		INSERT INTO escrow_transactions (
			id, order_id, customer_id, farmer_id, amount, currency, provider,
			customer_phone, farmer_phone, status, dispute_evidence,
			order_sync_pending, lease_holder, lease_expires_at,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err = r.db.ExecContext(ctx, query,
		escrow.ID,
		escrow.OrderID,
		escrow.CustomerID,
		escrow.FarmerID,
		escrow.Amount.StringFixed(2),
		escrow.Currency,
		string(escrow.Provider),
		escrow.CustomerPhone,
		escrow.FarmerPhone,
		string(escrow.Status),
		evidence,
		escrow.OrderSyncPending,
		leaseHolder,
		r.now().Add(leaseTTL).UnixMilli(),
		escrow.CreatedAt,
		escrow.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.ErrDuplicateTransaction
		}
		return fmt.Errorf("failed to create escrow: %w", err)
	}

	return nil
}

// FindByID retrieves an escrow by its UUID
func (r *escrowRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.EscrowTransaction, error) {
	query := r.db.Rebind(`SELECT ` + escrowColumns + ` FROM escrow_transactions WHERE id = ?`)

	escrow, err := scanEscrow(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find escrow by id: %w", err)
	}

	return escrow, nil
}

// FindActiveByOrderID retrieves the order's pending, held or disputed escrow
func (r *escrowRepository) FindActiveByOrderID(ctx context.Context, orderID string) (*models.EscrowTransaction, error) {
	query := r.db.Rebind(`SELECT ` + escrowColumns + `
		FROM escrow_transactions
		WHERE order_id = ? AND status IN ('pending', 'held', 'disputed')`)

	escrow, err := scanEscrow(r.db.QueryRowContext(ctx, query, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find escrow by order: %w", err)
	}

	return escrow, nil
}

// Update applies patch only if the record is still in the expected status and
// leased to leaseHolder. It returns models.ErrStatusConflict otherwise.
func (r *escrowRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	expected models.EscrowStatus,
	leaseHolder string,
	patch *models.EscrowPatch,
) (*models.EscrowTransaction, error) {
	now := r.now()

	set, args, err := patchAssignments(patch, now)
	if err != nil {
		return nil, err
	}
	set = append(set, "updated_at = ?")
	args = append(args, now)
	args = append(args, id, string(expected), leaseHolder)

	query := r.db.Rebind(`
		UPDATE escrow_transactions
		SET ` + strings.Join(set, ", ") + `
		WHERE id = ? AND status = ? AND lease_holder = ?`)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update escrow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, models.ErrStatusConflict
	}

	return r.FindByID(ctx, id)
}

// AcquireLease grants holder exclusive use of the record for ttl. It returns
// models.ErrLeaseHeld while another holder's lease is unexpired.
func (r *escrowRepository) AcquireLease(ctx context.Context, id uuid.UUID, holder string, ttl time.Duration) error {
	now := r.now()

	query := r.db.Rebind(`
		UPDATE escrow_transactions
		SET lease_holder = ?, lease_expires_at = ?
		WHERE id = ? AND (lease_holder IS NULL OR lease_holder = ? OR lease_expires_at < ?)
	`)

	result, err := r.db.ExecContext(ctx, query, holder, now.Add(ttl).UnixMilli(), id, holder, now.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to acquire lease: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return models.ErrLeaseHeld
}

// ReleaseLease drops holder's lease. Releasing a lease already taken over is a no-op.
func (r *escrowRepository) ReleaseLease(ctx context.Context, id uuid.UUID, holder string) error {
	query := r.db.Rebind(`
		UPDATE escrow_transactions
		SET lease_holder = NULL, lease_expires_at = 0
		WHERE id = ? AND lease_holder = ?
	`)

	if _, err := r.db.ExecContext(ctx, query, id, holder); err != nil {
		return fmt.Errorf("failed to release lease: %w", err)
	}
	return nil
}

// ListPendingOperations returns records whose last provider call has an unknown outcome, oldest first
func (r *escrowRepository) ListPendingOperations(ctx context.Context, limit int) ([]*models.EscrowTransaction, error) {
	query := r.db.Rebind(`SELECT ` + escrowColumns + `
		FROM escrow_transactions
		WHERE pending_operation IS NOT NULL
		ORDER BY pending_since
		LIMIT ?`)

	return r.list(ctx, query, limit)
}

// ListOrderSyncPending returns records whose order status has not been acknowledged
func (r *escrowRepository) ListOrderSyncPending(ctx context.Context, limit int) ([]*models.EscrowTransaction, error) {
	query := r.db.Rebind(`SELECT ` + escrowColumns + `
		FROM escrow_transactions
		WHERE order_sync_pending = ?
		ORDER BY updated_at
		LIMIT ?`)

	return r.list(ctx, query, true, limit)
}

// MarkOrderSynced clears the order sync flag if the record is still in status
func (r *escrowRepository) MarkOrderSynced(ctx context.Context, id uuid.UUID, status models.EscrowStatus) error {
	query := r.db.Rebind(`
		UPDATE escrow_transactions
		SET order_sync_pending = ?
		WHERE id = ? AND status = ?
	`)

	if _, err := r.db.ExecContext(ctx, query, false, id, string(status)); err != nil {
		return fmt.Errorf("failed to mark order synced: %w", err)
	}
	return nil
}

func (r *escrowRepository) list(ctx context.Context, query string, args ...any) ([]*models.EscrowTransaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list escrows: %w", err)
	}
	defer rows.Close()

	var escrows []*models.EscrowTransaction
	for rows.Next() {
		escrow, err := scanEscrow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan escrow: %w", err)
		}
		escrows = append(escrows, escrow)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate escrows: %w", err)
	}

	return escrows, nil
}

func patchAssignments(patch *models.EscrowPatch, now time.Time) ([]string, []any, error) {
	var (
		set  []string
		args []any
	)
	add := func(column string, value any) {
		set = append(set, column+" = ?")
		args = append(args, value)
	}

	if patch.Status != nil {
		add("status", string(*patch.Status))
	}

	strs := []struct {
		column string
		value  *string
	}{
		{"farmer_phone", patch.FarmerPhone},
		{"provider_transaction_ref", patch.ProviderTransactionRef},
		{"release_ref", patch.ReleaseRef},
		{"refund_ref", patch.RefundRef},
		{"payment_proof", patch.PaymentProof},
		{"verification_proof", patch.VerificationProof},
		{"release_condition", patch.ReleaseCondition},
		{"confirmation_method", patch.ConfirmationMethod},
		{"confirmation_proof", patch.ConfirmationProof},
		{"hold_reason", patch.HoldReason},
		{"refund_reason", patch.RefundReason},
		{"dispute_reason", patch.DisputeReason},
		{"resolution_note", patch.ResolutionNote},
	}
	for _, s := range strs {
		if s.value != nil {
			add(s.column, *s.value)
		}
	}

	if patch.DisputeEvidence != nil {
		evidence, err := encodeEvidence(patch.DisputeEvidence)
		if err != nil {
			return nil, nil, err
		}
		add("dispute_evidence", evidence)
	}

	times := []struct {
		column string
		value  *time.Time
	}{
		{"held_at", patch.HeldAt},
		{"released_at", patch.ReleasedAt},
		{"refunded_at", patch.RefundedAt},
		{"disputed_at", patch.DisputedAt},
		{"resolved_at", patch.ResolvedAt},
	}
	for _, ts := range times {
		if ts.value != nil {
			add(ts.column, ts.value.UTC())
		}
	}

	switch {
	case patch.PendingOperation != nil:
		add("pending_operation", string(*patch.PendingOperation))
		add("pending_since", now)
	case patch.ClearPending:
		set = append(set, "pending_operation = NULL", "pending_since = NULL")
	}

	if patch.OrderSyncPending != nil {
		add("order_sync_pending", *patch.OrderSyncPending)
	}

	return set, args, nil
}

func encodeEvidence(evidence []string) (string, error) {
	if evidence == nil {
		evidence = []string{}
	}
	raw, err := json.Marshal(evidence)
	if err != nil {
		return "", fmt.Errorf("failed to encode dispute evidence: %w", err)
	}
	return string(raw), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEscrow(row rowScanner) (*models.EscrowTransaction, error) {
	var (
		escrow           models.EscrowTransaction
		provider         string
		status           string
		evidence         string
		pendingOperation sql.NullString
		farmerPhone      sql.NullString
		providerRef      sql.NullString
		releaseRef       sql.NullString
		refundRef        sql.NullString
		paymentProof     sql.NullString
		verification     sql.NullString
		releaseCondition sql.NullString
		confirmMethod    sql.NullString
		confirmProof     sql.NullString
		holdReason       sql.NullString
		refundReason     sql.NullString
		disputeReason    sql.NullString
		resolutionNote   sql.NullString
		pendingSince     sql.NullTime
		heldAt           sql.NullTime
		releasedAt       sql.NullTime
		refundedAt       sql.NullTime
		disputedAt       sql.NullTime
		resolvedAt       sql.NullTime
	)

	err := row.Scan(
		&escrow.ID,
		&escrow.OrderID,
		&escrow.CustomerID,
		&escrow.FarmerID,
		&escrow.Amount,
		&escrow.Currency,
		&provider,
		&escrow.CustomerPhone,
		&farmerPhone,
		&status,
		&providerRef,
		&releaseRef,
		&refundRef,
		&paymentProof,
		&verification,
		&releaseCondition,
		&confirmMethod,
		&confirmProof,
		&holdReason,
		&refundReason,
		&disputeReason,
		&evidence,
		&resolutionNote,
		&pendingOperation,
		&pendingSince,
		&escrow.OrderSyncPending,
		&escrow.CreatedAt,
		&escrow.UpdatedAt,
		&heldAt,
		&releasedAt,
		&refundedAt,
		&disputedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	escrow.Provider = models.Provider(provider)
	escrow.Status = models.EscrowStatus(status)
	escrow.Currency = strings.TrimSpace(escrow.Currency)

	if err := json.Unmarshal([]byte(evidence), &escrow.DisputeEvidence); err != nil {
		return nil, fmt.Errorf("failed to decode dispute evidence: %w", err)
	}

	escrow.FarmerPhone = nullString(farmerPhone)
	escrow.ProviderTransactionRef = nullString(providerRef)
	escrow.ReleaseRef = nullString(releaseRef)
	escrow.RefundRef = nullString(refundRef)
	escrow.PaymentProof = nullString(paymentProof)
	escrow.VerificationProof = nullString(verification)
	escrow.ReleaseCondition = nullString(releaseCondition)
	escrow.ConfirmationMethod = nullString(confirmMethod)
	escrow.ConfirmationProof = nullString(confirmProof)
	escrow.HoldReason = nullString(holdReason)
	escrow.RefundReason = nullString(refundReason)
	escrow.DisputeReason = nullString(disputeReason)
	escrow.ResolutionNote = nullString(resolutionNote)

	if pendingOperation.Valid {
		op := models.Operation(pendingOperation.String)
		escrow.PendingOperation = &op
	}

	escrow.PendingSince = nullTime(pendingSince)
	escrow.HeldAt = nullTime(heldAt)
	escrow.ReleasedAt = nullTime(releasedAt)
	escrow.RefundedAt = nullTime(refundedAt)
	escrow.DisputedAt = nullTime(disputedAt)
	escrow.ResolvedAt = nullTime(resolvedAt)

	return &escrow, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}
