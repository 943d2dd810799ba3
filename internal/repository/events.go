package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/benx421/payment-gateway/escrow/internal/db"
	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/google/uuid"
)

// EventRepository appends and reads the escrow audit trail
type EventRepository interface {
	Append(ctx context.Context, event *models.EscrowEvent) error
	ListByEscrow(ctx context.Context, escrowID uuid.UUID) ([]*models.EscrowEvent, error)
}

type eventRepository struct {
	db *db.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(database *db.DB) EventRepository {
	return &eventRepository{db: database}
}

func (r *eventRepository) Append(ctx context.Context, event *models.EscrowEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	query := r.db.Rebind(`
		INSERT INTO escrow_events (id, escrow_id, type, from_status, to_status, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.EscrowID,
		string(event.Type),
		statusValue(event.FromStatus),
		statusValue(event.ToStatus),
		event.Detail,
		event.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to append escrow event: %w", err)
	}

	return nil
}

// ListByEscrow returns the escrow's events in the order they were written
func (r *eventRepository) ListByEscrow(ctx context.Context, escrowID uuid.UUID) ([]*models.EscrowEvent, error) {
	query := r.db.Rebind(`
		SELECT id, escrow_id, type, from_status, to_status, detail, created_at
		FROM escrow_events
		WHERE escrow_id = ?
		ORDER BY created_at, id
	`)

	rows, err := r.db.QueryContext(ctx, query, escrowID)
	if err != nil {
		return nil, fmt.Errorf("failed to list escrow events: %w", err)
	}
	defer rows.Close()

	events := []*models.EscrowEvent{}
	for rows.Next() {
		var (
			event     models.EscrowEvent
			eventType string
			from, to  sql.NullString
		)
		if err := rows.Scan(&event.ID, &event.EscrowID, &eventType, &from, &to, &event.Detail, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan escrow event: %w", err)
		}
		event.Type = models.EventType(eventType)
		event.FromStatus = statusPtr(from)
		event.ToStatus = statusPtr(to)
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate escrow events: %w", err)
	}

	return events, nil
}

func statusValue(s *models.EscrowStatus) any {
	if s == nil {
		return nil
	}
	return string(*s)
}

func statusPtr(v sql.NullString) *models.EscrowStatus {
	if !v.Valid {
		return nil
	}
	s := models.EscrowStatus(v.String)
	return &s
}
