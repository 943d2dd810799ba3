package models

import (
	"time"

	"github.com/google/uuid"
)

// EventType names an audit event written after a committed transition
type EventType string

const (
	EventTypeInitiated       EventType = "escrow.initiated"
	EventTypeHeld            EventType = "escrow.held"
	EventTypeReleased        EventType = "escrow.released"
	EventTypeRefunded        EventType = "escrow.refunded"
	EventTypeDisputed        EventType = "escrow.disputed"
	EventTypeResolved        EventType = "escrow.resolved"
	EventTypeOutcomeUnknown  EventType = "escrow.outcome_unknown"
	EventTypeOutcomeResolved EventType = "escrow.outcome_resolved"
)

// EscrowEvent is an append-only audit record
type EscrowEvent struct {
	CreatedAt  time.Time     `db:"created_at"`
	FromStatus *EscrowStatus `db:"from_status"`
	ToStatus   *EscrowStatus `db:"to_status"`
	Type       EventType     `db:"type"`
	Detail     string        `db:"detail"`
	ID         uuid.UUID     `db:"id"`
	EscrowID   uuid.UUID     `db:"escrow_id"`
}

// IdempotencyKey tracks processed requests so retried POSTs replay the first response
type IdempotencyKey struct {
	CreatedAt      time.Time `db:"created_at"`
	Key            string    `db:"key"`
	RequestPath    string    `db:"request_path"`
	RequestHash    string    `db:"request_hash"`
	ResponseBody   string    `db:"response_body"`
	ResponseStatus int       `db:"response_status"`
}
