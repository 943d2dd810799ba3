package models

// EscrowStatus is the lifecycle state of an escrow
type EscrowStatus string

const (
	EscrowStatusPending  EscrowStatus = "pending"
	EscrowStatusHeld     EscrowStatus = "held"
	EscrowStatusReleased EscrowStatus = "released"
	EscrowStatusRefunded EscrowStatus = "refunded"
	EscrowStatusDisputed EscrowStatus = "disputed"
)

// Valid reports whether s is a known status
func (s EscrowStatus) Valid() bool {
	switch s {
	case EscrowStatusPending, EscrowStatusHeld, EscrowStatusReleased,
		EscrowStatusRefunded, EscrowStatusDisputed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition can leave s
func (s EscrowStatus) IsTerminal() bool {
	return s == EscrowStatusReleased || s == EscrowStatusRefunded
}

// IsActive reports whether an escrow in status s still blocks a new escrow for
// the same order
func (s EscrowStatus) IsActive() bool {
	return s.Valid() && !s.IsTerminal()
}

// CanTransition is the single authority on legal status changes.
// Transitions out of disputed are recorded out-of-band only.
func CanTransition(from, to EscrowStatus) bool {
	switch from {
	case EscrowStatusPending:
		return to == EscrowStatusHeld || to == EscrowStatusDisputed
	case EscrowStatusHeld:
		return to == EscrowStatusReleased || to == EscrowStatusRefunded || to == EscrowStatusDisputed
	case EscrowStatusDisputed:
		return to == EscrowStatusHeld || to == EscrowStatusReleased || to == EscrowStatusRefunded
	case EscrowStatusReleased, EscrowStatusRefunded:
		return false
	default:
		return false
	}
}

// OrderStatus is the status the order collaborator tracks for an order
type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)
