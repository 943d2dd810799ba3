package models

import "errors"

// Domain errors that can be returned by repositories
var (
	// ErrDuplicateTransaction indicates an active escrow already exists for the order
	ErrDuplicateTransaction = errors.New("duplicate transaction")

	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrStatusConflict indicates a conditional update found the record in a
	// different status or under a different lease holder
	ErrStatusConflict = errors.New("status conflict")

	// ErrLeaseHeld indicates another operation currently holds the record's lease
	ErrLeaseHeld = errors.New("lease held by another operation")
)
