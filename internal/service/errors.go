package service

import "fmt"

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the same request may succeed if sent again
func (e *ServiceError) Retryable() bool {
	switch e.Code {
	case ErrCodeProviderUnavailable, ErrCodeProviderTimeout, ErrCodePaymentNotVerified,
		ErrCodeOutcomeUnknown, ErrCodeConcurrentOperation:
		return true
	default:
		return false
	}
}

// Error codes
const (
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidState         = "invalid_state"
	ErrCodeDuplicateTransaction = "duplicate_transaction"
	ErrCodePreconditionFailed   = "precondition_failed"
	ErrCodeValidationFailed     = "validation_failed"
	ErrCodeProviderUnavailable  = "provider_unavailable"
	ErrCodeProviderTimeout      = "provider_timeout"
	ErrCodeProviderRejected     = "provider_rejected"
	ErrCodePaymentNotVerified   = "payment_not_verified"
	ErrCodeOutcomeUnknown       = "outcome_unknown"
	ErrCodeConcurrentOperation  = "concurrent_operation"
	ErrCodeInternalError        = "internal_error"
)

func newError(code, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}

func internalError(message string, err error) *ServiceError {
	return &ServiceError{Code: ErrCodeInternalError, Message: message, Err: err}
}
