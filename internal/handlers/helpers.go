package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/benx421/payment-gateway/escrow/internal/api"
	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/benx421/payment-gateway/escrow/internal/service"
	"github.com/google/uuid"
)

// PrefixEscrow marks escrow IDs in API payloads
const PrefixEscrow = "esc_"

func formatEscrowID(id uuid.UUID) string {
	return PrefixEscrow + id.String()
}

func parseEscrowID(id string) (uuid.UUID, error) {
	return parseIDWithPrefix(id, PrefixEscrow, "escrow")
}

func parseIDWithPrefix(id, prefix, typeName string) (uuid.UUID, error) {
	if !strings.HasPrefix(id, prefix) {
		return uuid.Nil, fmt.Errorf("invalid %s ID format: missing %s prefix", typeName, prefix)
	}

	uuidStr := strings.TrimPrefix(id, prefix)
	parsed, err := uuid.Parse(uuidStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID format: %w", typeName, err)
	}

	return parsed, nil
}

// errorReply is a failure already mapped to its HTTP status and body
type errorReply struct {
	body   api.ErrorResponse
	status int
}

func statusForCode(code string) int {
	switch code {
	case service.ErrCodeValidationFailed, service.ErrCodePreconditionFailed:
		return http.StatusBadRequest
	case service.ErrCodeNotFound:
		return http.StatusNotFound
	case service.ErrCodeInvalidState, service.ErrCodeDuplicateTransaction,
		service.ErrCodeConcurrentOperation, service.ErrCodeOutcomeUnknown:
		return http.StatusConflict
	case service.ErrCodeProviderRejected, service.ErrCodePaymentNotVerified:
		return http.StatusUnprocessableEntity
	case service.ErrCodeProviderUnavailable:
		return http.StatusBadGateway
	case service.ErrCodeProviderTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func kindForCode(code string) api.ErrorKind {
	kind := api.ErrorKind(code)
	switch kind {
	case api.ErrorKindValidationFailed, api.ErrorKindPreconditionFailed, api.ErrorKindNotFound,
		api.ErrorKindInvalidState, api.ErrorKindDuplicateTransaction, api.ErrorKindConcurrentOperation,
		api.ErrorKindOutcomeUnknown, api.ErrorKindProviderRejected, api.ErrorKindPaymentNotVerified,
		api.ErrorKindProviderUnavailable, api.ErrorKindProviderTimeout:
		return kind
	default:
		return api.ErrorKindInternalError
	}
}

// replyFor maps an engine error to a response. escrow is the record the
// engine returned alongside the error, if any.
func (h *Handler) replyFor(operation string, err error, escrow *models.EscrowTransaction) errorReply {
	reply := errorReply{
		status: http.StatusInternalServerError,
		body: api.ErrorResponse{
			Success: false,
			Kind:    api.ErrorKindInternalError,
			Message: "internal error",
		},
	}
	if escrow != nil {
		id := formatEscrowID(escrow.ID)
		reply.body.TransactionId = &id
	}

	svcErr := extractServiceError(err)
	if svcErr == nil {
		h.logger.Error("unexpected error", "operation", operation, "error", err)
		return reply
	}

	reply.status = statusForCode(svcErr.Code)
	reply.body.Kind = kindForCode(svcErr.Code)
	reply.body.Retryable = svcErr.Retryable()
	if reply.body.Kind != api.ErrorKindInternalError {
		reply.body.Message = svcErr.Message
	}

	if reply.status >= http.StatusInternalServerError {
		h.logger.Error("operation failed", "operation", operation, "kind", reply.body.Kind, "error", err)
	} else {
		h.logger.Info("operation refused", "operation", operation, "kind", reply.body.Kind, "reason", svcErr.Message)
	}
	return reply
}

func invalidIDReply() errorReply {
	return errorReply{
		status: http.StatusNotFound,
		body: api.ErrorResponse{
			Success: false,
			Kind:    api.ErrorKindNotFound,
			Message: "escrow not found",
		},
	}
}

func badRequestReply(message string) errorReply {
	return errorReply{
		status: http.StatusBadRequest,
		body: api.ErrorResponse{
			Success: false,
			Kind:    api.ErrorKindValidationFailed,
			Message: message,
		},
	}
}

func extractServiceError(err error) *service.ServiceError {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}

func escrowResult(escrow *models.EscrowTransaction) api.EscrowResult {
	return api.EscrowResult{
		Success:           true,
		TransactionId:     formatEscrowID(escrow.ID),
		Status:            api.EscrowStatus(escrow.Status),
		ProviderReference: escrow.ProviderTransactionRef,
		ReleaseReference:  escrow.ReleaseRef,
		RefundReference:   escrow.RefundRef,
		PendingOperation:  pendingOperation(escrow),
	}
}

func pendingOperation(escrow *models.EscrowTransaction) *api.PendingOperation {
	if escrow.PendingOperation == nil {
		return nil
	}
	op := api.PendingOperation(*escrow.PendingOperation)
	return &op
}

func toAPIEscrow(escrow *models.EscrowTransaction) api.Escrow {
	out := api.Escrow{
		TransactionId:          formatEscrowID(escrow.ID),
		OrderId:                escrow.OrderID,
		CustomerId:             escrow.CustomerID,
		FarmerId:               escrow.FarmerID,
		Amount:                 escrow.Amount.StringFixed(2),
		Currency:               escrow.Currency,
		Provider:               api.Provider(escrow.Provider),
		Status:                 api.EscrowStatus(escrow.Status),
		CustomerPhone:          escrow.CustomerPhone,
		FarmerPhone:            escrow.FarmerPhone,
		ProviderTransactionRef: escrow.ProviderTransactionRef,
		ReleaseRef:             escrow.ReleaseRef,
		RefundRef:              escrow.RefundRef,
		PaymentProof:           escrow.PaymentProof,
		VerificationProof:      escrow.VerificationProof,
		ReleaseCondition:       escrow.ReleaseCondition,
		ConfirmationMethod:     escrow.ConfirmationMethod,
		ConfirmationProof:      escrow.ConfirmationProof,
		HoldReason:             escrow.HoldReason,
		RefundReason:           escrow.RefundReason,
		DisputeReason:          escrow.DisputeReason,
		ResolutionNote:         escrow.ResolutionNote,
		PendingOperation:       pendingOperation(escrow),
		PendingSince:           escrow.PendingSince,
		HeldAt:                 escrow.HeldAt,
		ReleasedAt:             escrow.ReleasedAt,
		RefundedAt:             escrow.RefundedAt,
		DisputedAt:             escrow.DisputedAt,
		ResolvedAt:             escrow.ResolvedAt,
		OrderSyncPending:       escrow.OrderSyncPending,
		CreatedAt:              escrow.CreatedAt,
		UpdatedAt:              escrow.UpdatedAt,
	}
	if escrow.DisputeEvidence != nil {
		evidence := escrow.DisputeEvidence
		out.DisputeEvidence = &evidence
	}
	return out
}

func toAPIEvent(event *models.EscrowEvent) api.EscrowEvent {
	out := api.EscrowEvent{
		EventId:   event.ID,
		Type:      string(event.Type),
		Detail:    event.Detail,
		CreatedAt: event.CreatedAt,
	}
	if event.FromStatus != nil {
		from := api.EscrowStatus(*event.FromStatus)
		out.FromStatus = &from
	}
	if event.ToStatus != nil {
		to := api.EscrowStatus(*event.ToStatus)
		out.ToStatus = &to
	}
	return out
}
