package handlers

import (
	"context"
	"net/http"

	"github.com/benx421/payment-gateway/escrow/internal/api"
	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/benx421/payment-gateway/escrow/internal/service"
	"github.com/shopspring/decimal"
)

// CreateEscrow handles POST /api/v1/escrows
func (h *Handler) CreateEscrow(
	ctx context.Context,
	request api.CreateEscrowRequestObject,
) (api.CreateEscrowResponseObject, error) {
	body := request.Body

	amount, err := decimal.NewFromString(body.Amount)
	if err != nil {
		//nolint:nilerr // Returning 400 response object, not propagating error
		return createEscrowError(badRequestReply("amount: must be a decimal number")), nil
	}

	escrow, err := h.escrows.Initiate(ctx, service.InitiateRequest{
		OrderID:       body.OrderId,
		CustomerID:    body.CustomerId,
		FarmerID:      body.FarmerId,
		Amount:        amount,
		Provider:      models.Provider(body.Provider),
		CustomerPhone: body.CustomerPhone,
		FarmerPhone:   body.FarmerPhone,
	})
	if err != nil {
		return createEscrowError(h.replyFor("initiate", err, escrow)), nil
	}

	return api.CreateEscrow200JSONResponse{
		EscrowUpdatedJSONResponse: api.EscrowUpdatedJSONResponse(escrowResult(escrow)),
	}, nil
}

func createEscrowError(reply errorReply) api.CreateEscrowResponseObject {
	switch reply.status {
	case http.StatusBadRequest:
		return api.CreateEscrow400JSONResponse{BadRequestJSONResponse: api.BadRequestJSONResponse(reply.body)}
	case http.StatusNotFound:
		return api.CreateEscrow404JSONResponse{NotFoundJSONResponse: api.NotFoundJSONResponse(reply.body)}
	case http.StatusConflict:
		return api.CreateEscrow409JSONResponse{ConflictJSONResponse: api.ConflictJSONResponse(reply.body)}
	default:
		return api.CreateEscrowdefaultJSONResponse{Body: reply.body, StatusCode: reply.status}
	}
}

// ConfirmPayment handles POST /api/v1/escrows/confirmations
func (h *Handler) ConfirmPayment(
	ctx context.Context,
	request api.ConfirmPaymentRequestObject,
) (api.ConfirmPaymentResponseObject, error) {
	escrowID, err := parseEscrowID(request.Body.TransactionId)
	if err != nil {
		//nolint:nilerr // Returning 404 response object, not propagating error
		return confirmPaymentError(invalidIDReply()), nil
	}

	escrow, err := h.escrows.ConfirmPayment(ctx, service.ConfirmRequest{
		EscrowID: escrowID,
		Proof:    request.Body.PaymentProof,
	})
	if err != nil {
		return confirmPaymentError(h.replyFor("confirm_payment", err, escrow)), nil
	}

	return api.ConfirmPayment200JSONResponse{
		EscrowUpdatedJSONResponse: api.EscrowUpdatedJSONResponse(escrowResult(escrow)),
	}, nil
}

func confirmPaymentError(reply errorReply) api.ConfirmPaymentResponseObject {
	switch reply.status {
	case http.StatusBadRequest:
		return api.ConfirmPayment400JSONResponse{BadRequestJSONResponse: api.BadRequestJSONResponse(reply.body)}
	case http.StatusNotFound:
		return api.ConfirmPayment404JSONResponse{NotFoundJSONResponse: api.NotFoundJSONResponse(reply.body)}
	case http.StatusConflict:
		return api.ConfirmPayment409JSONResponse{ConflictJSONResponse: api.ConflictJSONResponse(reply.body)}
	default:
		return api.ConfirmPaymentdefaultJSONResponse{Body: reply.body, StatusCode: reply.status}
	}
}

// ReleaseEscrow handles POST /api/v1/escrows/releases
func (h *Handler) ReleaseEscrow(
	ctx context.Context,
	request api.ReleaseEscrowRequestObject,
) (api.ReleaseEscrowResponseObject, error) {
	body := request.Body

	escrowID, err := parseEscrowID(body.TransactionId)
	if err != nil {
		//nolint:nilerr // Returning 404 response object, not propagating error
		return releaseEscrowError(invalidIDReply()), nil
	}

	escrow, err := h.escrows.Release(ctx, service.ReleaseRequest{
		EscrowID:           escrowID,
		DeliveryConfirmed:  body.DeliveryConfirmed,
		ConfirmationMethod: body.ConfirmationMethod,
		ConfirmationProof:  body.ConfirmationProof,
		FarmerPhone:        body.FarmerPhone,
	})
	if err != nil {
		return releaseEscrowError(h.replyFor("release", err, escrow)), nil
	}

	return api.ReleaseEscrow200JSONResponse{
		EscrowUpdatedJSONResponse: api.EscrowUpdatedJSONResponse(escrowResult(escrow)),
	}, nil
}

func releaseEscrowError(reply errorReply) api.ReleaseEscrowResponseObject {
	switch reply.status {
	case http.StatusBadRequest:
		return api.ReleaseEscrow400JSONResponse{BadRequestJSONResponse: api.BadRequestJSONResponse(reply.body)}
	case http.StatusNotFound:
		return api.ReleaseEscrow404JSONResponse{NotFoundJSONResponse: api.NotFoundJSONResponse(reply.body)}
	case http.StatusConflict:
		return api.ReleaseEscrow409JSONResponse{ConflictJSONResponse: api.ConflictJSONResponse(reply.body)}
	default:
		return api.ReleaseEscrowdefaultJSONResponse{Body: reply.body, StatusCode: reply.status}
	}
}

// RefundEscrow handles POST /api/v1/escrows/refunds
func (h *Handler) RefundEscrow(
	ctx context.Context,
	request api.RefundEscrowRequestObject,
) (api.RefundEscrowResponseObject, error) {
	escrowID, err := parseEscrowID(request.Body.TransactionId)
	if err != nil {
		//nolint:nilerr // Returning 404 response object, not propagating error
		return refundEscrowError(invalidIDReply()), nil
	}

	escrow, err := h.escrows.Refund(ctx, service.RefundRequest{
		EscrowID: escrowID,
		Reason:   request.Body.Reason,
	})
	if err != nil {
		return refundEscrowError(h.replyFor("refund", err, escrow)), nil
	}

	return api.RefundEscrow200JSONResponse{
		EscrowUpdatedJSONResponse: api.EscrowUpdatedJSONResponse(escrowResult(escrow)),
	}, nil
}

func refundEscrowError(reply errorReply) api.RefundEscrowResponseObject {
	switch reply.status {
	case http.StatusBadRequest:
		return api.RefundEscrow400JSONResponse{BadRequestJSONResponse: api.BadRequestJSONResponse(reply.body)}
	case http.StatusNotFound:
		return api.RefundEscrow404JSONResponse{NotFoundJSONResponse: api.NotFoundJSONResponse(reply.body)}
	case http.StatusConflict:
		return api.RefundEscrow409JSONResponse{ConflictJSONResponse: api.ConflictJSONResponse(reply.body)}
	default:
		return api.RefundEscrowdefaultJSONResponse{Body: reply.body, StatusCode: reply.status}
	}
}

// DisputeEscrow handles POST /api/v1/escrows/disputes
func (h *Handler) DisputeEscrow(
	ctx context.Context,
	request api.DisputeEscrowRequestObject,
) (api.DisputeEscrowResponseObject, error) {
	escrowID, err := parseEscrowID(request.Body.TransactionId)
	if err != nil {
		//nolint:nilerr // Returning 404 response object, not propagating error
		return disputeEscrowError(invalidIDReply()), nil
	}

	req := service.DisputeRequest{
		EscrowID: escrowID,
		Reason:   request.Body.Reason,
	}
	if request.Body.Evidence != nil {
		req.Evidence = *request.Body.Evidence
	}

	escrow, err := h.escrows.RaiseDispute(ctx, req)
	if err != nil {
		return disputeEscrowError(h.replyFor("dispute", err, escrow)), nil
	}

	return api.DisputeEscrow200JSONResponse{
		EscrowUpdatedJSONResponse: api.EscrowUpdatedJSONResponse(escrowResult(escrow)),
	}, nil
}

func disputeEscrowError(reply errorReply) api.DisputeEscrowResponseObject {
	switch reply.status {
	case http.StatusBadRequest:
		return api.DisputeEscrow400JSONResponse{BadRequestJSONResponse: api.BadRequestJSONResponse(reply.body)}
	case http.StatusNotFound:
		return api.DisputeEscrow404JSONResponse{NotFoundJSONResponse: api.NotFoundJSONResponse(reply.body)}
	case http.StatusConflict:
		return api.DisputeEscrow409JSONResponse{ConflictJSONResponse: api.ConflictJSONResponse(reply.body)}
	default:
		return api.DisputeEscrowdefaultJSONResponse{Body: reply.body, StatusCode: reply.status}
	}
}

// ResolveDispute handles POST /api/v1/escrows/resolutions
func (h *Handler) ResolveDispute(
	ctx context.Context,
	request api.ResolveDisputeRequestObject,
) (api.ResolveDisputeResponseObject, error) {
	body := request.Body

	escrowID, err := parseEscrowID(body.TransactionId)
	if err != nil {
		//nolint:nilerr // Returning 404 response object, not propagating error
		return resolveDisputeError(invalidIDReply()), nil
	}

	escrow, err := h.escrows.ResolveDispute(ctx, service.ResolutionRequest{
		EscrowID:            escrowID,
		Outcome:             models.EscrowStatus(body.Outcome),
		SettlementReference: body.SettlementReference,
		Note:                body.Note,
	})
	if err != nil {
		return resolveDisputeError(h.replyFor("resolve_dispute", err, escrow)), nil
	}

	return api.ResolveDispute200JSONResponse{
		EscrowUpdatedJSONResponse: api.EscrowUpdatedJSONResponse(escrowResult(escrow)),
	}, nil
}

func resolveDisputeError(reply errorReply) api.ResolveDisputeResponseObject {
	switch reply.status {
	case http.StatusBadRequest:
		return api.ResolveDispute400JSONResponse{BadRequestJSONResponse: api.BadRequestJSONResponse(reply.body)}
	case http.StatusNotFound:
		return api.ResolveDispute404JSONResponse{NotFoundJSONResponse: api.NotFoundJSONResponse(reply.body)}
	case http.StatusConflict:
		return api.ResolveDispute409JSONResponse{ConflictJSONResponse: api.ConflictJSONResponse(reply.body)}
	default:
		return api.ResolveDisputedefaultJSONResponse{Body: reply.body, StatusCode: reply.status}
	}
}

// GetEscrow handles GET /api/v1/escrows/{transactionId}
func (h *Handler) GetEscrow(
	ctx context.Context,
	request api.GetEscrowRequestObject,
) (api.GetEscrowResponseObject, error) {
	escrowID, err := parseEscrowID(request.TransactionId)
	if err != nil {
		//nolint:nilerr // Returning 404 response object, not propagating error
		return api.GetEscrow404JSONResponse{
			NotFoundJSONResponse: api.NotFoundJSONResponse(invalidIDReply().body),
		}, nil
	}

	escrow, err := h.escrows.GetEscrow(ctx, escrowID)
	if err != nil {
		reply := h.replyFor("get_escrow", err, nil)
		if reply.status == http.StatusNotFound {
			return api.GetEscrow404JSONResponse{NotFoundJSONResponse: api.NotFoundJSONResponse(reply.body)}, nil
		}
		return api.GetEscrowdefaultJSONResponse{Body: reply.body, StatusCode: reply.status}, nil
	}

	return api.GetEscrow200JSONResponse(toAPIEscrow(escrow)), nil
}

// ListEscrowEvents handles GET /api/v1/escrows/{transactionId}/events
func (h *Handler) ListEscrowEvents(
	ctx context.Context,
	request api.ListEscrowEventsRequestObject,
) (api.ListEscrowEventsResponseObject, error) {
	escrowID, err := parseEscrowID(request.TransactionId)
	if err != nil {
		//nolint:nilerr // Returning 404 response object, not propagating error
		return api.ListEscrowEvents404JSONResponse{
			NotFoundJSONResponse: api.NotFoundJSONResponse(invalidIDReply().body),
		}, nil
	}

	events, err := h.escrows.ListEvents(ctx, escrowID)
	if err != nil {
		reply := h.replyFor("list_events", err, nil)
		if reply.status == http.StatusNotFound {
			return api.ListEscrowEvents404JSONResponse{NotFoundJSONResponse: api.NotFoundJSONResponse(reply.body)}, nil
		}
		return api.ListEscrowEventsdefaultJSONResponse{Body: reply.body, StatusCode: reply.status}, nil
	}

	out := make([]api.EscrowEvent, 0, len(events))
	for _, event := range events {
		out = append(out, toAPIEvent(event))
	}

	return api.ListEscrowEvents200JSONResponse{
		TransactionId: request.TransactionId,
		Events:        out,
	}, nil
}
