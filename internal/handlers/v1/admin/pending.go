package admin

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/payments-portal/internal/auth"
	"github.com/carson-networks/payments-portal/internal/handlers/v1/apiutil"
	"github.com/carson-networks/payments-portal/internal/handlers/v1/transaction"
	"github.com/carson-networks/payments-portal/internal/logging"
	"github.com/carson-networks/payments-portal/internal/service"
)

type approvalService interface {
	ListPending(ctx context.Context, principal *auth.Principal) ([]service.Transaction, error)
	Approve(ctx context.Context, principal *auth.Principal, id uuid.UUID) (*service.Transaction, error)
	Reject(ctx context.Context, principal *auth.Principal, id uuid.UUID) (*service.Transaction, error)
}

type PendingOutput struct {
	Body transaction.TransactionsBody
}

type DecisionInput struct {
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

type DecisionOutput struct {
	Body transaction.Transaction
}

// ApprovalHandler serves the admin approval queue.
type ApprovalHandler struct {
	PaymentService approvalService
}

func NewApprovalHandler(svc approvalService) *ApprovalHandler {
	return &ApprovalHandler{PaymentService: svc}
}

func (h *ApprovalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-pending-payments",
		Method:      http.MethodGet,
		Path:        "/admin/payments/pending",
		Summary:     "List pending payments",
		Description: "Returns every pending payment, oldest first.",
		Tags:        []string{"Admin"},
		Security:    apiutil.Secured,
	}, h.listPending)

	huma.Register(api, huma.Operation{
		OperationID: "approve-payment",
		Method:      http.MethodPost,
		Path:        "/admin/payments/{id}/approve",
		Summary:     "Approve payment",
		Description: "Moves a pending payment to approved. Answers 409 when it was already decided.",
		Tags:        []string{"Admin"},
		Security:    apiutil.Secured,
	}, h.decide(approvalService.Approve))

	huma.Register(api, huma.Operation{
		OperationID: "reject-payment",
		Method:      http.MethodPost,
		Path:        "/admin/payments/{id}/reject",
		Summary:     "Reject payment",
		Description: "Moves a pending payment to rejected. Answers 409 when it was already decided.",
		Tags:        []string{"Admin"},
		Security:    apiutil.Secured,
	}, h.decide(approvalService.Reject))
}

func (h *ApprovalHandler) listPending(ctx context.Context, _ *struct{}) (*PendingOutput, error) {
	principal, err := apiutil.Principal(ctx)
	if err != nil {
		return nil, err
	}

	txs, err := h.PaymentService.ListPending(ctx, principal)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to list pending payments")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("pendingCount", len(txs))
	}
	return &PendingOutput{Body: transaction.TransactionsBody{Transactions: transaction.FromServiceList(txs)}}, nil
}

type decisionFunc func(svc approvalService, ctx context.Context, principal *auth.Principal, id uuid.UUID) (*service.Transaction, error)

func (h *ApprovalHandler) decide(decision decisionFunc) func(context.Context, *DecisionInput) (*DecisionOutput, error) {
	return func(ctx context.Context, input *DecisionInput) (*DecisionOutput, error) {
		principal, err := apiutil.Principal(ctx)
		if err != nil {
			return nil, err
		}

		id, err := uuid.FromString(input.ID)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
		}
		if logData := logging.GetLogData(ctx); logData != nil {
			logData.AddData("paymentID", id.String())
		}

		tx, err := decision(h.PaymentService, ctx, principal, id)
		if err != nil {
			return nil, apiutil.Error(ctx, err, "failed to resolve payment")
		}
		return &DecisionOutput{Body: transaction.FromService(*tx)}, nil
	}
}
