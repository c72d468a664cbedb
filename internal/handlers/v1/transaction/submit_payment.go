package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/payments-portal/internal/auth"
	"github.com/carson-networks/payments-portal/internal/currency"
	"github.com/carson-networks/payments-portal/internal/handlers/v1/apiutil"
	"github.com/carson-networks/payments-portal/internal/service"
)

// SubmitPaymentBody is the request body for submitting a payment.
type SubmitPaymentBody struct {
	RecipientEmail string `json:"recipientEmail" required:"true" minLength:"1" doc:"Email of the registered recipient"`
	SwiftCode      string `json:"swiftCode" required:"true" minLength:"1" doc:"Recipient bank SWIFT code"`
	Amount         string `json:"amount" required:"true" doc:"Amount already converted to the settlement currency"`
	Currency       string `json:"currency" required:"true" doc:"Currency the sender entered the amount in"`
	OriginalAmount string `json:"originalAmount,omitempty" required:"false" doc:"Amount as entered, used to verify the conversion"`
}

// SubmitPaymentInput is the Huma input for submitting a payment.
type SubmitPaymentInput struct {
	Body SubmitPaymentBody
}

// SubmitPaymentOutput is the Huma output for submitting a payment.
type SubmitPaymentOutput struct {
	Body Transaction
}

type paymentSubmitter interface {
	Submit(ctx context.Context, principal *auth.Principal, req service.PaymentRequest) (*service.Transaction, error)
}

// SubmitPaymentHandler handles POST /payments.
type SubmitPaymentHandler struct {
	PaymentService paymentSubmitter
}

func NewSubmitPaymentHandler(svc paymentSubmitter) *SubmitPaymentHandler {
	return &SubmitPaymentHandler{PaymentService: svc}
}

func (h *SubmitPaymentHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "submit-payment",
		Method:        http.MethodPost,
		Path:          "/payments",
		Summary:       "Submit payment",
		Description:   "Creates a pending payment from the caller to the recipient.",
		Tags:          []string{"Payments"},
		DefaultStatus: http.StatusCreated,
		Security:      apiutil.Secured,
	}, h.handle)
}

// parseSubmitPaymentInput parses the decimal fields of the request.
func parseSubmitPaymentInput(input *SubmitPaymentInput) (service.PaymentRequest, error) {
	req := service.PaymentRequest{
		RecipientEmail: input.Body.RecipientEmail,
		SwiftCode:      input.Body.SwiftCode,
		Currency:       input.Body.Currency,
	}

	amount, err := currency.ParseAmount(input.Body.Amount)
	if err != nil {
		return req, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	req.Amount = amount

	if input.Body.OriginalAmount != "" {
		original, err := currency.ParseAmount(input.Body.OriginalAmount)
		if err != nil {
			return req, huma.NewError(http.StatusBadRequest, "invalid originalAmount", err)
		}
		req.OriginalAmount = &original
	}
	return req, nil
}

func (h *SubmitPaymentHandler) handle(ctx context.Context, input *SubmitPaymentInput) (*SubmitPaymentOutput, error) {
	principal, err := apiutil.Principal(ctx)
	if err != nil {
		return nil, err
	}

	req, err := parseSubmitPaymentInput(input)
	if err != nil {
		return nil, err
	}

	var tx *service.Transaction
	apiutil.Time(ctx, "submitPaymentMs", func() {
		tx, err = h.PaymentService.Submit(ctx, principal, req)
	})
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to submit payment")
	}

	return &SubmitPaymentOutput{Body: FromService(*tx)}, nil
}
