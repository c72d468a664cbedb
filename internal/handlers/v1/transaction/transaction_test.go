package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/payments-portal/internal/apperr"
	"github.com/carson-networks/payments-portal/internal/auth"
	"github.com/carson-networks/payments-portal/internal/ledger"
	"github.com/carson-networks/payments-portal/internal/service"
)

type mockPaymentSubmitter struct {
	mock.Mock
}

func (m *mockPaymentSubmitter) Submit(ctx context.Context, principal *auth.Principal, req service.PaymentRequest) (*service.Transaction, error) {
	args := m.Called(ctx, principal, req)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

type mockLedgerReader struct {
	mock.Mock
}

func (m *mockLedgerReader) Balance(ctx context.Context, principal *auth.Principal) (*service.Statement, error) {
	args := m.Called(ctx, principal)
	statement, _ := args.Get(0).(*service.Statement)
	return statement, args.Error(1)
}

func (m *mockLedgerReader) History(ctx context.Context, principal *auth.Principal) ([]service.Transaction, error) {
	args := m.Called(ctx, principal)
	txs, _ := args.Get(0).([]service.Transaction)
	return txs, args.Error(1)
}

func (m *mockLedgerReader) Summary(ctx context.Context, principal *auth.Principal) (ledger.Summary, error) {
	args := m.Called(ctx, principal)
	summary, _ := args.Get(0).(ledger.Summary)
	return summary, args.Error(1)
}

var caller = &auth.Principal{UserID: uuid.Must(uuid.NewV4()), Role: auth.RoleUser}

// newTestAPI returns a humatest API where every request is made as principal.
// A nil principal leaves requests unauthenticated.
func newTestAPI(t *testing.T, principal *auth.Principal, register func(api huma.API)) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	if principal != nil {
		api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
			next(huma.WithContext(ctx, auth.WithPrincipal(ctx.Context(), principal)))
		})
	}
	register(api)
	return api
}

func sampleTransaction() service.Transaction {
	return service.Transaction{
		ID:               uuid.Must(uuid.NewV4()),
		SenderID:         caller.UserID,
		RecipientID:      uuid.Must(uuid.NewV4()),
		RecipientName:    "Bob Tester",
		Amount:           decimal.RequireFromString("1912"),
		OriginalAmount:   decimal.RequireFromString("100"),
		OriginalCurrency: "USD",
		SwiftCode:        "ABSAZAJJ",
		Status:           ledger.StatusPending,
		TransactionType:  ledger.Outgoing,
		CreatedAt:        time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC),
	}
}

// -- parseSubmitPaymentInput unit tests --

func TestParseSubmitPaymentInput(t *testing.T) {
	req, err := parseSubmitPaymentInput(&SubmitPaymentInput{Body: SubmitPaymentBody{
		RecipientEmail: "bob@example.com",
		SwiftCode:      "ABSAZAJJ",
		Amount:         "1912.00",
		Currency:       "USD",
		OriginalAmount: "100",
	}})

	require.NoError(t, err)
	assert.True(t, req.Amount.Equal(decimal.NewFromInt(1912)))
	require.NotNil(t, req.OriginalAmount)
	assert.True(t, req.OriginalAmount.Equal(decimal.NewFromInt(100)))

	req, err = parseSubmitPaymentInput(&SubmitPaymentInput{Body: SubmitPaymentBody{Amount: "5"}})
	require.NoError(t, err)
	assert.Nil(t, req.OriginalAmount)
}

// -- FromService unit tests --

func TestFromService_KeepsSubSecondPrecision(t *testing.T) {
	tx := sampleTransaction()
	tx.CreatedAt = time.Date(2025, 7, 1, 12, 0, 0, 123456789, time.UTC)
	resolvedAt := tx.CreatedAt.Add(1500 * time.Millisecond)
	tx.ResolvedAt = &resolvedAt

	out := FromService(tx)

	assert.Equal(t, "2025-07-01T12:00:00.123456789Z", out.CreatedAt)
	assert.Equal(t, "2025-07-01T12:00:01.623456789Z", out.ResolvedAt)
}

// -- HTTP tests (full Huma stack via humatest) --

func TestHTTP_SubmitPayment_Success(t *testing.T) {
	tx := sampleTransaction()
	mockSvc := new(mockPaymentSubmitter)
	mockSvc.On("Submit", mock.Anything, caller, mock.MatchedBy(func(req service.PaymentRequest) bool {
		return req.RecipientEmail == "bob@example.com" &&
			req.Currency == "USD" &&
			req.Amount.Equal(decimal.NewFromInt(1912)) &&
			req.OriginalAmount != nil
	})).Return(&tx, nil)

	resp := newTestAPI(t, caller, NewSubmitPaymentHandler(mockSvc).Register).Post("/payments", SubmitPaymentBody{
		RecipientEmail: "bob@example.com",
		SwiftCode:      "ABSAZAJJ",
		Amount:         "1912.00",
		Currency:       "USD",
		OriginalAmount: "100",
	})

	require.Equal(t, http.StatusCreated, resp.Code)
	var body Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, tx.ID.String(), body.ID)
	assert.Equal(t, "1912.00", body.Amount)
	assert.Equal(t, "pending", body.Status)
	assert.Equal(t, "outgoing", body.TransactionType)
	assert.Equal(t, "2025-07-01T12:00:00Z", body.CreatedAt)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_SubmitPayment_InvalidAmount(t *testing.T) {
	mockSvc := new(mockPaymentSubmitter)

	resp := newTestAPI(t, caller, NewSubmitPaymentHandler(mockSvc).Register).Post("/payments", SubmitPaymentBody{
		RecipientEmail: "bob@example.com",
		SwiftCode:      "ABSAZAJJ",
		Amount:         "-3",
		Currency:       "USD",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "Submit")
}

func TestHTTP_SubmitPayment_MissingFields(t *testing.T) {
	mockSvc := new(mockPaymentSubmitter)

	resp := newTestAPI(t, caller, NewSubmitPaymentHandler(mockSvc).Register).Post("/payments", map[string]any{
		"recipientEmail": "bob@example.com",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "Submit")
}

func TestHTTP_SubmitPayment_ServiceErrors(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("recipient not found: %w", apperr.ErrValidation): http.StatusBadRequest,
		apperr.ErrUnsupportedCurrency:                               http.StatusBadRequest,
		errors.New("database unavailable"):                          http.StatusInternalServerError,
	}
	for svcErr, want := range cases {
		mockSvc := new(mockPaymentSubmitter)
		mockSvc.On("Submit", mock.Anything, mock.Anything, mock.Anything).Return(nil, svcErr)

		resp := newTestAPI(t, caller, NewSubmitPaymentHandler(mockSvc).Register).Post("/payments", SubmitPaymentBody{
			RecipientEmail: "ghost@example.com",
			SwiftCode:      "ABSAZAJJ",
			Amount:         "10",
			Currency:       "ZAR",
		})

		assert.Equal(t, want, resp.Code, svcErr.Error())
	}
}

func TestHTTP_SubmitPayment_Unauthenticated(t *testing.T) {
	mockSvc := new(mockPaymentSubmitter)

	resp := newTestAPI(t, nil, NewSubmitPaymentHandler(mockSvc).Register).Post("/payments", SubmitPaymentBody{
		RecipientEmail: "bob@example.com",
		SwiftCode:      "ABSAZAJJ",
		Amount:         "10",
		Currency:       "ZAR",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestHTTP_Balance(t *testing.T) {
	mockSvc := new(mockLedgerReader)
	mockSvc.On("Balance", mock.Anything, caller).Return(&service.Statement{
		Balance:      decimal.RequireFromString("-1912"),
		Transactions: []service.Transaction{sampleTransaction()},
	}, nil)

	resp := newTestAPI(t, caller, NewLedgerHandler(mockSvc).Register).Get("/users/me/balance")

	require.Equal(t, http.StatusOK, resp.Code)
	var body BalanceBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "-1912.00", body.Balance)
	assert.Len(t, body.Transactions, 1)
}

func TestHTTP_History_Empty(t *testing.T) {
	mockSvc := new(mockLedgerReader)
	mockSvc.On("History", mock.Anything, caller).Return(nil, nil)

	resp := newTestAPI(t, caller, NewLedgerHandler(mockSvc).Register).Get("/payments/history")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"transactions":[]}`, trimSchema(t, resp.Body.Bytes()))
}

func TestHTTP_Summary(t *testing.T) {
	mockSvc := new(mockLedgerReader)
	mockSvc.On("Summary", mock.Anything, caller).Return(ledger.Summary{
		MoneyIn:  decimal.RequireFromString("15.25"),
		MoneyOut: decimal.RequireFromString("3"),
	}, nil)

	resp := newTestAPI(t, caller, NewLedgerHandler(mockSvc).Register).Get("/users/me/summary")

	require.Equal(t, http.StatusOK, resp.Code)
	var body SummaryBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, SummaryBody{MoneyIn: "15.25", MoneyOut: "3.00"}, body)
}

func TestHTTP_Balance_ServiceError(t *testing.T) {
	mockSvc := new(mockLedgerReader)
	mockSvc.On("Balance", mock.Anything, caller).Return(nil, errors.New("connection refused"))

	resp := newTestAPI(t, caller, NewLedgerHandler(mockSvc).Register).Get("/users/me/balance")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NotContains(t, resp.Body.String(), "connection refused")
}

// trimSchema drops the $schema link huma adds to response bodies.
func trimSchema(t *testing.T, raw []byte) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	delete(body, "$schema")
	out, err := json.Marshal(body)
	require.NoError(t, err)
	return string(out)
}
