package admin

import (
	"context"
	"encoding/json"
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
	"github.com/carson-networks/payments-portal/internal/handlers/v1/account"
	"github.com/carson-networks/payments-portal/internal/handlers/v1/transaction"
	"github.com/carson-networks/payments-portal/internal/ledger"
	"github.com/carson-networks/payments-portal/internal/service"
)

type mockApprovalService struct {
	mock.Mock
}

func (m *mockApprovalService) ListPending(ctx context.Context, principal *auth.Principal) ([]service.Transaction, error) {
	args := m.Called(ctx, principal)
	txs, _ := args.Get(0).([]service.Transaction)
	return txs, args.Error(1)
}

func (m *mockApprovalService) Approve(ctx context.Context, principal *auth.Principal, id uuid.UUID) (*service.Transaction, error) {
	args := m.Called(ctx, principal, id)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

func (m *mockApprovalService) Reject(ctx context.Context, principal *auth.Principal, id uuid.UUID) (*service.Transaction, error) {
	args := m.Called(ctx, principal, id)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

type mockAdminCreator struct {
	mock.Mock
}

func (m *mockAdminCreator) AddAdmin(ctx context.Context, principal *auth.Principal, reg service.Registration) (*service.User, error) {
	args := m.Called(ctx, principal, reg)
	user, _ := args.Get(0).(*service.User)
	return user, args.Error(1)
}

var (
	adminCaller = &auth.Principal{UserID: uuid.Must(uuid.NewV4()), Role: auth.RoleAdmin}
	userCaller  = &auth.Principal{UserID: uuid.Must(uuid.NewV4()), Role: auth.RoleUser}
)

func newTestAPI(t *testing.T, principal *auth.Principal, register func(huma.API)) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, auth.WithPrincipal(ctx.Context(), principal)))
	})
	register(api)
	return api
}

func pendingTransaction() service.Transaction {
	return service.Transaction{
		ID:               uuid.Must(uuid.NewV4()),
		SenderID:         uuid.Must(uuid.NewV4()),
		RecipientID:      uuid.Must(uuid.NewV4()),
		SenderName:       "Alice Tester",
		RecipientName:    "Bob Tester",
		Amount:           decimal.RequireFromString("1912.00"),
		OriginalAmount:   decimal.RequireFromString("100"),
		OriginalCurrency: "USD",
		SwiftCode:        "ABSAZAJJ",
		Status:           ledger.StatusPending,
		CreatedAt:        time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC),
	}
}

// -- pending tests --

func TestHTTP_ListPending(t *testing.T) {
	svc := new(mockApprovalService)
	svc.On("ListPending", mock.Anything, adminCaller).Return([]service.Transaction{pendingTransaction(), pendingTransaction()}, nil)

	resp := newTestAPI(t, adminCaller, NewApprovalHandler(svc).Register).Get("/admin/payments/pending")

	require.Equal(t, http.StatusOK, resp.Code)
	var body transaction.TransactionsBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Transactions, 2)
	assert.Equal(t, "Alice Tester", body.Transactions[0].SenderName)
	assert.Equal(t, "", body.Transactions[0].TransactionType)
}

func TestHTTP_ListPending_Forbidden(t *testing.T) {
	svc := new(mockApprovalService)
	svc.On("ListPending", mock.Anything, userCaller).Return(nil, fmt.Errorf("list pending: %w", apperr.ErrForbidden))

	resp := newTestAPI(t, userCaller, NewApprovalHandler(svc).Register).Get("/admin/payments/pending")

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

// -- decision tests --

func TestHTTP_Approve(t *testing.T) {
	tx := pendingTransaction()
	tx.Status = ledger.StatusApproved
	resolvedAt := tx.CreatedAt.Add(time.Hour)
	tx.ResolvedAt = &resolvedAt
	tx.ResolvedBy = &adminCaller.UserID

	svc := new(mockApprovalService)
	svc.On("Approve", mock.Anything, adminCaller, tx.ID).Return(&tx, nil)

	resp := newTestAPI(t, adminCaller, NewApprovalHandler(svc).Register).Post("/admin/payments/" + tx.ID.String() + "/approve")

	require.Equal(t, http.StatusOK, resp.Code)
	var body transaction.Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "approved", body.Status)
	assert.Equal(t, "2025-07-01T13:00:00Z", body.ResolvedAt)
	assert.Equal(t, adminCaller.UserID.String(), body.ResolvedBy)
	svc.AssertNotCalled(t, "Reject")
}

func TestHTTP_Reject_Conflict(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockApprovalService)
	svc.On("Reject", mock.Anything, adminCaller, id).
		Return(nil, fmt.Errorf("payment %s is approved: %w", id, apperr.ErrConflict))

	resp := newTestAPI(t, adminCaller, NewApprovalHandler(svc).Register).Post("/admin/payments/" + id.String() + "/reject")

	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Contains(t, resp.Body.String(), "is approved")
}

func TestHTTP_Approve_NotFound(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockApprovalService)
	svc.On("Approve", mock.Anything, adminCaller, id).Return(nil, apperr.ErrNotFound)

	resp := newTestAPI(t, adminCaller, NewApprovalHandler(svc).Register).Post("/admin/payments/" + id.String() + "/approve")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_Approve_BadID(t *testing.T) {
	svc := new(mockApprovalService)

	resp := newTestAPI(t, adminCaller, NewApprovalHandler(svc).Register).Post("/admin/payments/not-a-uuid/approve")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "Approve")
}

// -- add admin tests --

func TestHTTP_AddAdmin(t *testing.T) {
	body := account.RegistrationBody{
		Name:     "Second",
		Surname:  "Admin",
		IDNumber: "42",
		Email:    "second@example.com",
		Password: "supersecret",
	}
	created := service.User{ID: uuid.Must(uuid.NewV4()), Email: body.Email, Role: auth.RoleAdmin}

	svc := new(mockAdminCreator)
	svc.On("AddAdmin", mock.Anything, adminCaller, body.ToService()).Return(&created, nil)

	resp := newTestAPI(t, adminCaller, NewAddAdminHandler(svc).Register).Post("/admin/add-admin", body)

	require.Equal(t, http.StatusCreated, resp.Code)
	var out account.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "admin", out.Role)
}

func TestHTTP_AddAdmin_Forbidden(t *testing.T) {
	svc := new(mockAdminCreator)
	svc.On("AddAdmin", mock.Anything, userCaller, mock.Anything).Return(nil, apperr.ErrForbidden)

	resp := newTestAPI(t, userCaller, NewAddAdminHandler(svc).Register).Post("/admin/add-admin", account.RegistrationBody{
		Name:     "Sneaky",
		Surname:  "User",
		IDNumber: "1",
		Email:    "sneaky@example.com",
		Password: "supersecret",
	})

	assert.Equal(t, http.StatusForbidden, resp.Code)
}
