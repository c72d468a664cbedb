package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/payments-portal/internal/apperr"
	"github.com/carson-networks/payments-portal/internal/auth"
	"github.com/carson-networks/payments-portal/internal/currency"
	"github.com/carson-networks/payments-portal/internal/ledger"
	"github.com/carson-networks/payments-portal/internal/logging"
	"github.com/carson-networks/payments-portal/internal/metrics"
	"github.com/carson-networks/payments-portal/internal/operator/actions"
	"github.com/carson-networks/payments-portal/internal/storage"
	"github.com/carson-networks/payments-portal/internal/storage/sqlconfig"
)

// PaymentService handles the payment lifecycle: submission and the admin
// decision that moves a payment out of pending.
type PaymentService struct {
	storage  *storage.Storage
	operator Processor
	metrics  *metrics.Metrics
}

func NewPaymentService(store *storage.Storage, ops Processor, m *metrics.Metrics) *PaymentService {
	return &PaymentService{
		storage:  store,
		operator: ops,
		metrics:  m,
	}
}

// Submit creates a pending payment from the principal to the recipient.
func (s *PaymentService) Submit(ctx context.Context, principal *auth.Principal, req PaymentRequest) (*Transaction, error) {
	if principal == nil {
		return nil, fmt.Errorf("submit payment: %w", apperr.ErrUnauthorized)
	}

	create, err := validatePaymentRequest(req)
	if err != nil {
		return nil, err
	}
	create.SenderID = principal.UserID

	action := &actions.SubmitPayment{
		Create:         *create,
		RecipientEmail: sqlconfig.NormalizeEmail(req.RecipientEmail),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	s.metrics.PaymentEvent("submitted")

	tx := transactionFromStorage(action.Created)
	tx.TransactionType = ledger.Outgoing
	tx.RecipientName = fullName(action.Recipient)
	if sender, err := s.storage.Users.FindByID(ctx, principal.UserID); err == nil {
		tx.SenderName = fullName(sender)
	}
	return &tx, nil
}

// ListPending returns every pending payment, oldest first.
func (s *PaymentService) ListPending(ctx context.Context, principal *auth.Principal) ([]Transaction, error) {
	if !principal.IsAdmin() {
		return nil, fmt.Errorf("list pending: %w", apperr.ErrForbidden)
	}

	pending := sqlconfig.PaymentStatusPending
	rows, err := s.storage.Payments.List(ctx, &sqlconfig.PaymentFilter{
		Status:      &pending,
		OldestFirst: true,
	})
	if err != nil {
		return nil, err
	}

	names := newNameCache(s.storage.Users)
	txs := make([]Transaction, len(rows))
	for i, row := range rows {
		txs[i] = transactionFromStorage(row)
		txs[i].SenderName = names.lookup(ctx, row.SenderID)
		txs[i].RecipientName = names.lookup(ctx, row.RecipientID)
	}
	return txs, nil
}

func (s *PaymentService) Approve(ctx context.Context, principal *auth.Principal, id uuid.UUID) (*Transaction, error) {
	return s.resolve(ctx, principal, id, sqlconfig.PaymentStatusApproved)
}

func (s *PaymentService) Reject(ctx context.Context, principal *auth.Principal, id uuid.UUID) (*Transaction, error) {
	return s.resolve(ctx, principal, id, sqlconfig.PaymentStatusRejected)
}

func (s *PaymentService) resolve(ctx context.Context, principal *auth.Principal, id uuid.UUID, status sqlconfig.PaymentStatus) (*Transaction, error) {
	if !principal.IsAdmin() {
		return nil, fmt.Errorf("resolve payment: %w", apperr.ErrForbidden)
	}

	action := &actions.ResolvePayment{
		PaymentID: id,
		Status:    status,
		AdminID:   principal.UserID,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		if metrics.Outcome(err) == "conflict" {
			s.metrics.PaymentEvent("conflict")
		}
		return nil, err
	}
	s.metrics.PaymentEvent(string(status))

	tx := transactionFromStorage(action.Resolved)
	names := newNameCache(s.storage.Users)
	tx.SenderName = names.lookup(ctx, tx.SenderID)
	tx.RecipientName = names.lookup(ctx, tx.RecipientID)
	return &tx, nil
}

// validatePaymentRequest checks a submission and recomputes the conversion
// when the sender's original amount is known.
func validatePaymentRequest(req PaymentRequest) (*sqlconfig.PaymentCreate, error) {
	if strings.TrimSpace(req.RecipientEmail) == "" {
		return nil, fmt.Errorf("recipientEmail is required: %w", apperr.ErrValidation)
	}
	swift := strings.ToUpper(strings.TrimSpace(req.SwiftCode))
	if swift == "" {
		return nil, fmt.Errorf("swiftCode is required: %w", apperr.ErrValidation)
	}

	code, err := currency.ParseCode(req.Currency)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive: %w", apperr.ErrInvalidAmount)
	}
	if !req.Amount.Equal(req.Amount.Round(2)) {
		return nil, fmt.Errorf("amount has more than 2 decimal places: %w", apperr.ErrInvalidAmount)
	}

	var original decimal.Decimal
	if req.OriginalAmount != nil {
		original = *req.OriginalAmount
		converted, err := currency.Convert(code, original)
		if err != nil {
			return nil, err
		}
		if !converted.Equal(req.Amount) {
			return nil, fmt.Errorf("amount %s does not match %s %s converted at %s: %w",
				req.Amount.StringFixed(2), original, code, converted.StringFixed(2), apperr.ErrValidation)
		}
	} else {
		rate, err := currency.Rate(code)
		if err != nil {
			return nil, err
		}
		original = req.Amount.Div(rate).Round(2)
	}

	return &sqlconfig.PaymentCreate{
		Amount:           req.Amount,
		OriginalAmount:   original,
		OriginalCurrency: string(code),
		SwiftCode:        swift,
	}, nil
}

func fullName(u *sqlconfig.User) string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.Name + " " + u.Surname)
}

// nameCache resolves user ids to display names, once per id.
type nameCache struct {
	users sqlconfig.IUserTable
	names map[uuid.UUID]string
}

func newNameCache(users sqlconfig.IUserTable) *nameCache {
	return &nameCache{users: users, names: make(map[uuid.UUID]string)}
}

func (c *nameCache) lookup(ctx context.Context, id uuid.UUID) string {
	if name, ok := c.names[id]; ok {
		return name
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddToExistingTiming("nameLookupMs")()
	}
	var name string
	if user, err := c.users.FindByID(ctx, id); err == nil {
		name = fullName(user)
	}
	c.names[id] = name
	return name
}
