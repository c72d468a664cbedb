package service

import (
	"context"
	"fmt"

	"github.com/carson-networks/payments-portal/internal/apperr"
	"github.com/carson-networks/payments-portal/internal/auth"
	"github.com/carson-networks/payments-portal/internal/ledger"
	"github.com/carson-networks/payments-portal/internal/storage"
	"github.com/carson-networks/payments-portal/internal/storage/sqlconfig"
)

// LedgerService serves a user's view of the payments they are party to.
type LedgerService struct {
	storage *storage.Storage
}

func NewLedgerService(store *storage.Storage) *LedgerService {
	return &LedgerService{storage: store}
}

// Balance returns the principal's balance and full history, newest first.
func (s *LedgerService) Balance(ctx context.Context, principal *auth.Principal) (*Statement, error) {
	entries, err := s.entries(ctx, principal)
	if err != nil {
		return nil, err
	}
	return &Statement{
		Balance:      ledger.Balance(entries),
		Transactions: s.toTransactions(ctx, ledger.History(entries)),
	}, nil
}

// History returns the principal's payments, newest first.
func (s *LedgerService) History(ctx context.Context, principal *auth.Principal) ([]Transaction, error) {
	entries, err := s.entries(ctx, principal)
	if err != nil {
		return nil, err
	}
	return s.toTransactions(ctx, ledger.History(entries)), nil
}

// Summary partitions the principal's payments into money in and money out.
func (s *LedgerService) Summary(ctx context.Context, principal *auth.Principal) (ledger.Summary, error) {
	entries, err := s.entries(ctx, principal)
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.Summarize(entries), nil
}

func (s *LedgerService) entries(ctx context.Context, principal *auth.Principal) ([]ledger.Entry, error) {
	if principal == nil {
		return nil, fmt.Errorf("ledger: %w", apperr.ErrUnauthorized)
	}

	rows, err := s.storage.Payments.List(ctx, &sqlconfig.PaymentFilter{ParticipantID: &principal.UserID})
	if err != nil {
		return nil, err
	}

	records := make([]ledger.Record, len(rows))
	for i, row := range rows {
		records[i] = recordFromStorage(row)
	}
	return ledger.ForViewer(principal.UserID, records), nil
}

func (s *LedgerService) toTransactions(ctx context.Context, entries []ledger.Entry) []Transaction {
	names := newNameCache(s.storage.Users)
	txs := make([]Transaction, len(entries))
	for i, e := range entries {
		txs[i] = Transaction{
			ID:               e.ID,
			SenderID:         e.SenderID,
			RecipientID:      e.RecipientID,
			SenderName:       names.lookup(ctx, e.SenderID),
			RecipientName:    names.lookup(ctx, e.RecipientID),
			Amount:           e.Amount,
			OriginalAmount:   e.OriginalAmount,
			OriginalCurrency: e.OriginalCurrency,
			SwiftCode:        e.SwiftCode,
			Status:           e.Status,
			TransactionType:  e.Type,
			CreatedAt:        e.CreatedAt,
			ResolvedAt:       e.ResolvedAt,
			ResolvedBy:       e.ResolvedBy,
		}
	}
	return txs
}
