package service

import (
	"context"

	"github.com/carson-networks/payments-portal/internal/auth"
	"github.com/carson-networks/payments-portal/internal/metrics"
	"github.com/carson-networks/payments-portal/internal/operator/actions"
	"github.com/carson-networks/payments-portal/internal/storage"
)

// Processor runs a storage action in its own transaction.
// *operator.OperatorDelegator satisfies it.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Auth    *AuthService
	Payment *PaymentService
	Ledger  *LedgerService
}

// NewService creates a new Service. Reads go to store directly, writes go
// through ops.
func NewService(store *storage.Storage, ops Processor, tokens *auth.Tokens, revoker auth.Revoker, m *metrics.Metrics) *Service {
	return &Service{
		Auth:    NewAuthService(store, ops, tokens, revoker),
		Payment: NewPaymentService(store, ops, m),
		Ledger:  NewLedgerService(store),
	}
}
