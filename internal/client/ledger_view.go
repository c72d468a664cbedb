package client

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/payments-portal/internal/ledger"
)

// LedgerView caches the caller's statement between refreshes.
type LedgerView struct {
	api *API

	mu           sync.RWMutex
	balance      decimal.Decimal
	transactions []Transaction
}

func NewLedgerView(api *API) *LedgerView {
	return &LedgerView{api: api, balance: decimal.Zero}
}

// Refresh replaces the cached statement. The server's order is kept as is.
// On error the cache is unchanged.
func (v *LedgerView) Refresh(ctx context.Context) error {
	statement, err := v.api.Balance(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.balance = statement.Balance
	v.transactions = copyTransactions(statement.Transactions)
	v.mu.Unlock()
	return nil
}

func (v *LedgerView) Balance() decimal.Decimal {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.balance
}

// History is newest first.
func (v *LedgerView) History() []Transaction {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return copyTransactions(v.transactions)
}

// Summary folds the cached history. NoData is set before the first
// successful refresh and when the caller has no transactions.
func (v *LedgerView) Summary() ledger.Summary {
	v.mu.RLock()
	defer v.mu.RUnlock()
	entries := make([]ledger.Entry, len(v.transactions))
	for i, tx := range v.transactions {
		entries[i] = tx.entry()
	}
	return ledger.Summarize(entries)
}
