package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/payments-portal/internal/ledger"
	"github.com/carson-networks/payments-portal/internal/storage/sqlconfig"
)

// Transaction is a payment as returned by the API. TransactionType is set
// only when the payment is viewed by one of its parties.
type Transaction struct {
	ID               uuid.UUID
	SenderID         uuid.UUID
	RecipientID      uuid.UUID
	SenderName       string
	RecipientName    string
	Amount           decimal.Decimal
	OriginalAmount   decimal.Decimal
	OriginalCurrency string
	SwiftCode        string
	Status           ledger.Status
	TransactionType  ledger.Direction
	CreatedAt        time.Time
	ResolvedAt       *time.Time
	ResolvedBy       *uuid.UUID
}

// PaymentRequest is a submission from the sender. Amount is already in the
// settlement currency; OriginalAmount, when set, is what the sender typed
// in Currency and is used to double check Amount.
type PaymentRequest struct {
	RecipientEmail string
	SwiftCode      string
	Amount         decimal.Decimal
	Currency       string
	OriginalAmount *decimal.Decimal
}

// Statement is a user's balance together with the history it was folded from.
type Statement struct {
	Balance      decimal.Decimal
	Transactions []Transaction
}

func transactionFromStorage(row *sqlconfig.Payment) Transaction {
	record := recordFromStorage(row)
	return Transaction{
		ID:               record.ID,
		SenderID:         record.SenderID,
		RecipientID:      record.RecipientID,
		Amount:           record.Amount,
		OriginalAmount:   record.OriginalAmount,
		OriginalCurrency: record.OriginalCurrency,
		SwiftCode:        record.SwiftCode,
		Status:           record.Status,
		CreatedAt:        record.CreatedAt,
		ResolvedAt:       record.ResolvedAt,
		ResolvedBy:       record.ResolvedBy,
	}
}

func recordFromStorage(row *sqlconfig.Payment) ledger.Record {
	record := ledger.Record{
		ID:               row.ID,
		SenderID:         row.SenderID,
		RecipientID:      row.RecipientID,
		Amount:           row.Amount,
		OriginalAmount:   row.OriginalAmount,
		OriginalCurrency: row.OriginalCurrency,
		SwiftCode:        row.SwiftCode,
		Status:           ledger.Status(row.Status),
		CreatedAt:        row.CreatedAt,
	}
	if row.ResolvedAt.Valid {
		resolvedAt := row.ResolvedAt.Time
		record.ResolvedAt = &resolvedAt
	}
	if row.ResolvedBy.Valid {
		resolvedBy := row.ResolvedBy.UUID
		record.ResolvedBy = &resolvedBy
	}
	return record
}
