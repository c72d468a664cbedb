package client

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/payments-portal/internal/auth"
	"github.com/carson-networks/payments-portal/internal/ledger"
)

// User mirrors the server's user response.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	IDNumber  string    `json:"idNumber"`
	Email     string    `json:"email"`
	Role      auth.Role `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Transaction mirrors the server's transaction response. TransactionType is
// relative to the caller and empty on admin listings.
type Transaction struct {
	ID               uuid.UUID        `json:"id"`
	SenderID         uuid.UUID        `json:"senderId"`
	RecipientID      uuid.UUID        `json:"recipientId"`
	SenderName       string           `json:"senderName,omitempty"`
	RecipientName    string           `json:"recipientName,omitempty"`
	Amount           decimal.Decimal  `json:"amount"`
	OriginalAmount   decimal.Decimal  `json:"originalAmount"`
	OriginalCurrency string           `json:"originalCurrency"`
	SwiftCode        string           `json:"swiftCode"`
	Status           ledger.Status    `json:"status"`
	TransactionType  ledger.Direction `json:"transactionType,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	ResolvedAt       *time.Time       `json:"resolvedAt,omitempty"`
	ResolvedBy       *uuid.UUID       `json:"resolvedBy,omitempty"`
}

func (t Transaction) entry() ledger.Entry {
	return ledger.Entry{
		Record: ledger.Record{
			ID:               t.ID,
			SenderID:         t.SenderID,
			RecipientID:      t.RecipientID,
			Amount:           t.Amount,
			OriginalAmount:   t.OriginalAmount,
			OriginalCurrency: t.OriginalCurrency,
			SwiftCode:        t.SwiftCode,
			Status:           t.Status,
			CreatedAt:        t.CreatedAt,
			ResolvedAt:       t.ResolvedAt,
			ResolvedBy:       t.ResolvedBy,
		},
		Type: t.TransactionType,
	}
}

// Registration is the body for register and add-admin.
type Registration struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	IDNumber string `json:"idNumber"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

type paymentRequest struct {
	RecipientEmail string `json:"recipientEmail"`
	SwiftCode      string `json:"swiftCode"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	OriginalAmount string `json:"originalAmount,omitempty"`
}

// Statement is the caller's balance with every transaction they are party to.
type Statement struct {
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
}

type transactionsBody struct {
	Transactions []Transaction `json:"transactions"`
}

// Summary is the money in vs money out aggregate.
type Summary struct {
	MoneyIn  decimal.Decimal `json:"moneyIn"`
	MoneyOut decimal.Decimal `json:"moneyOut"`
	NoData   bool            `json:"noData"`
}

// errorBody is the subset of the RFC 9457 problem document the server sends.
type errorBody struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}
