package transaction

import (
	"time"

	"github.com/carson-networks/payments-portal/internal/service"
)

// Transaction is the API response model for a payment.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID               string `json:"id" doc:"Transaction UUID"`
	SenderID         string `json:"senderId" doc:"Sender user UUID"`
	RecipientID      string `json:"recipientId" doc:"Recipient user UUID"`
	SenderName       string `json:"senderName,omitempty" doc:"Sender display name"`
	RecipientName    string `json:"recipientName,omitempty" doc:"Recipient display name"`
	Amount           string `json:"amount" doc:"Amount in the settlement currency, two decimal places"`
	OriginalAmount   string `json:"originalAmount" doc:"Amount as entered by the sender"`
	OriginalCurrency string `json:"originalCurrency" doc:"Currency the sender entered"`
	SwiftCode        string `json:"swiftCode" doc:"Recipient bank SWIFT code"`
	Status           string `json:"status" enum:"pending,approved,rejected" doc:"Lifecycle status"`
	TransactionType  string `json:"transactionType,omitempty" doc:"incoming or outgoing relative to the caller"`
	CreatedAt        string `json:"createdAt" doc:"RFC3339 creation time"`
	ResolvedAt       string `json:"resolvedAt,omitempty" doc:"RFC3339 time of the admin decision"`
	ResolvedBy       string `json:"resolvedBy,omitempty" doc:"UUID of the deciding admin"`
}

// FromService converts a service transaction into its response model.
func FromService(tx service.Transaction) Transaction {
	out := Transaction{
		ID:               tx.ID.String(),
		SenderID:         tx.SenderID.String(),
		RecipientID:      tx.RecipientID.String(),
		SenderName:       tx.SenderName,
		RecipientName:    tx.RecipientName,
		Amount:           tx.Amount.StringFixed(2),
		OriginalAmount:   tx.OriginalAmount.String(),
		OriginalCurrency: tx.OriginalCurrency,
		SwiftCode:        tx.SwiftCode,
		Status:           string(tx.Status),
		TransactionType:  string(tx.TransactionType),
		CreatedAt:        tx.CreatedAt.Format(time.RFC3339Nano),
	}
	if tx.ResolvedAt != nil {
		out.ResolvedAt = tx.ResolvedAt.Format(time.RFC3339Nano)
	}
	if tx.ResolvedBy != nil {
		out.ResolvedBy = tx.ResolvedBy.String()
	}
	return out
}

// FromServiceList converts a slice, never returning nil.
func FromServiceList(txs []service.Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	for i, tx := range txs {
		out[i] = FromService(tx)
	}
	return out
}

// TransactionsBody is the response body for endpoints that return a list.
type TransactionsBody struct {
	Transactions []Transaction `json:"transactions" doc:"Transactions"`
}
