package sqlconfig

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// Payment represents a payments row. Amount is in the settlement currency.
type Payment struct {
	ID               uuid.UUID       `db:"id"`
	SenderID         uuid.UUID       `db:"sender_id"`
	RecipientID      uuid.UUID       `db:"recipient_id"`
	Amount           decimal.Decimal `db:"amount"`
	OriginalAmount   decimal.Decimal `db:"original_amount"`
	OriginalCurrency string          `db:"original_currency"`
	SwiftCode        string          `db:"swift_code"`
	Status           PaymentStatus   `db:"status"`
	CreatedAt        time.Time       `db:"created_at"`
	ResolvedAt       sql.NullTime    `db:"resolved_at"`
	ResolvedBy       uuid.NullUUID   `db:"resolved_by"`
}

// PaymentCreate is the input for creating a new payment. Rows are always
// created pending.
type PaymentCreate struct {
	SenderID         uuid.UUID
	RecipientID      uuid.UUID
	Amount           decimal.Decimal
	OriginalAmount   decimal.Decimal
	OriginalCurrency string
	SwiftCode        string
}

// PaymentFilter specifies filters for listing payments.
// Results are newest first unless OldestFirst is set.
type PaymentFilter struct {
	Status        *PaymentStatus
	ParticipantID *uuid.UUID
	OldestFirst   bool
}

// IPaymentTable defines the interface for payment storage operations.
//
//go:generate mockery --name IPaymentTable --output mock_IPaymentTable.go
type IPaymentTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	Insert(ctx context.Context, create *PaymentCreate) (*Payment, error)
	List(ctx context.Context, filter *PaymentFilter) ([]*Payment, error)
	// Resolve moves a pending payment to status. It fails with
	// apperr.ErrConflict when the row is no longer pending and with
	// apperr.ErrNotFound when it does not exist.
	Resolve(ctx context.Context, id uuid.UUID, status PaymentStatus, resolvedBy uuid.UUID) (*Payment, error)
}
