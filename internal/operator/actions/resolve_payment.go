package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/payments-portal/internal/apperr"
	"github.com/carson-networks/payments-portal/internal/storage"
	"github.com/carson-networks/payments-portal/internal/storage/sqlconfig"
)

// ResolvePayment moves a pending payment to approved or rejected.
// The transition happens at most once per payment.
type ResolvePayment struct {
	PaymentID uuid.UUID
	Status    sqlconfig.PaymentStatus
	AdminID   uuid.UUID

	Resolved *sqlconfig.Payment
	IAction
}

func (r *ResolvePayment) Perform(ctx context.Context, writer *storage.Writer) error {
	switch r.Status {
	case sqlconfig.PaymentStatusApproved, sqlconfig.PaymentStatusRejected:
	default:
		return fmt.Errorf("cannot resolve payment to %q: %w", r.Status, apperr.ErrValidation)
	}

	payment, err := writer.Payments.Resolve(ctx, r.PaymentID, r.Status, r.AdminID)
	if err != nil {
		return err
	}

	r.Resolved = payment
	return nil
}
