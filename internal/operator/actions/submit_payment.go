package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/carson-networks/payments-portal/internal/apperr"
	"github.com/carson-networks/payments-portal/internal/storage"
	"github.com/carson-networks/payments-portal/internal/storage/sqlconfig"
)

// SubmitPayment resolves the recipient by email and inserts a pending payment.
type SubmitPayment struct {
	Create         sqlconfig.PaymentCreate
	RecipientEmail string

	Recipient *sqlconfig.User
	Created   *sqlconfig.Payment
	IAction
}

func (s *SubmitPayment) Perform(ctx context.Context, writer *storage.Writer) error {
	recipient, err := writer.Users.FindByEmail(ctx, s.RecipientEmail)
	if errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("recipient not found: %w", apperr.ErrValidation)
	}
	if err != nil {
		return fmt.Errorf("recipient %s: %w", s.RecipientEmail, err)
	}
	if recipient.ID == s.Create.SenderID {
		return fmt.Errorf("cannot pay yourself: %w", apperr.ErrValidation)
	}

	s.Create.RecipientID = recipient.ID
	payment, err := writer.Payments.Insert(ctx, &s.Create)
	if err != nil {
		return err
	}

	s.Recipient = recipient
	s.Created = payment
	return nil
}
