package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/payments-portal/internal/apperr"
	"github.com/carson-networks/payments-portal/internal/currency"
)

// Draft is a validated payment that has not been confirmed yet. Amount is
// the settlement amount shown to the user before they confirm.
type Draft struct {
	RecipientEmail string
	SwiftCode      string
	Currency       currency.Code
	OriginalAmount decimal.Decimal
	Amount         decimal.Decimal
}

// ConfirmedDraft can only be made by Draft.Confirm.
type ConfirmedDraft struct {
	draft     Draft
	confirmed bool
}

// BuildDraft validates the entered fields and converts the amount. It does
// not touch the network.
func BuildDraft(recipientEmail, swiftCode, rawAmount, currencyCode string) (Draft, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"recipient email", recipientEmail},
		{"SWIFT code", swiftCode},
		{"amount", rawAmount},
		{"currency", currencyCode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return Draft{}, fmt.Errorf("%s is required: %w", f.name, apperr.ErrValidation)
		}
	}

	code, err := currency.ParseCode(currencyCode)
	if err != nil {
		return Draft{}, err
	}
	original, err := currency.ParseAmount(rawAmount)
	if err != nil {
		return Draft{}, err
	}
	converted, err := currency.Convert(code, original)
	if err != nil {
		return Draft{}, err
	}
	if !converted.IsPositive() {
		return Draft{}, fmt.Errorf("%s %s converts to zero: %w", original, code, apperr.ErrInvalidAmount)
	}

	return Draft{
		RecipientEmail: strings.TrimSpace(recipientEmail),
		SwiftCode:      strings.ToUpper(strings.TrimSpace(swiftCode)),
		Currency:       code,
		OriginalAmount: original,
		Amount:         converted,
	}, nil
}

func (d Draft) Confirm() ConfirmedDraft {
	return ConfirmedDraft{draft: d, confirmed: true}
}

func (c ConfirmedDraft) Draft() Draft {
	return c.draft
}

// PaymentBuilder submits confirmed drafts and then runs the refresh hook.
type PaymentBuilder struct {
	api       *API
	onSuccess func(ctx context.Context) error
}

// NewPaymentBuilder wires the builder to api. onSuccess may be nil.
func NewPaymentBuilder(api *API, onSuccess func(ctx context.Context) error) *PaymentBuilder {
	return &PaymentBuilder{api: api, onSuccess: onSuccess}
}

// Submit posts the draft. The hook only runs after the server accepted the
// payment; a hook failure is logged and does not fail the submit.
func (b *PaymentBuilder) Submit(ctx context.Context, confirmed ConfirmedDraft) (*Transaction, error) {
	if !confirmed.confirmed {
		return nil, fmt.Errorf("draft has not been confirmed: %w", apperr.ErrValidation)
	}
	if !b.api.Session().Authenticated() {
		return nil, fmt.Errorf("not logged in: %w", apperr.ErrUnauthorized)
	}

	d := confirmed.draft
	tx, err := b.api.submitPayment(ctx, paymentRequest{
		RecipientEmail: d.RecipientEmail,
		SwiftCode:      d.SwiftCode,
		Amount:         d.Amount.StringFixed(2),
		Currency:       string(d.Currency),
		OriginalAmount: d.OriginalAmount.String(),
	})
	if err != nil {
		return nil, err
	}

	if b.onSuccess != nil {
		if err := b.onSuccess(ctx); err != nil && !errors.Is(err, context.Canceled) {
			b.api.logger.WithError(err).Warn("PaymentBuilder.Submit.refresh")
		}
	}
	return tx, nil
}
