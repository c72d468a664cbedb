// Package currency converts entered amounts into the settlement currency.
package currency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/payments-portal/internal/apperr"
)

// Code is an ISO 4217 currency code.
type Code string

const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	ZAR Code = "ZAR"

	// Settlement is the currency every balance and stored amount is in.
	Settlement = ZAR
)

// rates are units of the settlement currency per one unit of the key.
var rates = map[Code]decimal.Decimal{
	USD: decimal.RequireFromString("19.12"),
	EUR: decimal.RequireFromString("21.22"),
	GBP: decimal.RequireFromString("23.11"),
	ZAR: decimal.NewFromInt(1),
}

// ParseCode normalises and validates a currency code.
func ParseCode(raw string) (Code, error) {
	code := Code(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := rates[code]; !ok {
		return "", fmt.Errorf("%q: %w", raw, apperr.ErrUnsupportedCurrency)
	}
	return code, nil
}

// Rate returns the fixed rate for code.
func Rate(code Code) (decimal.Decimal, error) {
	rate, ok := rates[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("%q: %w", code, apperr.ErrUnsupportedCurrency)
	}
	return rate, nil
}

// Supported lists the accepted codes in alphabetical order.
func Supported() []Code {
	codes := make([]Code, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// ParseAmount parses a user-entered amount. Only positive finite decimals pass.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q: %w", raw, apperr.ErrInvalidAmount)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s must be positive: %w", amount, apperr.ErrInvalidAmount)
	}
	return amount, nil
}

// Convert returns amount expressed in the settlement currency, rounded half
// away from zero to two places.
func Convert(code Code, amount decimal.Decimal) (decimal.Decimal, error) {
	rate, err := Rate(code)
	if err != nil {
		return decimal.Zero, err
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s must be positive: %w", amount, apperr.ErrInvalidAmount)
	}
	return amount.Mul(rate).Round(2), nil
}
