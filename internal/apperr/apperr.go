// Package apperr holds the error taxonomy shared by the server and the client.
// Callers wrap these sentinels with fmt.Errorf("...: %w", ...) and test them
// with errors.Is.
package apperr

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrForbidden           = errors.New("forbidden")
	ErrConflict            = errors.New("conflict")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrNetwork             = errors.New("network failure")
	ErrTimeout             = errors.New("timeout")
	ErrServer              = errors.New("server error")

	// ErrInFlight is returned by the client when the same action on the same
	// target is already running.
	ErrInFlight = errors.New("operation already in flight")
)

// Status maps an error to the HTTP status the API answers with.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrUnsupportedCurrency),
		errors.Is(err, ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// FromStatus maps a non-2xx HTTP status back to a sentinel.
func FromStatus(code int) error {
	switch {
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		return ErrValidation
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusConflict:
		return ErrConflict
	case code == http.StatusGatewayTimeout, code == http.StatusRequestTimeout:
		return ErrTimeout
	default:
		return ErrServer
	}
}
