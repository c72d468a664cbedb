// Package apiutil holds helpers shared by the v1 huma handlers.
package apiutil

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/payments-portal/internal/apperr"
	"github.com/carson-networks/payments-portal/internal/auth"
	"github.com/carson-networks/payments-portal/internal/logging"
)

// Secured marks an operation as requiring a bearer token.
var Secured = []map[string][]string{{auth.SecurityScheme: {}}}

// Error converts a service error into a huma error with the mapped status.
// Client errors carry the error text, server errors only the fallback.
func Error(ctx context.Context, err error, fallback string) error {
	status := apperr.Status(err)
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("error", err.Error())
	}
	if status >= http.StatusInternalServerError {
		return huma.NewError(status, fallback)
	}
	return huma.NewError(status, err.Error())
}

// Principal returns the authenticated caller or a 401.
func Principal(ctx context.Context) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFrom(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}
	return principal, nil
}

// Time runs fn and records its duration under name on the request log line.
func Time(ctx context.Context, name string, fn func()) {
	logData := logging.GetLogData(ctx)
	if logData == nil {
		fn()
		return
	}
	stop := logData.AddTiming(name)
	fn()
	stop()
}
