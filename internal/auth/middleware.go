package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/payments-portal/internal/apperr"
	"github.com/carson-networks/payments-portal/internal/logging"
)

// SecurityScheme is the name operations list in Security to require a token.
const SecurityScheme = "bearer"

// Authenticator turns a raw bearer token into a Principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Principal, error)
}

// AuthenticatorFunc adapts a plain function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, token string) (*Principal, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, token string) (*Principal, error) {
	return f(ctx, token)
}

// Middleware rejects requests to secured operations that do not carry a valid
// bearer token and stores the Principal on the context for the rest.
func Middleware(api huma.API, authenticator Authenticator) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresAuth(ctx.Operation()) {
			next(ctx)
			return
		}

		header := ctx.Header("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing bearer token")
			return
		}

		principal, err := authenticator.Authenticate(ctx.Context(), strings.TrimSpace(token))
		if err != nil {
			if logData := logging.GetLogData(ctx.Context()); logData != nil {
				logData.AddData("authError", err.Error())
			} else {
				logrus.WithError(err).Debug("auth.Middleware.rejected")
			}
			if !errors.Is(err, apperr.ErrUnauthorized) {
				_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "authentication unavailable")
				return
			}
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		if logData := logging.GetLogData(ctx.Context()); logData != nil {
			logData.AddData("userID", principal.UserID.String())
			logData.AddData("role", string(principal.Role))
		}
		next(huma.WithContext(ctx, WithPrincipal(ctx.Context(), principal)))
	}
}

func requiresAuth(op *huma.Operation) bool {
	if op == nil {
		return false
	}
	for _, requirement := range op.Security {
		if _, ok := requirement[SecurityScheme]; ok {
			return true
		}
	}
	return false
}
