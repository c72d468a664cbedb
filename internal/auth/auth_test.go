package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/payments-portal/internal/apperr"
)

// -- password tests --

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "correct horse"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong horse"), apperr.ErrUnauthorized)
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

// -- token tests --

func TestTokens_IssueAndVerify(t *testing.T) {
	tokens := NewTokens("secret", "portal", time.Hour)
	userID := uuid.Must(uuid.NewV4())

	signed, issued, err := tokens.Issue(userID, RoleAdmin)
	require.NoError(t, err)

	principal, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, RoleAdmin, principal.Role)
	assert.Equal(t, issued.TokenID, principal.TokenID)
	assert.True(t, principal.IsAdmin())
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens("secret", "portal", time.Minute)
	issuedAt := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issuedAt }

	signed, _, err := tokens.Issue(uuid.Must(uuid.NewV4()), RoleUser)
	require.NoError(t, err)

	tokens.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestTokens_WrongSecretOrIssuer(t *testing.T) {
	signed, _, err := NewTokens("secret", "portal", time.Hour).Issue(uuid.Must(uuid.NewV4()), RoleUser)
	require.NoError(t, err)

	_, err = NewTokens("other", "portal", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = NewTokens("secret", "elsewhere", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = NewTokens("secret", "portal", time.Hour).Verify("not.a.token")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

// -- revoker tests --

func TestMemoryRevoker(t *testing.T) {
	revoker := NewMemoryRevoker()
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	revoker.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, revoker.Revoke(ctx, "a", now.Add(time.Hour)))

	revoked, err := revoker.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = revoker.IsRevoked(ctx, "b")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoker.now = func() time.Time { return now.Add(2 * time.Hour) }
	revoked, err = revoker.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, revoked, "entries lapse with the token")
}

// -- middleware tests --

type whoAmIOutput struct {
	Body struct {
		UserID string `json:"userID"`
		Role   string `json:"role"`
	}
}

func newMiddlewareTestAPI(t *testing.T, tokens *Tokens) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(api, AuthenticatorFunc(func(_ context.Context, token string) (*Principal, error) {
		return tokens.Verify(token)
	})))

	huma.Register(api, huma.Operation{
		OperationID: "who-am-i",
		Method:      http.MethodGet,
		Path:        "/me",
		Security:    []map[string][]string{{SecurityScheme: {}}},
	}, func(ctx context.Context, _ *struct{}) (*whoAmIOutput, error) {
		principal, ok := PrincipalFrom(ctx)
		if !ok {
			return nil, huma.Error500InternalServerError("no principal")
		}
		out := &whoAmIOutput{}
		out.Body.UserID = principal.UserID.String()
		out.Body.Role = string(principal.Role)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "open",
		Method:      http.MethodGet,
		Path:        "/open",
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		return nil, nil
	})
	return api
}

func TestMiddleware_ValidToken(t *testing.T) {
	tokens := NewTokens("secret", "portal", time.Hour)
	userID := uuid.Must(uuid.NewV4())
	signed, _, err := tokens.Issue(userID, RoleUser)
	require.NoError(t, err)

	resp := newMiddlewareTestAPI(t, tokens).Get("/me", "Authorization: Bearer "+signed)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), userID.String())
}

func TestMiddleware_MissingOrBadToken(t *testing.T) {
	api := newMiddlewareTestAPI(t, NewTokens("secret", "portal", time.Hour))

	assert.Equal(t, http.StatusUnauthorized, api.Get("/me").Code)
	assert.Equal(t, http.StatusUnauthorized, api.Get("/me", "Authorization: Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, api.Get("/me", "Authorization: Bearer garbage").Code)
}

func TestMiddleware_OpenOperation(t *testing.T) {
	api := newMiddlewareTestAPI(t, NewTokens("secret", "portal", time.Hour))

	assert.Equal(t, http.StatusNoContent, api.Get("/open").Code)
}

func TestMiddleware_BackendFailure(t *testing.T) {
	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(api, AuthenticatorFunc(func(context.Context, string) (*Principal, error) {
		return nil, errors.New("redis: connection refused")
	})))
	huma.Register(api, huma.Operation{
		OperationID: "who-am-i",
		Method:      http.MethodGet,
		Path:        "/me",
		Security:    []map[string][]string{{SecurityScheme: {}}},
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		return nil, nil
	})

	assert.Equal(t, http.StatusInternalServerError, api.Get("/me", "Authorization: Bearer x").Code)
}
