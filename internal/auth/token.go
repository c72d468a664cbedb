package auth

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/carson-networks/payments-portal/internal/apperr"
)

type Claims struct {
	UserID string `json:"uid"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 access tokens.
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret, issuer string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *Tokens) Issue(userID uuid.UUID, role Role) (string, *Principal, error) {
	now := t.now()
	tokenID := uuid.Must(uuid.NewV4()).String()
	claims := Claims{
		UserID: userID.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    t.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return signed, &Principal{
		UserID:    userID,
		Role:      role,
		TokenID:   tokenID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Verify checks signature, issuer and expiry. Every failure is ErrUnauthorized.
func (t *Tokens) Verify(tokenStr string) (*Principal, error) {
	claims := new(Claims)
	parser := jwt.NewParser(
		jwt.WithIssuer(t.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", apperr.ErrUnauthorized)
	}

	userID, err := uuid.FromString(claims.UserID)
	if err != nil || !claims.Role.Valid() || claims.ID == "" {
		return nil, fmt.Errorf("malformed claims: %w", apperr.ErrUnauthorized)
	}

	return &Principal{
		UserID:    userID,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
