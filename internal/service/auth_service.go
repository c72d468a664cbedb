package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/payments-portal/internal/apperr"
	"github.com/carson-networks/payments-portal/internal/auth"
	"github.com/carson-networks/payments-portal/internal/operator/actions"
	"github.com/carson-networks/payments-portal/internal/storage"
	"github.com/carson-networks/payments-portal/internal/storage/sqlconfig"
)

var errInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperr.ErrUnauthorized)

// AuthService handles registration, login and token checks.
type AuthService struct {
	storage  *storage.Storage
	operator Processor
	tokens   *auth.Tokens
	revoker  auth.Revoker
}

func NewAuthService(store *storage.Storage, ops Processor, tokens *auth.Tokens, revoker auth.Revoker) *AuthService {
	return &AuthService{
		storage:  store,
		operator: ops,
		tokens:   tokens,
		revoker:  revoker,
	}
}

// Register creates a regular user.
func (s *AuthService) Register(ctx context.Context, reg Registration) (*User, error) {
	return s.createUser(ctx, reg, sqlconfig.UserRoleUser)
}

// AddAdmin creates an administrator. Only admins may call it.
func (s *AuthService) AddAdmin(ctx context.Context, principal *auth.Principal, reg Registration) (*User, error) {
	if !principal.IsAdmin() {
		return nil, fmt.Errorf("add admin: %w", apperr.ErrForbidden)
	}
	return s.createUser(ctx, reg, sqlconfig.UserRoleAdmin)
}

// EnsureAdmin creates the bootstrap admin unless the email is already taken.
// It reports whether a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	existing, err := s.storage.Users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != sqlconfig.UserRoleAdmin {
			logrus.WithField("email", existing.Email).Warn("AuthService.EnsureAdmin: bootstrap email belongs to a non-admin user")
		}
		return false, nil
	case !errors.Is(err, apperr.ErrNotFound):
		return false, err
	}

	_, err = s.createUser(ctx, Registration{
		Name:     "Portal",
		Surname:  "Administrator",
		IDNumber: "bootstrap",
		Email:    email,
		Password: password,
	}, sqlconfig.UserRoleAdmin)
	if errors.Is(err, apperr.ErrConflict) {
		// Another replica won the race.
		return false, nil
	}
	return err == nil, err
}

// Login checks credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	row, err := s.storage.Users.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := auth.CheckPassword(row.PasswordHash, password); err != nil {
		return nil, errInvalidCredentials
	}

	token, principal, err := s.tokens.Issue(row.ID, auth.Role(row.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: principal.ExpiresAt,
		User:      userFromStorage(row),
	}, nil
}

// Logout revokes the token the principal authenticated with.
func (s *AuthService) Logout(ctx context.Context, principal *auth.Principal) error {
	if principal == nil {
		return fmt.Errorf("logout: %w", apperr.ErrUnauthorized)
	}
	return s.revoker.Revoke(ctx, principal.TokenID, principal.ExpiresAt)
}

// Authenticate implements auth.Authenticator.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	principal, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revoker.IsRevoked(ctx, principal.TokenID)
	if err != nil {
		return nil, fmt.Errorf("revocation lookup: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("token revoked: %w", apperr.ErrUnauthorized)
	}
	return principal, nil
}

func (s *AuthService) createUser(ctx context.Context, reg Registration, role sqlconfig.UserRole) (*User, error) {
	reg = reg.normalized()
	if err := reg.validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateUser{Create: sqlconfig.UserCreate{
		Name:         reg.Name,
		Surname:      reg.Surname,
		IDNumber:     reg.IDNumber,
		Email:        reg.Email,
		Role:         role,
		PasswordHash: hash,
	}}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	user := userFromStorage(action.Created)
	return &user, nil
}

func (r Registration) normalized() Registration {
	r.Name = strings.TrimSpace(r.Name)
	r.Surname = strings.TrimSpace(r.Surname)
	r.IDNumber = strings.TrimSpace(r.IDNumber)
	r.Email = sqlconfig.NormalizeEmail(r.Email)
	return r
}

func (r Registration) validate() error {
	for _, field := range []struct{ name, value string }{
		{"name", r.Name},
		{"surname", r.Surname},
		{"idNumber", r.IDNumber},
		{"email", r.Email},
		{"password", r.Password},
	} {
		if field.value == "" {
			return fmt.Errorf("%s is required: %w", field.name, apperr.ErrValidation)
		}
	}

	addr, err := mail.ParseAddress(r.Email)
	if err != nil || addr.Address != r.Email {
		return fmt.Errorf("email %q is not a valid address: %w", r.Email, apperr.ErrValidation)
	}
	return nil
}
