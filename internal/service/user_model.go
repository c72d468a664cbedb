package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/payments-portal/internal/auth"
	"github.com/carson-networks/payments-portal/internal/storage/sqlconfig"
)

// User is a portal user without credentials.
type User struct {
	ID        uuid.UUID
	Name      string
	Surname   string
	IDNumber  string
	Email     string
	Role      auth.Role
	CreatedAt time.Time
}

// Registration is the input for Register and AddAdmin.
type Registration struct {
	Name     string
	Surname  string
	IDNumber string
	Email    string
	Password string
}

// LoginResult carries the issued bearer token and the user it belongs to.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      User
}

func userFromStorage(row *sqlconfig.User) User {
	return User{
		ID:        row.ID,
		Name:      row.Name,
		Surname:   row.Surname,
		IDNumber:  row.IDNumber,
		Email:     row.Email,
		Role:      auth.Role(row.Role),
		CreatedAt: row.CreatedAt,
	}
}
