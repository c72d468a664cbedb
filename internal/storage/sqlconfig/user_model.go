package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User represents a users row.
type User struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Surname      string    `db:"surname"`
	IDNumber     string    `db:"id_number"`
	Email        string    `db:"email"`
	Role         UserRole  `db:"role"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// UserCreate is the input for creating a new user. Email is stored lower-cased.
type UserCreate struct {
	Name         string
	Surname      string
	IDNumber     string
	Email        string
	Role         UserRole
	PasswordHash string
}

// IUserTable defines the interface for user storage operations.
//
//go:generate mockery --name IUserTable --output mock_IUserTable.go
type IUserTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, create *UserCreate) (*User, error)
}
