package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/payments-portal/internal/apperr"
)

const usersTableName = "users"

var userColumns = []any{"id", "name", "surname", "id_number", "email", "role", "password_hash", "created_at"}

// uniqueViolation is the postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// UsersTable provides access to the users table.
type UsersTable struct {
	exec bob.Executor
}

// Ensure UsersTable implements IUserTable at compile time.
var _ IUserTable = (*UsersTable)(nil)

// NewUsersTable creates a UsersTable over a database or transaction.
func NewUsersTable(exec bob.Executor) *UsersTable {
	return &UsersTable{exec: exec}
}

// FindByID retrieves a user by primary key.
func (t *UsersTable) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return t.findOne(ctx, psql.Quote("id").EQ(psql.Arg(id)))
}

// FindByEmail retrieves a user by email, ignoring case.
func (t *UsersTable) FindByEmail(ctx context.Context, email string) (*User, error) {
	return t.findOne(ctx, psql.Quote("email").EQ(psql.Arg(NormalizeEmail(email))))
}

// Insert creates a new user and returns the stored row.
func (t *UsersTable) Insert(ctx context.Context, create *UserCreate) (*User, error) {
	query := psql.Insert(
		im.Into(usersTableName, "name", "surname", "id_number", "email", "role", "password_hash"),
		im.Values(
			psql.Arg(create.Name),
			psql.Arg(create.Surname),
			psql.Arg(create.IDNumber),
			psql.Arg(NormalizeEmail(create.Email)),
			psql.Arg(string(create.Role)),
			psql.Arg(create.PasswordHash),
		),
		im.Returning(userColumns...),
	)

	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[User]())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("email %s already registered: %w", create.Email, apperr.ErrConflict)
		}
		return nil, err
	}
	return &row, nil
}

func (t *UsersTable) findOne(ctx context.Context, where bob.Expression) (*User, error) {
	query := psql.Select(
		sm.Columns(userColumns...),
		sm.From(usersTableName),
		sm.Where(where),
	)

	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[User]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
