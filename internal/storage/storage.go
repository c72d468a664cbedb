package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/payments-portal/internal/config"
	"github.com/carson-networks/payments-portal/internal/storage/memstore"
	"github.com/carson-networks/payments-portal/internal/storage/sqlconfig"
)

// Storage exposes the tables for reads and Write for transactional changes.
type Storage struct {
	DB       *sql.DB
	Users    sqlconfig.IUserTable
	Payments sqlconfig.IPaymentTable

	begin func(ctx context.Context) (*Writer, error)
}

func NewStorage(env *config.Config) (*Storage, error) {
	switch env.StorageDriver {
	case config.StorageDriverMemory:
		return NewMemoryStorage(memstore.New()), nil
	case config.StorageDriverPostgres:
		db, err := sql.Open("postgres", env.PostgresURL())
		if err != nil {
			return nil, fmt.Errorf("storage.NewStorage: %w", err)
		}
		return NewPostgresStorage(db), nil
	default:
		return nil, fmt.Errorf("storage.NewStorage: unknown driver %q", env.StorageDriver)
	}
}

func NewPostgresStorage(db *sql.DB) *Storage {
	exec := bob.NewDB(db)
	return &Storage{
		DB:       db,
		Users:    sqlconfig.NewUsersTable(exec),
		Payments: sqlconfig.NewPaymentsTable(exec),
		begin: func(ctx context.Context) (*Writer, error) {
			tx, err := exec.BeginTx(ctx, nil)
			if err != nil {
				return nil, err
			}
			return NewWriter(tx), nil
		},
	}
}

// NewMemoryStorage backs every table with store. Writers buffer their
// changes until Commit.
func NewMemoryStorage(store *memstore.Store) *Storage {
	return &Storage{
		Users:    store.Users(),
		Payments: store.Payments(),
		begin: func(context.Context) (*Writer, error) {
			tx := store.Begin()
			return &Writer{tx: tx, Users: tx.Users(), Payments: tx.Payments()}, nil
		},
	}
}

// Write opens a transaction scoped writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	if s.begin == nil {
		return nil, fmt.Errorf("storage.Write: storage is read only")
	}
	return s.begin(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
