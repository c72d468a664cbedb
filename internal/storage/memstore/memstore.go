// Package memstore is an in-memory implementation of the storage tables used
// by the memory storage driver and by tests that need real persistence
// semantics without a running postgres.
package memstore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/payments-portal/internal/apperr"
	"github.com/carson-networks/payments-portal/internal/storage/sqlconfig"
)

// Store holds every table behind one lock, so each call is atomic.
type Store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]sqlconfig.User
	payments map[uuid.UUID]sqlconfig.Payment
	now      func() time.Time
	err      error
}

func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]sqlconfig.User),
		payments: make(map[uuid.UUID]sqlconfig.Payment),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithError makes every subsequent call fail with err. Pass nil to clear.
func (s *Store) WithError(err error) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	return s
}

// WithClock overrides the timestamp source.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

func (s *Store) Users() *Users       { return &Users{store: s} }
func (s *Store) Payments() *Payments { return &Payments{store: s} }

type Users struct {
	store *Store
}

var _ sqlconfig.IUserTable = (*Users)(nil)

func (u *Users) FindByID(_ context.Context, id uuid.UUID) (*sqlconfig.User, error) {
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", apperr.ErrNotFound)
	}
	return &user, nil
}

func (u *Users) FindByEmail(_ context.Context, email string) (*sqlconfig.User, error) {
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	normalized := sqlconfig.NormalizeEmail(email)
	for _, user := range s.users {
		if user.Email == normalized {
			found := user
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user: %w", apperr.ErrNotFound)
}

func (u *Users) Insert(_ context.Context, create *sqlconfig.UserCreate) (*sqlconfig.User, error) {
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	email := sqlconfig.NormalizeEmail(create.Email)
	if err := s.emailTaken(email, create.Email); err != nil {
		return nil, err
	}

	user := sqlconfig.User{
		ID:           uuid.Must(uuid.NewV4()),
		Name:         create.Name,
		Surname:      create.Surname,
		IDNumber:     create.IDNumber,
		Email:        email,
		Role:         create.Role,
		PasswordHash: create.PasswordHash,
		CreatedAt:    s.now(),
	}
	s.users[user.ID] = user
	return &user, nil
}

type Payments struct {
	store *Store
}

var _ sqlconfig.IPaymentTable = (*Payments)(nil)

func (p *Payments) FindByID(_ context.Context, id uuid.UUID) (*sqlconfig.Payment, error) {
	s := p.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	payment, ok := s.payments[id]
	if !ok {
		return nil, fmt.Errorf("payment %s: %w", id, apperr.ErrNotFound)
	}
	return &payment, nil
}

func (p *Payments) Insert(_ context.Context, create *sqlconfig.PaymentCreate) (*sqlconfig.Payment, error) {
	s := p.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	payment := newPayment(create, s.now())
	s.payments[payment.ID] = payment
	return &payment, nil
}

func newPayment(create *sqlconfig.PaymentCreate, now time.Time) sqlconfig.Payment {
	return sqlconfig.Payment{
		ID:               uuid.Must(uuid.NewV4()),
		SenderID:         create.SenderID,
		RecipientID:      create.RecipientID,
		Amount:           create.Amount,
		OriginalAmount:   create.OriginalAmount,
		OriginalCurrency: create.OriginalCurrency,
		SwiftCode:        create.SwiftCode,
		Status:           sqlconfig.PaymentStatusPending,
		CreatedAt:        now,
	}
}

func (p *Payments) List(_ context.Context, filter *sqlconfig.PaymentFilter) ([]*sqlconfig.Payment, error) {
	s := p.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	var result []*sqlconfig.Payment
	for _, payment := range s.payments {
		if filter != nil {
			if filter.Status != nil && payment.Status != *filter.Status {
				continue
			}
			if filter.ParticipantID != nil &&
				payment.SenderID != *filter.ParticipantID &&
				payment.RecipientID != *filter.ParticipantID {
				continue
			}
		}
		row := payment
		result = append(result, &row)
	}

	oldestFirst := filter != nil && filter.OldestFirst
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if oldestFirst {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if oldestFirst {
			return a.ID.String() < b.ID.String()
		}
		return a.ID.String() > b.ID.String()
	})
	return result, nil
}

func (p *Payments) Resolve(_ context.Context, id uuid.UUID, status sqlconfig.PaymentStatus, resolvedBy uuid.UUID) (*sqlconfig.Payment, error) {
	s := p.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	payment, err := s.pendingPayment(id)
	if err != nil {
		return nil, err
	}

	payment.Status = status
	payment.ResolvedAt = sql.NullTime{Time: s.now(), Valid: true}
	payment.ResolvedBy = uuid.NullUUID{UUID: resolvedBy, Valid: true}
	s.payments[id] = payment
	return &payment, nil
}
