package memstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/payments-portal/internal/apperr"
	"github.com/carson-networks/payments-portal/internal/storage/sqlconfig"
)

var ErrTxDone = errors.New("memstore: transaction already finished")

// stagedWrite re-validates against the committed tables and applies itself.
// It returns an undo that restores the previous state.
type stagedWrite func(s *Store) (undo func(), err error)

// Tx buffers writes until Commit. Reads see committed rows only.
type Tx struct {
	store *Store

	mu     sync.Mutex
	writes []stagedWrite
	done   bool
}

func (s *Store) Begin() *Tx {
	return &Tx{store: s}
}

func (tx *Tx) Users() *TxUsers       { return &TxUsers{tx: tx} }
func (tx *Tx) Payments() *TxPayments { return &TxPayments{tx: tx} }

func (tx *Tx) stage(write stagedWrite) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.done {
		return ErrTxDone
	}
	tx.writes = append(tx.writes, write)
	return nil
}

func (tx *Tx) finish() ([]stagedWrite, error) {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.done {
		return nil, ErrTxDone
	}
	tx.done = true
	writes := tx.writes
	tx.writes = nil
	return writes, nil
}

// Commit applies every staged write or none of them. A cancelled ctx
// discards the staged writes.
func (tx *Tx) Commit(ctx context.Context) error {
	writes, err := tx.finish()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}

	undos := make([]func(), 0, len(writes))
	for _, write := range writes {
		undo, err := write(s)
		if err != nil {
			for i := len(undos) - 1; i >= 0; i-- {
				undos[i]()
			}
			return err
		}
		undos = append(undos, undo)
	}
	return nil
}

func (tx *Tx) Rollback(context.Context) error {
	_, err := tx.finish()
	return err
}

type TxUsers struct {
	tx *Tx
}

var _ sqlconfig.IUserTable = (*TxUsers)(nil)

func (u *TxUsers) FindByID(ctx context.Context, id uuid.UUID) (*sqlconfig.User, error) {
	return u.tx.store.Users().FindByID(ctx, id)
}

func (u *TxUsers) FindByEmail(ctx context.Context, email string) (*sqlconfig.User, error) {
	return u.tx.store.Users().FindByEmail(ctx, email)
}

func (u *TxUsers) Insert(_ context.Context, create *sqlconfig.UserCreate) (*sqlconfig.User, error) {
	s := u.tx.store
	s.mu.Lock()
	if s.err != nil {
		s.mu.Unlock()
		return nil, s.err
	}
	email := sqlconfig.NormalizeEmail(create.Email)
	if err := s.emailTaken(email, create.Email); err != nil {
		s.mu.Unlock()
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
	s.mu.Unlock()

	err := u.tx.stage(func(s *Store) (func(), error) {
		if err := s.emailTaken(user.Email, create.Email); err != nil {
			return nil, err
		}
		s.users[user.ID] = user
		return func() { delete(s.users, user.ID) }, nil
	})
	if err != nil {
		return nil, err
	}
	created := user
	return &created, nil
}

type TxPayments struct {
	tx *Tx
}

var _ sqlconfig.IPaymentTable = (*TxPayments)(nil)

func (p *TxPayments) FindByID(ctx context.Context, id uuid.UUID) (*sqlconfig.Payment, error) {
	return p.tx.store.Payments().FindByID(ctx, id)
}

func (p *TxPayments) List(ctx context.Context, filter *sqlconfig.PaymentFilter) ([]*sqlconfig.Payment, error) {
	return p.tx.store.Payments().List(ctx, filter)
}

func (p *TxPayments) Insert(_ context.Context, create *sqlconfig.PaymentCreate) (*sqlconfig.Payment, error) {
	s := p.tx.store
	s.mu.Lock()
	if s.err != nil {
		s.mu.Unlock()
		return nil, s.err
	}
	payment := newPayment(create, s.now())
	s.mu.Unlock()

	err := p.tx.stage(func(s *Store) (func(), error) {
		s.payments[payment.ID] = payment
		return func() { delete(s.payments, payment.ID) }, nil
	})
	if err != nil {
		return nil, err
	}
	created := payment
	return &created, nil
}

func (p *TxPayments) Resolve(_ context.Context, id uuid.UUID, status sqlconfig.PaymentStatus, resolvedBy uuid.UUID) (*sqlconfig.Payment, error) {
	s := p.tx.store
	s.mu.Lock()
	if s.err != nil {
		s.mu.Unlock()
		return nil, s.err
	}
	payment, err := s.pendingPayment(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	payment.Status = status
	payment.ResolvedAt = sql.NullTime{Time: s.now(), Valid: true}
	payment.ResolvedBy = uuid.NullUUID{UUID: resolvedBy, Valid: true}
	s.mu.Unlock()

	err = p.tx.stage(func(s *Store) (func(), error) {
		previous, err := s.pendingPayment(id)
		if err != nil {
			return nil, err
		}
		s.payments[id] = payment
		return func() { s.payments[id] = previous }, nil
	})
	if err != nil {
		return nil, err
	}
	resolved := payment
	return &resolved, nil
}

// Both helpers expect s.mu to be held.

func (s *Store) emailTaken(normalized, raw string) error {
	for _, existing := range s.users {
		if existing.Email == normalized {
			return fmt.Errorf("email %s already registered: %w", raw, apperr.ErrConflict)
		}
	}
	return nil
}

func (s *Store) pendingPayment(id uuid.UUID) (sqlconfig.Payment, error) {
	payment, ok := s.payments[id]
	if !ok {
		return sqlconfig.Payment{}, fmt.Errorf("payment %s: %w", id, apperr.ErrNotFound)
	}
	if payment.Status != sqlconfig.PaymentStatusPending {
		return sqlconfig.Payment{}, fmt.Errorf("payment %s is %s: %w", id, payment.Status, apperr.ErrConflict)
	}
	return payment, nil
}
