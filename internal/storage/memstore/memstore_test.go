package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/payments-portal/internal/apperr"
	"github.com/carson-networks/payments-portal/internal/storage/sqlconfig"
)

func insertPayment(t *testing.T, store *Store, sender, recipient uuid.UUID) *sqlconfig.Payment {
	t.Helper()
	payment, err := store.Payments().Insert(context.Background(), &sqlconfig.PaymentCreate{
		SenderID:         sender,
		RecipientID:      recipient,
		Amount:           decimal.RequireFromString("1912.00"),
		OriginalAmount:   decimal.RequireFromString("100"),
		OriginalCurrency: "USD",
		SwiftCode:        "ABSAZAJJ",
	})
	require.NoError(t, err)
	return payment
}

func TestUsers_InsertAndFind(t *testing.T) {
	store := New()
	ctx := context.Background()

	user, err := store.Users().Insert(ctx, &sqlconfig.UserCreate{
		Name:  "Ada",
		Email: " Ada@Example.com ",
		Role:  sqlconfig.UserRoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	found, err := store.Users().FindByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = store.Users().Insert(ctx, &sqlconfig.UserCreate{Email: "ada@example.com"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = store.Users().FindByID(ctx, uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPayments_ResolveOnce(t *testing.T) {
	store := New()
	ctx := context.Background()
	payment := insertPayment(t, store, uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))
	admin := uuid.Must(uuid.NewV4())

	resolved, err := store.Payments().Resolve(ctx, payment.ID, sqlconfig.PaymentStatusApproved, admin)
	require.NoError(t, err)
	assert.Equal(t, sqlconfig.PaymentStatusApproved, resolved.Status)
	assert.True(t, resolved.ResolvedAt.Valid)
	assert.Equal(t, admin, resolved.ResolvedBy.UUID)

	_, err = store.Payments().Resolve(ctx, payment.ID, sqlconfig.PaymentStatusRejected, admin)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = store.Payments().Resolve(ctx, uuid.Must(uuid.NewV4()), sqlconfig.PaymentStatusRejected, admin)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPayments_ConcurrentResolveExactlyOneWins(t *testing.T) {
	store := New()
	payment := insertPayment(t, store, uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))

	const attempts = 32
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		status := sqlconfig.PaymentStatusApproved
		if i%2 == 0 {
			status = sqlconfig.PaymentStatusRejected
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Payments().Resolve(context.Background(), payment.ID, status, uuid.Must(uuid.NewV4()))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	wins, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, apperr.ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)
}

func TestPayments_ListFilterAndOrder(t *testing.T) {
	store := New()
	ctx := context.Background()
	base := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})

	alice, bob, carol := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())
	first := insertPayment(t, store, alice, bob)
	second := insertPayment(t, store, bob, carol)
	third := insertPayment(t, store, carol, alice)

	_, err := store.Payments().Resolve(ctx, second.ID, sqlconfig.PaymentStatusApproved, alice)
	require.NoError(t, err)

	pending := sqlconfig.PaymentStatusPending
	rows, err := store.Payments().List(ctx, &sqlconfig.PaymentFilter{Status: &pending, OldestFirst: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, first.ID, rows[0].ID)
	assert.Equal(t, third.ID, rows[1].ID)

	rows, err = store.Payments().List(ctx, &sqlconfig.PaymentFilter{ParticipantID: &alice})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, third.ID, rows[0].ID, "newest first")
	assert.Equal(t, first.ID, rows[1].ID)
}

func TestStore_WithError(t *testing.T) {
	store := New().WithError(errors.New("disk on fire"))

	_, err := store.Payments().List(context.Background(), nil)
	assert.EqualError(t, err, "disk on fire")
}
