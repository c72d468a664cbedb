package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/payments-portal/internal/storage/sqlconfig"
)

type txFinisher interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer groups the tables bound to one transaction.
type Writer struct {
	tx       txFinisher
	Users    sqlconfig.IUserTable
	Payments sqlconfig.IPaymentTable
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:       tx,
		Users:    sqlconfig.NewUsersTable(tx),
		Payments: sqlconfig.NewPaymentsTable(tx),
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
