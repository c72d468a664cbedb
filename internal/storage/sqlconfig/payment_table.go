package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/payments-portal/internal/apperr"
)

const paymentsTableName = "payments"

var paymentColumns = []any{
	"id", "sender_id", "recipient_id", "amount", "original_amount", "original_currency",
	"swift_code", "status", "created_at", "resolved_at", "resolved_by",
}

var _ IPaymentTable = (*PaymentsTable)(nil)

type PaymentsTable struct {
	exec bob.Executor
}

func NewPaymentsTable(exec bob.Executor) *PaymentsTable {
	return &PaymentsTable{exec: exec}
}

// FindByID retrieves a payment by primary key.
func (t *PaymentsTable) FindByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	query := psql.Select(
		sm.Columns(paymentColumns...),
		sm.From(paymentsTableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[Payment]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Insert creates a new pending payment and returns the stored row.
func (t *PaymentsTable) Insert(ctx context.Context, create *PaymentCreate) (*Payment, error) {
	query := psql.Insert(
		im.Into(paymentsTableName, "sender_id", "recipient_id", "amount", "original_amount", "original_currency", "swift_code", "status"),
		im.Values(
			psql.Arg(create.SenderID),
			psql.Arg(create.RecipientID),
			psql.Arg(create.Amount),
			psql.Arg(create.OriginalAmount),
			psql.Arg(create.OriginalCurrency),
			psql.Arg(create.SwiftCode),
			psql.Arg(string(PaymentStatusPending)),
		),
		im.Returning(paymentColumns...),
	)

	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[Payment]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns payments matching the filter. Nil filter returns all.
func (t *PaymentsTable) List(ctx context.Context, filter *PaymentFilter) ([]*Payment, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(paymentColumns...),
		sm.From(paymentsTableName),
	}

	oldestFirst := false
	if filter != nil {
		if filter.Status != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("status").EQ(psql.Arg(string(*filter.Status)))))
		}
		if filter.ParticipantID != nil {
			queryMods = append(queryMods, sm.Where(psql.Or(
				psql.Quote("sender_id").EQ(psql.Arg(*filter.ParticipantID)),
				psql.Quote("recipient_id").EQ(psql.Arg(*filter.ParticipantID)),
			)))
		}
		oldestFirst = filter.OldestFirst
	}

	if oldestFirst {
		queryMods = append(queryMods,
			sm.OrderBy(psql.Quote("created_at")).Asc(),
			sm.OrderBy(psql.Quote("id")).Asc(),
		)
	} else {
		queryMods = append(queryMods,
			sm.OrderBy(psql.Quote("created_at")).Desc(),
			sm.OrderBy(psql.Quote("id")).Desc(),
		)
	}

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[Payment]())
	if err != nil {
		return nil, err
	}
	result := make([]*Payment, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// Resolve is a compare-and-swap on status: the update only matches while the
// row is still pending, so of two concurrent decisions exactly one applies.
func (t *PaymentsTable) Resolve(ctx context.Context, id uuid.UUID, status PaymentStatus, resolvedBy uuid.UUID) (*Payment, error) {
	query := psql.Update(
		um.Table(paymentsTableName),
		um.SetCol("status").ToArg(string(status)),
		um.SetCol("resolved_by").ToArg(resolvedBy),
		um.SetCol("resolved_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("status").EQ(psql.Arg(string(PaymentStatusPending)))),
		um.Returning(paymentColumns...),
	)

	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[Payment]())
	if errors.Is(err, sql.ErrNoRows) {
		existing, findErr := t.FindByID(ctx, id)
		if findErr != nil {
			return nil, findErr
		}
		return nil, fmt.Errorf("payment %s is %s: %w", id, existing.Status, apperr.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
