// Package ledger derives balances, statements and in/out summaries from
// payment records. Everything here is a pure function of its input.
package ledger

import (
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
)

// Record is the viewer-independent shape of a stored payment.
type Record struct {
	ID               uuid.UUID
	SenderID         uuid.UUID
	RecipientID      uuid.UUID
	Amount           decimal.Decimal
	OriginalAmount   decimal.Decimal
	OriginalCurrency string
	SwiftCode        string
	Status           Status
	CreatedAt        time.Time
	ResolvedAt       *time.Time
	ResolvedBy       *uuid.UUID
}

// Entry is a payment as seen by one user.
type Entry struct {
	Record
	Type Direction
}

// Summary is the money in vs money out aggregate. NoData is set when the
// input was empty, in which case both sums are zero.
type Summary struct {
	MoneyIn  decimal.Decimal
	MoneyOut decimal.Decimal
	NoData   bool
}

// ForViewer converts records into entries typed relative to viewerID.
// Records the viewer is not party to are dropped.
func ForViewer(viewerID uuid.UUID, records []Record) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		switch viewerID {
		case r.RecipientID:
			entries = append(entries, Entry{Record: r, Type: Incoming})
		case r.SenderID:
			entries = append(entries, Entry{Record: r, Type: Outgoing})
		}
	}
	return entries
}

// Balance folds approved entries: incoming adds, outgoing subtracts.
func Balance(entries []Entry) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		if e.Status != StatusApproved {
			continue
		}
		switch e.Type {
		case Incoming:
			balance = balance.Add(e.Amount)
		case Outgoing:
			balance = balance.Sub(e.Amount)
		}
	}
	return balance
}

// Summarize partitions entries by direction and sums each side.
func Summarize(entries []Entry) Summary {
	if len(entries) == 0 {
		return Summary{MoneyIn: decimal.Zero, MoneyOut: decimal.Zero, NoData: true}
	}
	summary := Summary{MoneyIn: decimal.Zero, MoneyOut: decimal.Zero}
	for _, e := range entries {
		switch e.Type {
		case Incoming:
			summary.MoneyIn = summary.MoneyIn.Add(e.Amount)
		case Outgoing:
			summary.MoneyOut = summary.MoneyOut.Add(e.Amount)
		}
	}
	return summary
}

// History returns a copy of entries newest first. Equal timestamps are
// ordered by id, descending, so the result is stable across calls.
func History(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out
}
