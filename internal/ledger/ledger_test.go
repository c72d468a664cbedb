package ledger

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = uuid.Must(uuid.NewV4())
	bob   = uuid.Must(uuid.NewV4())
	carol = uuid.Must(uuid.NewV4())
)

func record(sender, recipient uuid.UUID, amount string, status Status, createdAt time.Time) Record {
	return Record{
		ID:               uuid.Must(uuid.NewV4()),
		SenderID:         sender,
		RecipientID:      recipient,
		Amount:           decimal.RequireFromString(amount),
		OriginalAmount:   decimal.RequireFromString(amount),
		OriginalCurrency: "ZAR",
		SwiftCode:        "ABSAZAJJ",
		Status:           status,
		CreatedAt:        createdAt,
	}
}

// -- ForViewer tests --

func TestForViewer_AssignsDirection(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	records := []Record{
		record(alice, bob, "10.00", StatusApproved, now),
		record(bob, alice, "4.00", StatusApproved, now),
		record(bob, carol, "99.00", StatusApproved, now),
	}

	entries := ForViewer(alice, records)

	require.Len(t, entries, 2)
	assert.Equal(t, Outgoing, entries[0].Type)
	assert.Equal(t, Incoming, entries[1].Type)
}

// -- Balance tests --

func TestBalance_OnlyApprovedCounts(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	records := []Record{
		record(bob, alice, "100.00", StatusApproved, now),
		record(bob, alice, "50.00", StatusPending, now),
		record(bob, alice, "25.00", StatusRejected, now),
		record(alice, carol, "30.50", StatusApproved, now),
		record(alice, carol, "1000.00", StatusPending, now),
		record(alice, carol, "7.00", StatusRejected, now),
	}

	balance := Balance(ForViewer(alice, records))

	assert.Equal(t, "69.50", balance.StringFixed(2))
}

func TestBalance_EqualsIncomingMinusOutgoing(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	var records []Record
	in, out := decimal.Zero, decimal.Zero
	statuses := []Status{StatusApproved, StatusPending, StatusRejected}
	for i := 1; i <= 30; i++ {
		status := statuses[i%3]
		amount := decimal.NewFromInt(int64(i)).Div(decimal.NewFromInt(4)).Round(2)
		if i%2 == 0 {
			records = append(records, record(bob, alice, amount.String(), status, now))
			if status == StatusApproved {
				in = in.Add(amount)
			}
		} else {
			records = append(records, record(alice, bob, amount.String(), status, now))
			if status == StatusApproved {
				out = out.Add(amount)
			}
		}
	}

	assert.True(t, Balance(ForViewer(alice, records)).Equal(in.Sub(out)))
	assert.True(t, Balance(ForViewer(bob, records)).Equal(out.Sub(in)))
}

func TestBalance_Empty(t *testing.T) {
	assert.True(t, Balance(nil).IsZero())
}

// -- Summarize tests --

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)
	assert.True(t, summary.NoData)
	assert.True(t, summary.MoneyIn.IsZero())
	assert.True(t, summary.MoneyOut.IsZero())
}

func TestSummarize_Partitions(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	entries := ForViewer(alice, []Record{
		record(bob, alice, "10.00", StatusApproved, now),
		record(carol, alice, "5.25", StatusPending, now),
		record(alice, bob, "3.00", StatusRejected, now),
	})

	summary := Summarize(entries)

	assert.False(t, summary.NoData)
	assert.Equal(t, "15.25", summary.MoneyIn.StringFixed(2))
	assert.Equal(t, "3.00", summary.MoneyOut.StringFixed(2))
}

// -- History tests --

func TestHistory_NewestFirst(t *testing.T) {
	base := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	entries := ForViewer(alice, []Record{
		record(bob, alice, "1.00", StatusApproved, base),
		record(bob, alice, "2.00", StatusApproved, base.Add(2*time.Hour)),
		record(bob, alice, "3.00", StatusApproved, base.Add(time.Hour)),
	})

	history := History(entries)

	require.Len(t, history, 3)
	assert.Equal(t, "2.00", history[0].Amount.StringFixed(2))
	assert.Equal(t, "3.00", history[1].Amount.StringFixed(2))
	assert.Equal(t, "1.00", history[2].Amount.StringFixed(2))
	assert.Equal(t, "1.00", entries[0].Amount.StringFixed(2), "input not reordered")
}

func TestHistory_StableForEqualTimestamps(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	entries := ForViewer(alice, []Record{
		record(bob, alice, "1.00", StatusApproved, now),
		record(bob, alice, "2.00", StatusApproved, now),
		record(bob, alice, "3.00", StatusApproved, now),
	})

	first := History(entries)
	second := History([]Entry{entries[2], entries[0], entries[1]})

	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
}
