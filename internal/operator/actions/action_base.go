package actions

import (
	"context"

	"github.com/carson-networks/payments-portal/internal/storage"
)

// IAction is one unit of work run inside a single storage transaction.
// Results are left on the action itself once Perform returns nil.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
