package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/sync/singleflight"

	"github.com/carson-networks/payments-portal/internal/apperr"
)

const pendingKey = "pending"

// ApprovalQueue is the admin's cached view of pending payments. The local
// in-flight guard only stops double clicks; the server decides who wins.
type ApprovalQueue struct {
	api   *API
	group singleflight.Group

	mu       sync.Mutex
	pending  []Transaction
	inFlight map[uuid.UUID]struct{}
	// fetches counts started fetches; stored is the fetch whose result is
	// cached. An older fetch never replaces a newer one.
	fetches uint64
	stored  uint64
}

func NewApprovalQueue(api *API) *ApprovalQueue {
	return &ApprovalQueue{
		api:      api,
		inFlight: make(map[uuid.UUID]struct{}),
	}
}

// Refresh refetches the pending list. Concurrent callers share one request,
// which is not tied to any single caller's cancellation.
func (q *ApprovalQueue) Refresh(ctx context.Context) ([]Transaction, error) {
	ch := q.group.DoChan(pendingKey, func() (any, error) {
		return q.fetch(ctx)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return copyTransactions(res.Val.([]Transaction)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *ApprovalQueue) fetch(ctx context.Context) ([]Transaction, error) {
	q.mu.Lock()
	q.fetches++
	generation := q.fetches
	q.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.fetchTimeout())
	defer cancel()

	pending, err := q.api.Pending(ctx)
	if err != nil {
		return nil, err
	}

	q.mu.Lock()
	if generation > q.stored {
		q.pending = pending
		q.stored = generation
	}
	q.mu.Unlock()
	return pending, nil
}

func (q *ApprovalQueue) fetchTimeout() time.Duration {
	if q.api.httpClient != nil && q.api.httpClient.Timeout > 0 {
		return q.api.httpClient.Timeout
	}
	return DefaultTimeout
}

// Pending returns the last fetched list, oldest first.
func (q *ApprovalQueue) Pending() []Transaction {
	q.mu.Lock()
	defer q.mu.Unlock()
	return copyTransactions(q.pending)
}

func (q *ApprovalQueue) Approve(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return q.decide(ctx, id, q.api.Approve)
}

func (q *ApprovalQueue) Reject(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return q.decide(ctx, id, q.api.Reject)
}

// InFlight reports whether a decision on id is running.
func (q *ApprovalQueue) InFlight(id uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.inFlight[id]
	return ok
}

func (q *ApprovalQueue) decide(
	ctx context.Context,
	id uuid.UUID,
	call func(context.Context, uuid.UUID) (*Transaction, error),
) (*Transaction, error) {
	q.mu.Lock()
	if _, busy := q.inFlight[id]; busy {
		q.mu.Unlock()
		return nil, fmt.Errorf("payment %s: %w", id, apperr.ErrInFlight)
	}
	q.inFlight[id] = struct{}{}
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		delete(q.inFlight, id)
		q.mu.Unlock()
	}()

	tx, err := call(ctx, id)
	if err == nil || errors.Is(err, apperr.ErrConflict) {
		// A refresh already in flight may have read the list before the
		// decision landed, so start a new one instead of joining it.
		q.group.Forget(pendingKey)
		if _, refreshErr := q.Refresh(ctx); refreshErr != nil {
			q.api.logger.WithError(refreshErr).Warn("ApprovalQueue.decide.refresh")
		}
	}
	return tx, err
}

func copyTransactions(txs []Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)
	return out
}
