package operator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/payments-portal/internal/metrics"
	"github.com/carson-networks/payments-portal/internal/operator/actions"
	"github.com/carson-networks/payments-portal/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage *storage.Storage
	queue   chan ActionItem
	metrics *metrics.Metrics
	log     *logrus.Logger
}

func NewOperator(s *storage.Storage, queue chan ActionItem, m *metrics.Metrics, log *logrus.Logger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		metrics: m,
		log:     log,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	start := time.Now()
	name := actionName(item.action)

	err := o.perform(item)
	o.metrics.ObserveAction(name, err, time.Since(start))
	if err != nil && metrics.Outcome(err) == "error" {
		o.log.WithError(err).WithField("action", name).Error("Operator.Perform")
	}

	item.response <- ActionItemResponse{err: err}
}

func (o *Operator) perform(item ActionItem) error {
	// The caller may have given up while the item sat in the queue.
	if err := item.ctx.Err(); err != nil {
		return err
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return err
	}

	if err = item.action.Perform(item.ctx, writer); err != nil {
		if rbErr := writer.Rollback(item.ctx); rbErr != nil {
			o.log.WithError(rbErr).Warn("Operator.Rollback")
		}
		return err
	}

	return writer.Commit(item.ctx)
}

func actionName(action actions.IAction) string {
	name := fmt.Sprintf("%T", action)
	return name[strings.LastIndex(name, ".")+1:]
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
