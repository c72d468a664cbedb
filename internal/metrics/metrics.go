package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carson-networks/payments-portal/internal/apperr"
)

// Metrics owns its registry. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	actionsTotal        *prometheus.CounterVec
	actionDuration      *prometheus.HistogramVec
	paymentEventsTotal  *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2, 5},
			},
			[]string{"route"},
		),
		actionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_operator_actions_total",
				Help: "Total number of storage actions run by the operator pool",
			},
			[]string{"action", "outcome"},
		),
		actionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_operator_action_duration_seconds",
				Help:    "Duration of storage actions including commit",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"action"},
		),
		paymentEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_payment_events_total",
				Help: "Payment lifecycle events: submitted, approved, rejected, conflict",
			},
			[]string{"event"},
		),
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.httpRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveAction(action string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.actionsTotal.WithLabelValues(action, Outcome(err)).Inc()
	m.actionDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

func (m *Metrics) PaymentEvent(event string) {
	if m == nil {
		return
	}
	m.paymentEventsTotal.WithLabelValues(event).Inc()
}

// Outcome buckets an error into a low cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperr.ErrConflict):
		return "conflict"
	case apperr.Status(err) < http.StatusInternalServerError:
		return "rejected"
	default:
		return "error"
	}
}
