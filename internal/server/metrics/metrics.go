// Package metrics holds the Prometheus instruments of the account service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Adjustment outcomes.
const (
	AdjustApplied  = "applied"
	AdjustClamped  = "clamped"
	AdjustNoop     = "noop"
	AdjustRejected = "rejected"
)

// Metrics tracks logins, sessions, authentication failures, coin adjustments
// and per-operation latency. All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	UsersCreated      prometheus.Counter
	SessionsIssued    prometheus.Counter
	AuthFailures      prometheus.Counter
	CoinAdjustments   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

// New registers all instruments on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		UsersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "coinkeeper_users_created_total",
			Help: "Total number of users created at login",
		}),
		SessionsIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "coinkeeper_sessions_issued_total",
			Help: "Total number of session tokens issued",
		}),
		AuthFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "coinkeeper_auth_failures_total",
			Help: "Total number of rejected bearer credentials",
		}),
		CoinAdjustments: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coinkeeper_coin_adjustments_total",
			Help: "Coin balance adjustments by outcome",
		}, []string{"outcome"}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coinkeeper_operation_duration_seconds",
			Help:    "Duration of account operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) IncrementUsersCreated() {
	if m == nil {
		return
	}
	m.UsersCreated.Inc()
}

func (m *Metrics) IncrementSessionsIssued() {
	if m == nil {
		return
	}
	m.SessionsIssued.Inc()
}

func (m *Metrics) IncrementAuthFailures() {
	if m == nil {
		return
	}
	m.AuthFailures.Inc()
}

// IncrementAdjustment records an adjustment with one of the Adjust* outcomes.
func (m *Metrics) IncrementAdjustment(outcome string) {
	if m == nil {
		return
	}
	m.CoinAdjustments.WithLabelValues(outcome).Inc()
}

// ObserveOperation records the duration of operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
