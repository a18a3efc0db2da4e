package server

import (
	"github.com/iwvelando/trid-reconcile/internal/reconcile"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the reconciliation counters exposed on /metrics.
type Metrics struct {
	Reconciliations *prometheus.CounterVec
	Exceptions      *prometheus.CounterVec
	Duration        prometheus.Histogram
	CureShortfall   prometheus.Counter
}

// NewMetrics registers the reconciliation metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Reconciliations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trid_reconciliations_total",
			Help: "Total number of reconciliation requests by input path and outcome",
		}, []string{"path", "outcome"}),
		Exceptions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trid_exceptions_total",
			Help: "Total number of exceptions raised by flag code",
		}, []string{"code"}),
		Duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "trid_reconcile_duration_seconds",
			Help:    "Time spent evaluating a reconciliation request",
			Buckets: prometheus.DefBuckets,
		}),
		CureShortfall: factory.NewCounter(prometheus.CounterOpts{
			Name: "trid_cure_shortfall_dollars_total",
			Help: "Cumulative cure shortfall left after lender credits",
		}),
	}
}

// ObserveResult records the exceptions and shortfall of a completed run.
func (m *Metrics) ObserveResult(path string, res *reconcile.Result, seconds float64) {
	m.Reconciliations.WithLabelValues(path, "ok").Inc()
	m.Duration.Observe(seconds)
	for _, e := range res.Exceptions {
		code := string(e.Code)
		if code == "" {
			code = e.ID
		}
		m.Exceptions.WithLabelValues(code).Inc()
	}
	if res.Cure.Shortfall > 0 {
		m.CureShortfall.Add(res.Cure.Shortfall)
	}
}

// ObserveError records a rejected request.
func (m *Metrics) ObserveError(path string) {
	m.Reconciliations.WithLabelValues(path, "error").Inc()
}
