// Package metrics exposes ledger and HTTP metrics in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "school_ledger"

// Metrics holds the collectors of the service. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	entriesPosted   *prometheus.CounterVec
	entriesRejected *prometheus.CounterVec
	reversals       prometheus.Counter
	auditAppends    *prometheus.CounterVec
	chainBreaks     prometheus.Gauge
	rateLookups     *prometheus.CounterVec
}

// New creates the collectors on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		entriesPosted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_entries_posted_total",
			Help:      "Journal entries posted by entry type.",
		}, []string{"entry_type"}),
		entriesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_entries_rejected_total",
			Help:      "Journal entries rejected before persistence, by reason.",
		}, []string{"reason"}),
		reversals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_entries_reversed_total",
			Help:      "Journal entries reversed.",
		}),
		auditAppends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_log_appends_total",
			Help:      "Rows appended to the audit chain by model type.",
		}, []string{"model_type"}),
		chainBreaks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "audit_chain_breaks",
			Help:      "Breaks found by the most recent audit chain verification.",
		}),
		rateLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_rate_lookups_total",
			Help:      "Exchange rate lookups by result (cache_hit, db_hit, inverse, missing).",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.entriesPosted,
		m.entriesRejected,
		m.reversals,
		m.auditAppends,
		m.chainBreaks,
		m.rateLookups,
	)
	return m
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// EntryPosted counts a posted journal entry.
func (m *Metrics) EntryPosted(entryType string) {
	if m == nil {
		return
	}
	m.entriesPosted.WithLabelValues(entryType).Inc()
}

// EntryRejected counts an entry refused before persistence.
func (m *Metrics) EntryRejected(reason string) {
	if m == nil {
		return
	}
	m.entriesRejected.WithLabelValues(reason).Inc()
}

// EntryReversed counts a reversal.
func (m *Metrics) EntryReversed() {
	if m == nil {
		return
	}
	m.reversals.Inc()
}

// AuditAppended counts an audit row.
func (m *Metrics) AuditAppended(modelType string) {
	if m == nil {
		return
	}
	m.auditAppends.WithLabelValues(modelType).Inc()
}

// ChainVerified records the break count of a verification run.
func (m *Metrics) ChainVerified(breaks int) {
	if m == nil {
		return
	}
	m.chainBreaks.Set(float64(breaks))
}

// RateLookup counts an exchange rate lookup outcome.
func (m *Metrics) RateLookup(result string) {
	if m == nil {
		return
	}
	m.rateLookups.WithLabelValues(result).Inc()
}
