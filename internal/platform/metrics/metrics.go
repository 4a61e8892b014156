package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the ledger's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	salesCommitted  *prometheus.CounterVec
	commitFailures  *prometheus.CounterVec
	commitDuration  *prometheus.HistogramVec
	txRetries       prometheus.Counter
	voidTransitions *prometheus.CounterVec
	sessionEvents   *prometheus.CounterVec
	stockFlags      *prometheus.CounterVec
	weatherLookups  *prometheus.CounterVec
	publishFailures *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		salesCommitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos_ledger",
			Name:      "sales_committed_total",
			Help:      "Committed sales by payment method and write strategy",
		}, []string{"payment_method", "strategy"}),
		commitFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos_ledger",
			Name:      "commit_failures_total",
			Help:      "Rejected or failed sale commits by reason",
		}, []string{"reason"}),
		commitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pos_ledger",
			Name:      "commit_duration_seconds",
			Help:      "Sale commit latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"strategy"}),
		txRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos_ledger",
			Name:      "tx_retries_total",
			Help:      "Ledger transactions retried after a serialization conflict",
		}),
		voidTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos_ledger",
			Name:      "void_transitions_total",
			Help:      "Void workflow transitions",
		}, []string{"transition"}),
		sessionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos_ledger",
			Name:      "cash_session_events_total",
			Help:      "Cash sessions opened and closed",
		}, []string{"event"}),
		stockFlags: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos_ledger",
			Name:      "stock_flags_total",
			Help:      "Ingredients flagged low or negative after a commit",
		}, []string{"kind"}),
		weatherLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos_ledger",
			Name:      "weather_lookups_total",
			Help:      "Weather annotation lookups by result",
		}, []string{"result"}),
		publishFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos_ledger",
			Name:      "event_publish_failures_total",
			Help:      "Ledger events that could not be delivered",
		}, []string{"event_type"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos_ledger",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pos_ledger",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.salesCommitted, m.commitFailures, m.commitDuration, m.txRetries,
		m.voidTransitions, m.sessionEvents, m.stockFlags, m.weatherLookups,
		m.publishFailures, m.httpRequests, m.httpLatency,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) SaleCommitted(paymentMethod, strategy string, took time.Duration) {
	if m == nil {
		return
	}
	m.salesCommitted.WithLabelValues(paymentMethod, strategy).Inc()
	m.commitDuration.WithLabelValues(strategy).Observe(took.Seconds())
}

func (m *Metrics) CommitFailed(reason string) {
	if m == nil {
		return
	}
	m.commitFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) TxRetried() {
	if m == nil {
		return
	}
	m.txRetries.Inc()
}

func (m *Metrics) VoidTransition(transition string) {
	if m == nil {
		return
	}
	m.voidTransitions.WithLabelValues(transition).Inc()
}

func (m *Metrics) SessionEvent(event string) {
	if m == nil {
		return
	}
	m.sessionEvents.WithLabelValues(event).Inc()
}

func (m *Metrics) StockFlagged(kind string, count int) {
	if m == nil || count == 0 {
		return
	}
	m.stockFlags.WithLabelValues(kind).Add(float64(count))
}

func (m *Metrics) WeatherLookup(result string) {
	if m == nil {
		return
	}
	m.weatherLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) PublishFailed(eventType string) {
	if m == nil {
		return
	}
	m.publishFailures.WithLabelValues(eventType).Inc()
}

func (m *Metrics) ObserveHTTP(method, route, status string, took time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(took.Seconds())
}
