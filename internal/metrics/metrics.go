// Package metrics exposes seqid's Prometheus collectors. Metrics is an
// id.Observer and a pebblestore.MetricsHook, and the HTTP server reports
// requests through ObserveHTTP.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector, registered on one Registerer.
type Metrics struct {
	IDsGenerated *prometheus.CounterVec
	CounterWraps *prometheus.CounterVec
	TickRepeats  *prometheus.CounterVec

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	StoreReadBytes     prometheus.Counter
	StoreCommitSeconds prometheus.Histogram
	StoreCommitOps     prometheus.Counter
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		IDsGenerated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seqid_ids_generated_total",
				Help: "Total number of identifiers generated",
			},
			[]string{"scheme"},
		),
		CounterWraps: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seqid_counter_wraps_total",
				Help: "Times the offset wrapped to zero within one tick",
			},
			[]string{"scheme"},
		),
		TickRepeats: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seqid_tick_repeats_total",
				Help: "Times a scheme without an offset field saw the same tick twice",
			},
			[]string{"scheme"},
		),
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seqid_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "code"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seqid_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"route"},
		),
		StoreReadBytes: f.NewCounter(
			prometheus.CounterOpts{
				Name: "seqid_store_read_bytes_total",
				Help: "Bytes read from the checkpoint store",
			},
		),
		StoreCommitSeconds: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "seqid_store_commit_duration_seconds",
				Help:    "Duration of checkpoint store batch commits in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),
		StoreCommitOps: f.NewCounter(
			prometheus.CounterOpts{
				Name: "seqid_store_commit_ops_total",
				Help: "Operations committed to the checkpoint store",
			},
		),
	}
}

func (m *Metrics) CounterWrapped(scheme string, _ int64) {
	m.CounterWraps.WithLabelValues(scheme).Inc()
}

func (m *Metrics) TickRepeated(scheme string, _ int64) {
	m.TickRepeats.WithLabelValues(scheme).Inc()
}

func (m *Metrics) Generated(scheme string) {
	m.IDsGenerated.WithLabelValues(scheme).Inc()
}

// ObserveHTTP records one request against its route pattern.
func (m *Metrics) ObserveHTTP(route string, code int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRead(_ time.Duration, bytes int) {
	m.StoreReadBytes.Add(float64(bytes))
}

func (m *Metrics) ObserveBatchCommit(elapsed time.Duration, numOps int, _ int) {
	m.StoreCommitSeconds.Observe(elapsed.Seconds())
	m.StoreCommitOps.Add(float64(numOps))
}
