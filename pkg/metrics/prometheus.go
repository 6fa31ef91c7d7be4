package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stocklens"

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	providerCalls   *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	newsErrors      *prometheus.CounterVec
	exportBytes     prometheus.Histogram
	lastPrice       *prometheus.GaugeVec
}

// New creates a recorder registered on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		providerCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_calls_total",
				Help:      "Total number of upstream provider calls",
			},
			[]string{"operation", "result"},
		),
		providerLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_call_duration_seconds",
				Help:      "Duration of upstream provider calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "memo_lookups_total",
				Help:      "Market data memo lookups by result",
			},
			[]string{"result"},
		),
		newsErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "news_source_errors_total",
				Help:      "News feed fetch failures by source",
			},
			[]string{"source"},
		),
		exportBytes: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "export_size_bytes",
				Help:      "Size of generated workbooks in bytes",
				Buckets:   prometheus.ExponentialBuckets(4096, 2, 10),
			},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_price",
				Help:      "Last observed close for a symbol",
			},
			[]string{"symbol"},
		),
	}
}

// RecordProviderCall records an upstream call and its outcome.
func (r *Recorder) RecordProviderCall(op string, seconds float64, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.providerCalls.WithLabelValues(op, result).Inc()
	r.providerLatency.WithLabelValues(op).Observe(seconds)
}

// RecordCacheLookup records a memo hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// RecordNewsSourceError records a failed feed fetch.
func (r *Recorder) RecordNewsSourceError(source string) {
	r.newsErrors.WithLabelValues(source).Inc()
}

// RecordExport records the size of an exported workbook.
func (r *Recorder) RecordExport(bytes int) {
	r.exportBytes.Observe(float64(bytes))
}

// RecordLastPrice records the last close for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}
