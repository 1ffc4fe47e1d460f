package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "forecast_etl"

// Metrics holds the Prometheus counters, histograms, and gauges for the sync job.
type Metrics struct {
	SyncRuns          *prometheus.CounterVec // labels: outcome={success,partial,failed}
	SyncDuration      prometheus.Histogram
	LastSyncTimestamp prometheus.Gauge
	SchedulerRunning  prometheus.Gauge

	// Per-response metrics.
	ResponsesFetched *prometheus.CounterVec // labels: cadence
	FetchErrors      *prometheus.CounterVec // labels: cadence
	ParseErrors      *prometheus.CounterVec // labels: cadence, kind (see domain.ErrorKind)
	PayloadBytes     prometheus.Histogram

	// Sink metrics.
	RowsProduced *prometheus.CounterVec // labels: cadence
	LoadErrors   prometheus.Counter

	// Open-Meteo client metrics.
	FetchRetries  prometheus.Counter
	FetchDuration prometheus.Histogram
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}
	return &Metrics{
		SyncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_runs_total",
			Help:      help("Completed sync runs by outcome."),
		}, []string{"outcome"}),
		SyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      help("Duration of a full sync across all locations."),
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		LastSyncTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_sync_timestamp_seconds",
			Help:      help("Unix time of the last sync in which at least one location succeeded, or that had no locations to sync."),
		}),
		SchedulerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scheduler_running",
			Help:      help("1 when the sync scheduler is active, 0 when shut down."),
		}),
		ResponsesFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_fetched_total",
			Help:      help("Open-Meteo responses fetched by cadence."),
		}, []string{"cadence"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      help("Open-Meteo fetch failures by cadence."),
		}, []string{"cadence"}),
		ParseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      help("Responses rejected during normalization by cadence and error kind."),
		}, []string{"cadence", "kind"}),
		PayloadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "payload_bytes",
			Help:      help("Size of fetched Open-Meteo response bodies."),
			Buckets:   prometheus.ExponentialBuckets(1024, 2, 10),
		}),
		RowsProduced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_produced_total",
			Help:      help("Normalized rows written to the sink by cadence."),
		}, []string{"cadence"}),
		LoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_errors_total",
			Help:      help("Failed sink writes, counted per attempt."),
		}),
		FetchRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_retries_total",
			Help:      help("Open-Meteo requests retried after a transient failure."),
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      help("Open-Meteo request duration including retries."),
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)
	prometheus.MustRegister(
		m.SyncRuns,
		m.SyncDuration,
		m.LastSyncTimestamp,
		m.SchedulerRunning,
		m.ResponsesFetched,
		m.FetchErrors,
		m.ParseErrors,
		m.PayloadBytes,
		m.RowsProduced,
		m.LoadErrors,
		m.FetchRetries,
		m.FetchDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}
