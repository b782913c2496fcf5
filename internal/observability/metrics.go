package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// warning check pipeline.
type Metrics struct {
	ChecksRun         prometheus.Counter
	CheckFailures     prometheus.Counter
	FeedFetchErrors   prometheus.Counter
	NotificationsSent prometheus.Counter

	WarningsActive   prometheus.Gauge
	SchedulerRunning prometheus.Gauge
	LastCheckTime    prometheus.Gauge

	CheckDuration     prometheus.Histogram
	FeedFetchDuration prometheus.Histogram
	WarningsParsed    prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ChecksRun: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bomwatch",
			Name:      "checks_run_total",
			Help:      "Total warning check cycles executed.",
		}),
		CheckFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bomwatch",
			Name:      "check_failures_total",
			Help:      "Total check cycles that recovered from an unexpected error.",
		}),
		FeedFetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bomwatch",
			Name:      "feed_fetch_errors_total",
			Help:      "Total failed BOM feed fetches.",
		}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bomwatch",
			Name:      "notifications_sent_total",
			Help:      "Total warning notifications emitted to the sink.",
		}),
		WarningsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bomwatch",
			Name:      "warnings_active",
			Help:      "Unique warnings found by the most recent check.",
		}),
		SchedulerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bomwatch",
			Name:      "scheduler_running",
			Help:      "1 when the check scheduler is active, 0 when shut down.",
		}),
		LastCheckTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bomwatch",
			Name:      "last_check_timestamp_seconds",
			Help:      "Unix time of the most recent completed check.",
		}),
		CheckDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bomwatch",
			Name:      "check_duration_seconds",
			Help:      "Duration of a complete check cycle.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FeedFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bomwatch",
			Name:      "feed_fetch_duration_seconds",
			Help:      "BOM feed request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		WarningsParsed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bomwatch",
			Name:      "warnings_parsed",
			Help:      "Number of items parsed from the feed per check.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
	}

	prometheus.MustRegister(
		m.ChecksRun,
		m.CheckFailures,
		m.FeedFetchErrors,
		m.NotificationsSent,
		m.WarningsActive,
		m.SchedulerRunning,
		m.LastCheckTime,
		m.CheckDuration,
		m.FeedFetchDuration,
		m.WarningsParsed,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ChecksRun:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bomwatch", Name: "checks_run_total"}),
		CheckFailures:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bomwatch", Name: "check_failures_total"}),
		FeedFetchErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bomwatch", Name: "feed_fetch_errors_total"}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bomwatch", Name: "notifications_sent_total"}),
		WarningsActive:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bomwatch", Name: "warnings_active"}),
		SchedulerRunning:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bomwatch", Name: "scheduler_running"}),
		LastCheckTime:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bomwatch", Name: "last_check_timestamp_seconds"}),
		CheckDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "bomwatch", Name: "check_duration_seconds"}),
		FeedFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "bomwatch", Name: "feed_fetch_duration_seconds"}),
		WarningsParsed:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "bomwatch", Name: "warnings_parsed"}),
	}
}
