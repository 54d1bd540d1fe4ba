package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// statistics pipeline.
type Metrics struct {
	SelectionsProcessed prometheus.Counter
	ComputeErrors       *prometheus.CounterVec // label: reason={insufficient_data,insufficient_time_span}
	ComputeDuration     prometheus.Histogram
	SelectionSize       prometheus.Histogram
	ServiceReady        prometheus.Gauge

	// Catalogue load metrics, set once at startup.
	CatalogueEvents  prometheus.Gauge
	CatalogueDropped prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SelectionsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_stats",
			Name:      "selections_processed_total",
			Help:      "Total selection statistics computations completed.",
		}),
		ComputeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_stats",
			Name:      "compute_errors_total",
			Help:      "Selection computations rejected, by reason.",
		}, []string{"reason"}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_stats",
			Name:      "compute_duration_seconds",
			Help:      "Duration of a complete selection statistics computation.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		SelectionSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_stats",
			Name:      "selection_size_events",
			Help:      "Number of events per computed selection.",
			Buckets:   []float64{1, 10, 50, 100, 500, 1000, 5000, 10000, 50000},
		}),
		ServiceReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_stats",
			Name:      "service_ready",
			Help:      "1 once the startup full-catalogue computation has succeeded.",
		}),
		CatalogueEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_stats",
			Name:      "catalogue_events",
			Help:      "Events loaded from the catalogue file.",
		}),
		CatalogueDropped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_stats",
			Name:      "catalogue_dropped_rows",
			Help:      "Rows dropped at load time for unparsable fields.",
		}),
	}

	prometheus.MustRegister(
		m.SelectionsProcessed,
		m.ComputeErrors,
		m.ComputeDuration,
		m.SelectionSize,
		m.ServiceReady,
		m.CatalogueEvents,
		m.CatalogueDropped,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SelectionsProcessed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_stats", Name: "selections_processed_total"}),
		ComputeErrors:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_stats", Name: "compute_errors_total"}, []string{"reason"}),
		ComputeDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_stats", Name: "compute_duration_seconds"}),
		SelectionSize:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_stats", Name: "selection_size_events"}),
		ServiceReady:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_stats", Name: "service_ready"}),
		CatalogueEvents:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_stats", Name: "catalogue_events"}),
		CatalogueDropped:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_stats", Name: "catalogue_dropped_rows"}),
	}
}
