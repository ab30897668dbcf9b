package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	systemsGenerated *prometheus.CounterVec
	scanDuration     prometheus.Histogram
	scanCells        prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		systemsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "galaxy",
			Name:      "systems_generated_total",
			Help:      "Star systems generated, by classification and level of detail.",
		}, []string{"kind", "detail"}),
		scanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "galaxy",
			Name:      "scan_duration_seconds",
			Help:      "Time spent scanning a map window.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		scanCells: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "galaxy",
			Name:      "scan_cells_total",
			Help:      "Coordinates visited by map scans.",
		}),
	}

	registry.MustRegister(
		m.systemsGenerated,
		m.scanDuration,
		m.scanCells,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return m
}

// The recorders accept a nil receiver so callers can run without metrics

func (m *Metrics) SystemGenerated(kind, detail string) {
	if m == nil {
		return
	}
	m.systemsGenerated.WithLabelValues(kind, detail).Inc()
}

func (m *Metrics) ScanCompleted(cells int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.scanCells.Add(float64(cells))
	m.scanDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
