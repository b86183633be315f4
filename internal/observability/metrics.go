package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	Exchanges       *prometheus.CounterVec
	StorageErrors   prometheus.Counter
	BusyWorkers     prometheus.Gauge
	ExchangeLatency prometheus.Histogram

	stages *exchangeStageWindow
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Exchanges: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchanges_total",
			Help:      "Completed exchanges by agent and reply source.",
		}, []string{"agent", "source"}),
		StorageErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_errors_total",
			Help:      "Failed turn persistence attempts.",
		}),
		BusyWorkers: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "busy_workers",
			Help:      "Responder invocations currently holding a worker slot.",
		}),
		ExchangeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "exchange_latency_ms",
			Help:      "End-to-end exchange latency in milliseconds.",
			Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 15000, 30000},
		}),
		stages: newExchangeStageWindow(256),
	}
}

// ObserveExchangeStage records one stage duration into the rolling window
// backing the perf endpoint.
func (m *Metrics) ObserveExchangeStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stages.Observe(stage, float64(d.Microseconds())/1000.0)
}

// ObserveIndicator bumps a named occurrence counter in the rolling window.
func (m *Metrics) ObserveIndicator(name string) {
	if m == nil {
		return
	}
	m.stages.ObserveIndicator(name)
}

// SnapshotExchangeStages summarizes the rolling window.
func (m *Metrics) SnapshotExchangeStages() ExchangeStageSnapshot {
	if m == nil {
		return ExchangeStageSnapshot{}
	}
	return m.stages.Snapshot()
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
