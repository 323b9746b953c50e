package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess         = "success"
	OutcomeConnectionError = "connection_error"
	OutcomeTimeout         = "timeout"
	OutcomeHTTPError       = "http_error"
	OutcomeInvalidJSON     = "invalid_json"
	OutcomeUnexpectedError = "unexpected_error"
)

type Metrics struct {
	registry *prometheus.Registry

	RunsTotal       *prometheus.CounterVec
	RequestDuration prometheus.Histogram
	LastRun         prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llama_probe_runs_total",
				Help: "Total number of probe runs by outcome",
			},
			[]string{"outcome"},
		),
		RequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "llama_probe_request_duration_seconds",
				Help:    "Completion request duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30},
			},
		),
		LastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "llama_probe_last_run_timestamp_seconds",
				Help: "Unix time of the last probe run",
			},
		),
	}
}

func (m *Metrics) RecordRun(outcome string, duration time.Duration) {
	m.RunsTotal.WithLabelValues(outcome).Inc()
	m.RequestDuration.Observe(duration.Seconds())
	m.LastRun.SetToCurrentTime()
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
