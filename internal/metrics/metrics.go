// Package metrics exposes Prometheus instrumentation for batch runs and
// writes it in the node_exporter textfile format.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus counters and gauges for a batch run.
type Metrics struct {
	registry        *prometheus.Registry
	filesTotal      *prometheus.CounterVec
	muxDuration     prometheus.Histogram
	filesDiscovered prometheus.Gauge
	lastRun         prometheus.Gauge
}

// New creates and registers the batch metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	filesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mkvreorder_files_total",
		Help: "Files processed, by outcome status and reason",
	}, []string{"status", "reason"})
	muxDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mkvreorder_mux_duration_seconds",
		Help:    "Wall time of successful mkvmerge remuxes",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})
	filesDiscovered := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mkvreorder_files_discovered",
		Help: "Matching files found in the source tree on the last run",
	})
	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mkvreorder_last_run_timestamp_seconds",
		Help: "Unix time the last run finished",
	})

	registry.MustRegister(filesTotal, muxDuration, filesDiscovered, lastRun)

	return &Metrics{
		registry:        registry,
		filesTotal:      filesTotal,
		muxDuration:     muxDuration,
		filesDiscovered: filesDiscovered,
		lastRun:         lastRun,
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetDiscovered records how many files the run will process.
func (m *Metrics) SetDiscovered(n int) {
	if m == nil {
		return
	}
	m.filesDiscovered.Set(float64(n))
}

// ObserveFile counts one file outcome. Mux time is recorded only for
// succeeded files.
func (m *Metrics) ObserveFile(status, reason string, mux time.Duration) {
	if m == nil {
		return
	}
	m.filesTotal.WithLabelValues(status, reason).Inc()
	if status == "succeeded" && mux > 0 {
		m.muxDuration.Observe(mux.Seconds())
	}
}

// WriteTextfile stamps the run completion time and writes the registry to
// path atomically.
func (m *Metrics) WriteTextfile(path string, finished time.Time) error {
	if m == nil || path == "" {
		return nil
	}
	m.lastRun.Set(float64(finished.Unix()))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
