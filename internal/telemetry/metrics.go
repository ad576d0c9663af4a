// Package telemetry exposes EcoTrip's Prometheus metrics. Metrics live in a
// private registry; the CLI writes them to a node-exporter textfile when
// telemetry.metrics_file is configured.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/EHLuC/ecotrip/internal/greenops"
)

// Namespace prefixes every metric name.
const Namespace = "ecotrip"

// Metrics holds the collectors for one process.
type Metrics struct {
	registry *prometheus.Registry

	CalculationsTotal *prometheus.CounterVec
	EmissionKgTotal   *prometheus.CounterVec
	HistoryEntries    prometheus.Gauge
	HistoryClears     prometheus.Counter
	BuildInfo         *prometheus.GaugeVec
}

// New registers the EcoTrip collectors in a fresh registry.
func New(version string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		CalculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "calculations_total",
				Help:      "Total number of footprint calculations",
			},
			[]string{"mode"},
		),
		EmissionKgTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "emission_kg_total",
				Help:      "Total estimated CO2 emission in kilograms",
			},
			[]string{"mode"},
		),
		HistoryEntries: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "history_entries",
				Help:      "Current number of entries in the history log",
			},
		),
		HistoryClears: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "history_clears_total",
				Help:      "Total number of history clears",
			},
		),
		BuildInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "build_info",
				Help:      "Build information",
			},
			[]string{"version", "go_version"},
		),
	}
	m.BuildInfo.WithLabelValues(version, runtime.Version()).Set(1)

	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveCalculation counts one calculation and its emission.
func (m *Metrics) ObserveCalculation(mode greenops.TransportMode, emissionKg float64) {
	m.CalculationsTotal.WithLabelValues(string(mode)).Inc()
	if emissionKg > 0 {
		m.EmissionKgTotal.WithLabelValues(string(mode)).Add(emissionKg)
	}
}

// ObserveHistorySize records the current history length.
func (m *Metrics) ObserveHistorySize(n int) {
	m.HistoryEntries.Set(float64(n))
}

// ObserveHistoryClear counts one history clear.
func (m *Metrics) ObserveHistoryClear() {
	m.HistoryClears.Inc()
}

// WriteTextfile writes the registry in Prometheus text format to path,
// creating the parent directory. The write is atomic.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
