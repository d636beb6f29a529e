// Package metrics records build outcomes in a private Prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/zerr"
)

const namespace = "central"

// Recorder implements ports.Metrics.
type Recorder struct {
	registry *prometheus.Registry

	packages        *prometheus.CounterVec
	packageDuration *prometheus.HistogramVec
	phases          *prometheus.CounterVec
	phaseDuration   *prometheus.HistogramVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	labels := []string{"phase", "arch", "status"}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		packages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "packages_total",
				Help:      "Packages processed, by phase, architecture and outcome.",
			},
			labels,
		),
		packageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "package_duration_seconds",
				Help:      "Time spent on one package, clean, configure and build included.",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12),
			},
			labels,
		),
		phases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "phases_total",
				Help:      "Build phases run, by kind, architecture and outcome.",
			},
			labels,
		),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "phase_duration_seconds",
				Help:      "Time spent on one build phase.",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
			},
			labels,
		),
	}

	r.registry.MustRegister(r.packages, r.packageDuration, r.phases, r.phaseDuration)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// PackageCompleted records one package outcome of a phase.
func (r *Recorder) PackageCompleted(phase, arch, status string, d time.Duration) {
	r.packages.WithLabelValues(phase, arch, status).Inc()
	r.packageDuration.WithLabelValues(phase, arch, status).Observe(d.Seconds())
}

// PhaseCompleted records one phase outcome.
func (r *Recorder) PhaseCompleted(phase, arch, status string, d time.Duration) {
	r.phases.WithLabelValues(phase, arch, status).Inc()
	r.phaseDuration.WithLabelValues(phase, arch, status).Observe(d.Seconds())
}

// WriteTextfile writes every collected metric to path in the text exposition format,
// as expected by the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", path)
	}
	return nil
}
