package ports

import "time"

// Metrics records build counters and durations.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// PackageCompleted records one package outcome of a phase.
	PackageCompleted(phase, arch, status string, d time.Duration)
	// PhaseCompleted records one phase outcome.
	PhaseCompleted(phase, arch, status string, d time.Duration)
	// WriteTextfile exports the collected metrics in the Prometheus text format.
	WriteTextfile(path string) error
}
