package ports

import "time"

// Renderer is the abstraction for live build output.
// It lets the same event stream drive either a progress display or linear CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnPlanEmit is called once per phase before its first package starts.
	// phase: "tools" or "target"
	// arch: architecture the phase builds for
	// packages: the phase build order
	OnPlanEmit(phase, arch string, packages []string)

	// OnPackageStart is called when a package begins its first step.
	OnPackageStart(name string, startTime time.Time)

	// OnPackageLog is called with each complete output line of a package, without the newline.
	OnPackageLog(name, line string)

	// OnPackageComplete is called when a package finished or failed.
	// err: nil if successful, error otherwise
	OnPackageComplete(name string, endTime time.Time, err error)

	// Stop flushes any buffered output.
	Stop() error
}
