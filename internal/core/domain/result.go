package domain

import "time"

// HostSuffix marks a package built for the host in status listings.
const HostSuffix = "(host)"

// PhaseKind distinguishes the host tools phase from the target phase.
type PhaseKind string

const (
	// PhaseTools builds host tools required by a cross build.
	PhaseTools PhaseKind = "tools"
	// PhaseTarget builds the requested packages for the target architecture.
	PhaseTarget PhaseKind = "target"
)

// Status is the outcome of a build phase.
type Status string

const (
	// StatusSuccess means every package of the phase completed.
	StatusSuccess Status = "success"
	// StatusFailure means the phase stopped at a failing package.
	StatusFailure Status = "failure"
)

// BuildResult is produced once per executed phase.
type BuildResult struct {
	Status         Status
	FailingPackage string
	Diagnostic     string
}

// Succeeded reports whether the phase completed.
func (r BuildResult) Succeeded() bool {
	return r.Status != StatusFailure
}

// Success returns a successful BuildResult.
func Success() BuildResult {
	return BuildResult{Status: StatusSuccess}
}

// Failure returns a failed BuildResult for pkg.
func Failure(pkg, diagnostic string) BuildResult {
	return BuildResult{Status: StatusFailure, FailingPackage: pkg, Diagnostic: diagnostic}
}

// InstallStatus is the state of a package's install manifest.
type InstallStatus string

const (
	// InstallReady means the manifest exists and lists the installed files.
	InstallReady InstallStatus = "ready"
	// InstallRetry means the package has never been built in this configuration.
	InstallRetry InstallStatus = "retry"
)

// InstallReport lists the files a previous build installed for a package.
type InstallReport struct {
	Package string
	Status  InstallStatus
	Files   []string
	Record  *BuildRecord
}

// BuildRecord is persisted after each successful package build.
type BuildRecord struct {
	RunID       string `json:"run_id"`
	Arch        string `json:"arch"`
	Variant     string `json:"variant"`
	Package     string `json:"package"`
	Fingerprint string `json:"fingerprint"`
	// SourceDigest is empty when the source tree could not be hashed.
	SourceDigest string        `json:"source_digest,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
	Duration     time.Duration `json:"duration"`
}

// StatusMark is the cursor printed before each entry of the build status list.
type StatusMark string

const (
	// MarkDone precedes packages built before the failure point (or all of them on success).
	MarkDone StatusMark = ">"
	// MarkFailed marks the failure point.
	MarkFailed StatusMark = "?"
	// MarkNotAttempted precedes packages after the failure point.
	MarkNotAttempted StatusMark = " "
)

// StatusEntry is one line of the build status list.
type StatusEntry struct {
	Mark StatusMark
	Name string
}

// StatusList lays out the tools order (suffixed with HostSuffix) followed by the target order,
// marking the failure point of res and everything after it.
// A failing tools package is expected as res.FailingPackage with HostSuffix appended.
func StatusList(tools, target []string, res BuildResult) []StatusEntry {
	names := make([]string, 0, len(tools)+len(target))
	for _, t := range tools {
		names = append(names, t+HostSuffix)
	}
	names = append(names, target...)

	entries := make([]StatusEntry, 0, len(names))
	mark := MarkDone
	for _, name := range names {
		if !res.Succeeded() && mark == MarkDone && name == res.FailingPackage {
			entries = append(entries, StatusEntry{Mark: MarkFailed, Name: name})
			mark = MarkNotAttempted
			continue
		}
		entries = append(entries, StatusEntry{Mark: mark, Name: name})
	}
	return entries
}

// RunInfo is the banner describing the current build selection.
type RunInfo struct {
	Version    string
	Targets    []string
	Variants   []string
	Arch       string
	Variant    string
	StagePath  string
	OutputPath string
}
