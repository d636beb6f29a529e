// Package detector selects the live output mode from the environment.
package detector

import (
	"os"

	"golang.org/x/term"
	"go.trai.ch/zerr"
)

// OutputMode represents the rendering mode for a build.
type OutputMode int

const (
	// ModeAuto picks progress or linear from the environment.
	ModeAuto OutputMode = iota
	// ModeProgress forces the progress bar renderer.
	ModeProgress
	// ModeLinear forces the line-prefixed renderer.
	ModeLinear
)

// ErrUnknownOutputMode is returned for an output mode flag that is not recognized.
var ErrUnknownOutputMode = zerr.New("unknown output mode, expected 'auto', 'progress' or 'linear'")

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeProgress:
		return "progress"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// ParseMode maps an --output-mode value to an OutputMode.
func ParseMode(s string) (OutputMode, error) {
	switch s {
	case "", "auto":
		return ModeAuto, nil
	case "progress", "tui":
		return ModeProgress, nil
	case "linear", "ci":
		return ModeLinear, nil
	default:
		return ModeAuto, zerr.With(ErrUnknownOutputMode, "output_mode", s)
	}
}

// Environment describes what the output mode depends on.
type Environment struct {
	IsTTY bool
	CI    bool
}

// DetectEnvironment inspects stdout and the CI variable.
func DetectEnvironment() Environment {
	ci := os.Getenv("CI")
	return Environment{
		IsTTY: term.IsTerminal(int(os.Stdout.Fd())),
		CI:    ci == "true" || ci == "1",
	}
}

// Resolve picks the renderer for a run. Verbose runs and the --ci flag always get
// linear output; otherwise an explicit mode wins over detection.
func Resolve(env Environment, mode OutputMode, ci, verbose bool) OutputMode {
	if verbose || ci {
		return ModeLinear
	}
	if mode != ModeAuto {
		return mode
	}
	if !env.IsTTY || env.CI {
		return ModeLinear
	}
	return ModeProgress
}
