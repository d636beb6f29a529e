// Package linear provides a synchronous, line-prefixed renderer for CI and verbose runs.
package linear

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/central/internal/ui/output"
	"go.trai.ch/central/internal/ui/style"
)

// Renderer implements ports.Renderer with chronological logs.
// Package output goes to stdout prefixed with "[name]"; lifecycle lines go to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu     sync.Mutex
	starts map[string]time.Time
}

// NewRenderer creates a new Renderer. Nil writers default to the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: output.NewWithProfile(stderr, output.ColorProfileANSI),
		starts: make(map[string]time.Time),
	}
}

// OnPlanEmit prints the phase plan.
func (r *Renderer) OnPlanEmit(phase, arch string, packages []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Planning to build %d package(s) for %s (%s)\n", len(packages), arch, phase)
}

// OnPackageStart prints a start line.
func (r *Renderer) OnPackageStart(name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.starts[name] = startTime
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", r.prefix(name))
}

// OnPackageLog prints one output line of a package.
func (r *Renderer) OnPackageLog(name, line string) {
	if line == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", name, line)
}

// OnPackageComplete prints the outcome and duration of a package.
func (r *Renderer) OnPackageComplete(name string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := endTime.Sub(r.starts[name]).Round(time.Millisecond)
	delete(r.starts, name)

	if err != nil {
		mark := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", r.prefix(name), mark, d, err)
		return
	}
	mark := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", r.prefix(name), mark, d)
}

// Stop does nothing: every line is written as soon as it arrives.
func (r *Renderer) Stop() error {
	return nil
}

func (r *Renderer) prefix(name string) string {
	return r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
}
