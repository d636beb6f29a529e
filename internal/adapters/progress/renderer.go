// Package progress renders build phases as progress bars on interactive terminals.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/schollz/progressbar/v3"
	"go.trai.ch/central/internal/ui/output"
	"go.trai.ch/central/internal/ui/style"
)

// DefaultTailLines is the number of output lines kept per package and shown when it fails.
const DefaultTailLines = 20

// Renderer implements ports.Renderer with one progress bar per phase.
// Package output is not printed while the bar runs; the last lines of a failing
// package are printed below the bar instead.
type Renderer struct {
	w      io.Writer
	output *termenv.Output
	tail   int

	mu    sync.Mutex
	bar   *progressbar.ProgressBar
	label string
	logs  map[string][]string
}

// NewRenderer creates a Renderer writing to w. A nil writer defaults to stderr.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stderr
	}
	return &Renderer{
		w:      w,
		output: output.New(w),
		tail:   DefaultTailLines,
		logs:   make(map[string][]string),
	}
}

// OnPlanEmit finishes the previous phase bar and starts a new one.
func (r *Renderer) OnPlanEmit(phase, arch string, packages []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finishLocked()
	r.label = fmt.Sprintf("%s %s", phase, arch)
	r.bar = progressbar.NewOptions(len(packages),
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(r.label),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// OnPackageStart names the running package in the bar.
func (r *Renderer) OnPackageStart(name string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs[name] = nil
	if r.bar != nil {
		r.bar.Describe(fmt.Sprintf("%s: %s", r.label, name))
	}
}

// OnPackageLog keeps the last lines of the package output.
func (r *Renderer) OnPackageLog(name, line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := append(r.logs[name], line)
	if len(lines) > r.tail {
		lines = lines[len(lines)-r.tail:]
	}
	r.logs[name] = lines
}

// OnPackageComplete advances the bar, or stops it and prints the output tail on failure.
func (r *Renderer) OnPackageComplete(name string, _ time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.logs[name]
	delete(r.logs, name)

	if err == nil {
		if r.bar != nil {
			_ = r.bar.Add(1)
		}
		return
	}

	if r.bar != nil {
		_ = r.bar.Exit()
		r.bar = nil
	}

	mark := r.output.String(style.Cross).Foreground(r.output.Color(string(style.Red))).String()
	_, _ = fmt.Fprintf(r.w, "\n%s %s: %v\n", mark, name, err)
	for _, line := range lines {
		_, _ = fmt.Fprintf(r.w, "  %s\n", r.output.String(line).Faint().String())
	}
}

// Stop completes the current bar.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finishLocked()
	return nil
}

func (r *Renderer) finishLocked() {
	if r.bar == nil {
		return
	}
	_ = r.bar.Finish()
	_, _ = fmt.Fprintln(r.w)
	r.bar = nil
}
