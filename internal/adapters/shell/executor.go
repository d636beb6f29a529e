// Package shell runs external build commands.
package shell

import (
	"context"
	"errors"
	"io"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/creack/pty"
	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/central/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Executor implements ports.Executor using os/exec.
// Commands run inside a PTY so build tools keep their colored, line-buffered output.
// When no PTY can be allocated the command falls back to plain pipes.
type Executor struct {
	logger ports.Logger

	// UsePTY selects PTY execution. Pipes are used when false.
	UsePTY bool
}

// NewExecutor creates a new Executor that prefers PTY execution.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger, UsePTY: true}
}

// Execute runs cmd and waits for it to complete.
// With a PTY, stdout and stderr are merged into stdout.
func (e *Executor) Execute(ctx context.Context, cmd *domain.Command, stdout, stderr io.Writer) error {
	if cmd == nil || len(cmd.Args) == 0 {
		return nil
	}

	c := e.command(ctx, cmd)
	e.logger.Debug("run: " + cmd.String())

	var err error
	if e.UsePTY {
		err = runPTY(c, stdout)
		if errors.Is(err, errNoPTY) {
			e.logger.Debug("no pty available, using pipes")
			c = e.command(ctx, cmd)
			err = runPipes(c, stdout, stderr)
		}
	} else {
		err = runPipes(c, stdout, stderr)
	}

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
		return zerr.With(wrapped, "command", cmd.String())
	}
	return nil
}

func (e *Executor) command(ctx context.Context, cmd *domain.Command) *exec.Cmd {
	env := resolveEnvironment(os.Environ(), cmd.Env)

	name := cmd.Args[0]
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args[1:]...) //nolint:gosec // commands come from the build tool adapter
	c.Args[0] = name
	c.Dir = cmd.Dir
	c.Env = env
	return c
}

var errNoPTY = errors.New("pty unavailable")

func runPTY(c *exec.Cmd, stdout io.Writer) error {
	ptmx, err := pty.Start(c)
	if err != nil {
		// The process was never started.
		if c.Process == nil {
			return errors.Join(errNoPTY, err)
		}
		return zerr.Wrap(err, "failed to start pty")
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// Reading the master returns EIO once the child exits and every slave fd is closed.
		_, _ = io.Copy(stdout, ptmx)
	}()

	waitErr := c.Wait()
	<-ioDone
	_ = ptmx.Close()
	return waitErr
}

func runPipes(c *exec.Cmd, stdout, stderr io.Writer) error {
	outPipe, err := c.StdoutPipe()
	if err != nil {
		return err
	}
	errPipe, err := c.StderrPipe()
	if err != nil {
		return err
	}

	if err := c.Start(); err != nil {
		return err
	}

	// stdout and stderr are often the same writer.
	var mu sync.Mutex
	g := new(errgroup.Group)
	g.Go(func() error {
		_, err := io.Copy(&lockedWriter{mu: &mu, w: stdout}, outPipe)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&lockedWriter{mu: &mu, w: stderr}, errPipe)
		return err
	})

	// All output must be read before Wait closes the pipes.
	copyErr := g.Wait()
	if err := c.Wait(); err != nil {
		return err
	}
	return copyErr
}

type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// resolveEnvironment overlays overrides on the inherited environment and returns it sorted.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	maps.Copy(envMap, overrides)

	result := make([]string, 0, len(envMap))
	for _, k := range slices.Sorted(maps.Keys(envMap)) {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by PATH in env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
