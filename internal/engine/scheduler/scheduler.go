// Package scheduler implements the sequential build executor.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/central/internal/core/ports"
	"go.trai.ch/zerr"
)

// PackageState is the lifecycle state of a package inside a phase.
type PackageState string

const (
	// StatePending indicates the package has not started.
	StatePending PackageState = "pending"
	// StateCleaning indicates previous output is being removed.
	StateCleaning PackageState = "cleaning"
	// StateConfiguring indicates the build tree is being generated.
	StateConfiguring PackageState = "configuring"
	// StateBuilding indicates the package is compiling and installing.
	StateBuilding PackageState = "building"
	// StateDone indicates every requested step completed.
	StateDone PackageState = "done"
	// StateFailed indicates a step failed. It is terminal for the whole phase.
	StateFailed PackageState = "failed"
)

// Phase is one ordered list of packages built for one architecture and variant.
type Phase struct {
	Kind     domain.PhaseKind
	Arch     string
	Variant  string
	Packages []string
}

// RunOptions configures a phase run.
type RunOptions struct {
	Debug     bool
	Verbose   bool
	Clean     bool
	SkipBuild bool
	Jobs      int
	Generator string
	Config    *domain.Config
	RunID     string

	// Renderer receives lifecycle events and every output line.
	Renderer ports.Renderer

	// Log, when set, receives the raw output of every step.
	Log io.Writer
}

// Scheduler runs build orders against the underlying build tool.
type Scheduler struct {
	tool    ports.BuildTool
	store   ports.BuildRecordStore
	tracer  ports.Tracer
	metrics ports.Metrics
	logger  ports.Logger
	hasher  ports.SourceHasher
	now     func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	tool ports.BuildTool,
	store ports.BuildRecordStore,
	tracer ports.Tracer,
	metrics ports.Metrics,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		tool:    tool,
		store:   store,
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// WithSourceHasher makes build records carry a digest of the package sources.
func (s *Scheduler) WithSourceHasher(h ports.SourceHasher) *Scheduler {
	s.hasher = h
	return s
}

// Run builds phase.Packages strictly in order and stops at the first package whose steps fail.
// Remaining packages are not attempted.
func (s *Scheduler) Run(ctx context.Context, phase Phase, opts RunOptions) domain.BuildResult {
	ctx, span := s.tracer.Start(ctx, fmt.Sprintf("%s %s/%s", phase.Kind, phase.Arch, phase.Variant),
		ports.WithAttribute("central.phase", string(phase.Kind)),
		ports.WithAttribute("central.arch", phase.Arch),
		ports.WithAttribute("central.variant", phase.Variant),
	)
	defer span.End()

	s.tracer.EmitPlan(ctx, phase.Packages)
	opts.Renderer.OnPlanEmit(string(phase.Kind), phase.Arch, phase.Packages)

	start := s.now()
	res := domain.Success()
	for _, pkg := range phase.Packages {
		if err := s.runPackage(ctx, phase, pkg, opts); err != nil {
			span.RecordError(err)
			res = domain.Failure(pkg, err.Error())
			break
		}
	}

	s.metrics.PhaseCompleted(string(phase.Kind), phase.Arch, string(res.Status), s.now().Sub(start))
	return res
}

func (s *Scheduler) runPackage(ctx context.Context, phase Phase, pkg string, opts RunOptions) (err error) {
	ctx, span := s.tracer.Start(ctx, pkg,
		ports.WithAttribute("central.package", pkg),
		ports.WithAttribute("central.arch", phase.Arch),
	)
	defer span.End()

	start := s.now()
	opts.Renderer.OnPackageStart(pkg, start)

	lines := newLineWriter(pkg, opts.Renderer)
	writers := []io.Writer{lines, span}
	if opts.Log != nil {
		writers = append(writers, opts.Log)
	}
	out := io.MultiWriter(writers...)

	state := StatePending
	defer func() {
		_ = lines.Close()
		end := s.now()
		status := domain.StatusSuccess
		if err != nil {
			status = domain.StatusFailure
			span.RecordError(err)
			span.SetAttribute("central.state", string(StateFailed))
			span.SetAttribute("central.failed_step", string(state))
		}
		opts.Renderer.OnPackageComplete(pkg, end, err)
		s.metrics.PackageCompleted(string(phase.Kind), phase.Arch, string(status), end.Sub(start))
	}()

	req := domain.BuildRequest{
		Arch:      phase.Arch,
		Variant:   phase.Variant,
		Package:   pkg,
		Debug:     opts.Debug,
		Verbose:   opts.Verbose,
		Jobs:      opts.Jobs,
		Generator: opts.Generator,
		Config:    opts.Config,
	}

	step := func(next PackageState, run func(context.Context, domain.BuildRequest, io.Writer) error) error {
		state = next
		s.logger.Debug(fmt.Sprintf("%s: %s", pkg, next))
		if stepErr := run(ctx, req, out); stepErr != nil {
			return zerr.With(zerr.Wrap(stepErr, string(next)+" "+pkg), "package", pkg)
		}
		return nil
	}

	if opts.Clean {
		if err := step(StateCleaning, s.tool.Clean); err != nil {
			return err
		}
	}

	if opts.SkipBuild {
		state = StateDone
		return nil
	}

	if err := step(StateConfiguring, s.tool.Configure); err != nil {
		return err
	}
	if err := step(StateBuilding, s.tool.Build); err != nil {
		return err
	}
	state = StateDone

	s.record(req, opts.RunID, s.now().Sub(start))
	return nil
}

// record persists the build record of a successful package. Store failures are logged, not fatal.
func (s *Scheduler) record(req domain.BuildRequest, runID string, d time.Duration) {
	if req.Config == nil {
		return
	}
	outputDir := req.Config.OutputDir
	fingerprint := s.store.Fingerprint(req)

	digest := s.sourceDigest(req)

	prev, err := s.store.Get(outputDir, req.Arch, req.Variant, req.Package)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("%s: cannot read previous build record: %v", req.Package, err))
	} else if prev != nil {
		if prev.Fingerprint != fingerprint {
			s.logger.Debug(fmt.Sprintf("%s: configuration changed since run %s", req.Package, prev.RunID))
		}
		if digest != "" && prev.SourceDigest != "" && prev.SourceDigest != digest {
			s.logger.Debug(fmt.Sprintf("%s: sources changed since run %s", req.Package, prev.RunID))
		}
	}

	rec := domain.BuildRecord{
		RunID:        runID,
		Arch:         req.Arch,
		Variant:      req.Variant,
		Package:      req.Package,
		Fingerprint:  fingerprint,
		SourceDigest: digest,
		Timestamp:    s.now(),
		Duration:     d,
	}
	if err := s.store.Put(outputDir, rec); err != nil {
		s.logger.Warn(fmt.Sprintf("%s: cannot write build record: %v", req.Package, err))
	}
}

func (s *Scheduler) sourceDigest(req domain.BuildRequest) string {
	if s.hasher == nil {
		return ""
	}
	d, ok := req.Config.Package(req.Arch, req.Package)
	if !ok {
		return ""
	}
	digest, err := s.hasher.SourceDigest(req.Config.SourcePath(d), []string{req.Config.OutputDir})
	if err != nil {
		s.logger.Warn(fmt.Sprintf("%s: cannot hash sources: %v", req.Package, err))
		return ""
	}
	return digest
}
