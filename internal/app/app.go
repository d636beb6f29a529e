// Package app implements the orchestration layer of central.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/central/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/central/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"go.trai.ch/central/internal/adapters/progress"  //nolint:depguard // Wired in app layer
	"go.trai.ch/central/internal/adapters/report"    //nolint:depguard // Wired in app layer
	"go.trai.ch/central/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/central/internal/build"
	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/central/internal/core/ports"
	"go.trai.ch/central/internal/engine/inspector"
	"go.trai.ch/central/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// Options are the parsed command line settings of one invocation.
type Options struct {
	// Packages is the positional package list. Empty means infer from Dir.
	Packages []string
	// Dir is the working directory. Empty means the process working directory.
	Dir string

	Arch    string
	Variant string

	Verbose    bool
	Debug      bool
	Clean      bool
	CleanBuild bool
	List       bool
	Dep        bool
	Exclusive  bool
	Info       bool
	Plot       bool

	Jobs      int
	Generator string
	ExtraVars []string

	OutputMode  string
	CI          bool
	MetricsFile string
}

// App represents the main application logic.
type App struct {
	loader    ports.ConfigLoader
	tool      ports.BuildTool
	plotter   ports.Plotter
	metrics   ports.Metrics
	logger    ports.Logger
	scheduler *scheduler.Scheduler
	inspector *inspector.Inspector

	stdout   io.Writer
	stderr   io.Writer
	renderer ports.Renderer
	env      func() detector.Environment
	newRunID func() string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	tool ports.BuildTool,
	plotter ports.Plotter,
	metrics ports.Metrics,
	log ports.Logger,
	sched *scheduler.Scheduler,
	insp *inspector.Inspector,
) *App {
	return &App{
		loader:    loader,
		tool:      tool,
		plotter:   plotter,
		metrics:   metrics,
		logger:    log,
		scheduler: sched,
		inspector: insp,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		env:       detector.DetectEnvironment,
		newRunID:  uuid.NewString,
	}
}

// WithOutput redirects reports and live output.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithRenderer replaces the renderer selected from the output mode.
func (a *App) WithRenderer(r ports.Renderer) *App {
	a.renderer = r
	return a
}

// Run executes one invocation. Listing modes return after printing; build mode
// returns an error joined with domain.ErrBuildFailed when a phase fails.
//
//nolint:cyclop // mode dispatch
func (a *App) Run(ctx context.Context, opts Options) error {
	p := report.New(a.stdout)

	if opts.Generator != "" {
		gens := a.tool.Generators()
		if _, ok := gens[opts.Generator]; !ok {
			p.UnsupportedGenerator(opts.Generator, gens)
			return zerr.With(domain.ErrUnsupportedGenerator, "generator", opts.Generator)
		}
	}

	mode, err := detector.ParseMode(opts.OutputMode)
	if err != nil {
		return err
	}

	cwd := opts.Dir
	if cwd == "" {
		if cwd, err = os.Getwd(); err != nil {
			return zerr.Wrap(err, "failed to get working directory")
		}
	}
	if cwd, err = filepath.Abs(cwd); err != nil {
		return zerr.Wrap(err, "failed to resolve working directory")
	}

	cfg, err := a.loader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if cfg, err = cfg.WithExtraVars(opts.ExtraVars); err != nil {
		return err
	}

	target, err := ResolveTarget(cfg, opts.Arch, opts.Variant)
	if err != nil {
		return err
	}
	info := runInfo(cfg, target)

	if opts.Plot {
		return a.plotter.Plot(a.stdout, target.Arch+"/"+target.Variant, target.Graph)
	}

	if opts.List && !opts.Dep {
		p.Banner(info)
		p.PackageTable(packageRows(cfg, target))
		return nil
	}

	requested, inferred := opts.Packages, false
	if len(requested) == 0 {
		requested, inferred = InferPackages(cfg, target.Arch, cwd), true
	}

	known, unknown := Partition(target.Graph, requested)
	for _, pkg := range unknown {
		if !inferred {
			p.InvalidPackage(pkg, target.Arch, target.Graph.Packages())
			return zerr.With(zerr.With(domain.ErrInvalidPackage, "package", pkg), "arch", target.Arch)
		}
		p.SkippedPackage(pkg)
	}

	sel, err := Select(target.Graph, known, opts.Exclusive, opts.Dep)
	if err != nil {
		return err
	}

	if opts.List {
		return a.listDependencies(p, cfg, target, info, sel)
	}

	plan, err := NewPlan(cfg, target, sel)
	if err != nil {
		return err
	}

	if opts.Info {
		return a.showInstalled(p, cfg, target, info, plan)
	}

	return a.build(ctx, p, cfg, target, info, plan, opts, mode)
}

func (a *App) listDependencies(p *report.Printer, cfg *domain.Config, t Target, info domain.RunInfo, sel Selection) error {
	p.Banner(info)
	for _, pkg := range sel.Packages {
		tools, order, err := Dependencies(cfg, t, pkg)
		if err != nil {
			return err
		}
		p.DependencyList(pkg, tools, order)
	}
	return nil
}

func (a *App) showInstalled(p *report.Printer, cfg *domain.Config, t Target, info domain.RunInfo, plan Plan) error {
	var retry []string
	for _, pkg := range plan.Order {
		r, err := a.inspector.Installed(t.Arch, pkg, cfg, t.Variant)
		if err != nil {
			return err
		}
		if r.Status == domain.InstallRetry {
			retry = append(retry, pkg)
			continue
		}
		p.Installed(r)
	}

	p.RetryList(retry)
	p.Banner(info)
	p.Generators(a.tool.Generators())
	return nil
}

//nolint:funlen // two sequential phases plus reporting
func (a *App) build(
	ctx context.Context,
	p *report.Printer,
	cfg *domain.Config,
	t Target,
	info domain.RunInfo,
	plan Plan,
	opts Options,
	mode detector.OutputMode,
) error {
	runID := a.newRunID()
	a.logger.Debug(fmt.Sprintf("run %s: %d tool(s), %d target package(s)", runID, len(plan.Tools.Order), len(plan.Target)))

	logs := newLogFiles(cfg)
	defer logs.Close()

	var toolsLog io.Writer
	if len(plan.Tools.Order) > 0 {
		w, err := logs.Open(cfg.HostArch)
		if err != nil {
			return err
		}
		toolsLog = w
	}
	targetLog, err := logs.Open(t.Arch)
	if err != nil {
		return err
	}

	tp := setupOTel(telemetry.NewBridge(a.logger))
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()

	renderer := a.selectRenderer(mode, opts)
	ropts := scheduler.RunOptions{
		Debug:     opts.Debug,
		Verbose:   opts.Verbose,
		Clean:     opts.Clean,
		SkipBuild: opts.Clean && !opts.CleanBuild,
		Jobs:      opts.Jobs,
		Generator: opts.Generator,
		Config:    cfg,
		RunID:     runID,
		Renderer:  renderer,
	}

	res := domain.Success()
	if len(plan.Tools.Order) > 0 {
		ropts.Log = toolsLog
		res = a.scheduler.Run(ctx, scheduler.Phase{
			Kind:     domain.PhaseTools,
			Arch:     cfg.HostArch,
			Variant:  plan.Tools.Variant,
			Packages: plan.Tools.Order,
		}, ropts)
		if !res.Succeeded() {
			res.FailingPackage += domain.HostSuffix
		}
	}

	if res.Succeeded() {
		ropts.Log = targetLog
		res = a.scheduler.Run(ctx, scheduler.Phase{
			Kind:     domain.PhaseTarget,
			Arch:     t.Arch,
			Variant:  t.Variant,
			Packages: plan.Target,
		}, ropts)
	}

	_ = renderer.Stop()

	if opts.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(opts.MetricsFile); err != nil {
			a.logger.Warn(fmt.Sprintf("metrics were not exported: %v", err))
		}
	}

	p.Summary(report.Summary{
		Info:      info,
		Specified: plan.Packages,
		Status:    domain.StatusList(plan.Tools.Order, plan.Target, res),
		Result:    res,
		LogFile:   cfg.LogPath(t.Arch),
		OutputDir: cfg.OutputDir,
	})

	if !res.Succeeded() {
		return errors.Join(domain.ErrBuildFailed, zerr.With(zerr.New(res.Diagnostic), "package", res.FailingPackage))
	}
	return nil
}

func (a *App) selectRenderer(mode detector.OutputMode, opts Options) ports.Renderer {
	if a.renderer != nil {
		return a.renderer
	}
	if detector.Resolve(a.env(), mode, opts.CI, opts.Verbose) == detector.ModeProgress {
		return progress.NewRenderer(a.stderr)
	}
	return linear.NewRenderer(a.stdout, a.stderr)
}

func runInfo(cfg *domain.Config, t Target) domain.RunInfo {
	return domain.RunInfo{
		Version:    build.Version,
		Targets:    cfg.Targets,
		Variants:   t.Variants.Names(),
		Arch:       t.Arch,
		Variant:    t.Variant,
		StagePath:  cfg.StagePath(t.Arch, t.Variant),
		OutputPath: cfg.OutputDir,
	}
}

func packageRows(cfg *domain.Config, t Target) []report.PackageRow {
	pkgs := t.Graph.Packages()
	rows := make([]report.PackageRow, 0, len(pkgs))
	for _, pkg := range pkgs {
		if pkg == domain.AllPackages {
			rows = append(rows, report.PackageRow{Name: pkg, Label: report.AllLabel})
			continue
		}
		row := report.PackageRow{Name: pkg}
		if d, ok := cfg.Package(t.Arch, pkg); ok {
			row.Label = d.Label
			row.Source = cfg.SourcePath(d)
		}
		rows = append(rows, row)
	}
	return rows
}

// setupOTel installs a global TracerProvider reporting every span to the bridge.
func setupOTel(bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
	return tp
}
