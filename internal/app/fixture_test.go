package app_test

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"go.trai.ch/central/internal/adapters/cas"
	"go.trai.ch/central/internal/adapters/linear"
	"go.trai.ch/central/internal/adapters/telemetry"
	"go.trai.ch/central/internal/app"
	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/central/internal/core/ports/mocks"
	"go.trai.ch/central/internal/engine/inspector"
	"go.trai.ch/central/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

const (
	hostArch  = "linux_amd64"
	crossArch = "aarch64_linux"
)

func edge(pkg string, deps ...string) domain.Edge {
	return domain.Edge{Package: pkg, Deps: deps}
}

// testConfig describes a project where app needs the host tool protoc at build time.
//
//	host:  app -> lib, protoc
//	cross: app -> lib
func testConfig(t *testing.T) *domain.Config {
	t.Helper()
	root := t.TempDir()
	out := filepath.Join(root, "output")

	return &domain.Config{
		Root:          root,
		Host:          "host",
		HostArch:      hostArch,
		DefaultTarget: "host",
		Targets:       []string{hostArch, crossArch},
		OutputDir:     out,
		LogDir:        filepath.Join(out, "log"),
		OrderPolicy:   domain.OrderDependency,
		BuildVariants: map[string]domain.ArchVariants{
			hostArch: {
				Default: "release",
				Variants: map[string]domain.Variant{
					"release": {Name: "release", Graph: domain.NewGraph(domain.Fragment{
						edge("app", "lib", "protoc"),
						edge("lib"),
						edge("protoc"),
					})},
				},
			},
			crossArch: {
				Default: "full",
				Variants: map[string]domain.Variant{
					"full": {Name: "full", Graph: domain.NewGraph(domain.Fragment{
						edge("app", "lib"),
						edge("lib"),
					})},
					"minimal": {Name: "minimal", Graph: domain.NewGraph(domain.Fragment{
						edge("lib"),
					})},
				},
			},
		},
		Packages: map[string]map[string]domain.PackageDescriptor{
			hostArch: {
				"app":    {Name: "app", Label: "Application", Path: "src/app", Tools: []string{"protoc"}},
				"lib":    {Name: "lib", Label: "Library", Path: "src/lib"},
				"protoc": {Name: "protoc", Label: "Protocol compiler", Path: "tools/protoc"},
			},
			crossArch: {
				"app": {Name: "app", Label: "Application", Path: "src/app", Tools: []string{"protoc"}},
				"lib": {Name: "lib", Label: "Library", Path: "src/lib"},
			},
		},
	}
}

type fixture struct {
	loader  *mocks.MockConfigLoader
	tool    *mocks.MockBuildTool
	plotter *mocks.MockPlotter
	metrics *mocks.MockMetrics
	logger  *mocks.MockLogger
	app     *app.App
	stdout  *bytes.Buffer
	cfg     *domain.Config
}

func newFixture(t *testing.T, cfg *domain.Config) *fixture {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	ctrl := gomock.NewController(t)
	f := &fixture{
		loader:  mocks.NewMockConfigLoader(ctrl),
		tool:    mocks.NewMockBuildTool(ctrl),
		plotter: mocks.NewMockPlotter(ctrl),
		metrics: mocks.NewMockMetrics(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
		stdout:  &bytes.Buffer{},
		cfg:     cfg,
	}

	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.metrics.EXPECT().PackageCompleted(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	f.metrics.EXPECT().PhaseCompleted(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	if cfg != nil {
		f.loader.EXPECT().Load(gomock.Any()).Return(cfg, nil).AnyTimes()
	}

	store := cas.NewStore()
	sched := scheduler.NewScheduler(f.tool, store, telemetry.NewNoOpTracer(), f.metrics, f.logger)
	f.app = app.New(f.loader, f.tool, f.plotter, f.metrics, f.logger, sched, inspector.New(f.tool, store)).
		WithOutput(f.stdout, io.Discard).
		WithRenderer(linear.NewRenderer(io.Discard, io.Discard))
	return f
}

// req matches the BuildRequest of pkg for arch.
func req(arch, pkg string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		r, ok := x.(domain.BuildRequest)
		return ok && r.Arch == arch && r.Package == pkg
	})
}
