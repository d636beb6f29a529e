package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/central/cmd/central/commands"
	"go.trai.ch/central/internal/app"
	"go.trai.ch/central/internal/build"
	"go.trai.ch/central/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type mockApp struct {
	runFunc func(ctx context.Context, opts app.Options) error
}

func (m *mockApp) Run(ctx context.Context, opts app.Options) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, opts)
	}
	return nil
}

type verboseLogger struct {
	*mocks.MockLogger
	verbose bool
}

func (l *verboseLogger) SetVerbose(enable bool) {
	l.verbose = enable
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.Options
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.Options) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock, mocks.NewMockLogger(gomock.NewController(t)))
		cli.SetArgs([]string{
			"zlib,openssl", "curl",
			"-t", "aarch64_linux", "-r", "minimal",
			"-d", "-a", "-e", "-c", "-b", "-l", "-i", "-p",
			"-j", "8", "-g", "ninja",
			"-D", "CMAKE_C_FLAGS=-O2,WITH_SSL=ON", "-D", "EXTRA=1",
			"--output-mode", "linear", "--ci", "--metrics-file", "/tmp/central.prom",
		})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.Options{
			Packages:    []string{"zlib", "openssl", "curl"},
			Arch:        "aarch64_linux",
			Variant:     "minimal",
			Debug:       true,
			Clean:       true,
			CleanBuild:  true,
			List:        true,
			Dep:         true,
			Exclusive:   true,
			Info:        true,
			Plot:        true,
			Jobs:        8,
			Generator:   "ninja",
			ExtraVars:   []string{"CMAKE_C_FLAGS=-O2", "WITH_SSL=ON", "EXTRA=1"},
			OutputMode:  "linear",
			CI:          true,
			MetricsFile: "/tmp/central.prom",
		}, captured)
	})

	t.Run("defaults", func(t *testing.T) {
		var captured app.Options
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.Options) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock, mocks.NewMockLogger(gomock.NewController(t)))
		cli.SetArgs([]string{})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Empty(t, captured.Packages)
		assert.Equal(t, "auto", captured.OutputMode)
		assert.Zero(t, captured.Jobs)
	})

	t.Run("verbose enables debug logging", func(t *testing.T) {
		log := &verboseLogger{MockLogger: mocks.NewMockLogger(gomock.NewController(t))}

		cli := commands.New(&mockApp{}, log)
		cli.SetArgs([]string{"zlib", "--verbose"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.True(t, log.verbose)
	})

	t.Run("short verbose flag is not taken by version", func(t *testing.T) {
		var captured app.Options
		log := &verboseLogger{MockLogger: mocks.NewMockLogger(gomock.NewController(t))}
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.Options) error {
				captured = opts
				return nil
			},
		}

		var cli *commands.CLI
		require.NotPanics(t, func() { cli = commands.New(mock, log) })
		cli.SetArgs([]string{"-v", "zlib"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.True(t, captured.Verbose)
		assert.Equal(t, []string{"zlib"}, captured.Packages)
		assert.True(t, log.verbose)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.Options) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock, mocks.NewMockLogger(gomock.NewController(t)))
		cli.SetArgs([]string{"zlib"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{
		runFunc: func(_ context.Context, _ app.Options) error {
			panic("should not be called")
		},
	}, mocks.NewMockLogger(gomock.NewController(t)))

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "central version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", buf.String())
}

func TestCommands_VersionFlag(t *testing.T) {
	cli := commands.New(&mockApp{
		runFunc: func(_ context.Context, _ app.Options) error {
			panic("should not be called")
		},
	}, mocks.NewMockLogger(gomock.NewController(t)))

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "central version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", buf.String())
}
