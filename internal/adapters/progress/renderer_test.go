package progress_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/central/internal/adapters/progress"
	"go.trai.ch/central/internal/core/ports"
)

var _ ports.Renderer = (*progress.Renderer)(nil)

func TestRenderer_AdvancesPerPackage(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := progress.NewRenderer(&buf)
	now := time.Now()

	r.OnPlanEmit("target", "linux_amd64", []string{"zlib", "png", "app"})
	r.OnPackageStart("zlib", now)
	r.OnPackageLog("zlib", "-- Configuring done")
	r.OnPackageComplete("zlib", now, nil)
	r.OnPackageStart("png", now)
	r.OnPackageComplete("png", now, nil)

	current, total, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, int64(2), current)
	assert.Equal(t, int64(3), total)
	assert.NotContains(t, buf.String(), "-- Configuring done", "output of successful packages stays hidden")
	assert.Contains(t, buf.String(), "target linux_amd64")

	require.NoError(t, r.Stop())
	_, _, ok = r.Current()
	assert.False(t, ok)
}

func TestRenderer_FailurePrintsTail(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := progress.NewRenderer(&buf)
	r.SetTail(2)
	now := time.Now()

	r.OnPlanEmit("tools", "linux_amd64", []string{"protoc"})
	r.OnPackageStart("protoc", now)
	r.OnPackageLog("protoc", "line 1")
	r.OnPackageLog("protoc", "line 2")
	r.OnPackageLog("protoc", "CMake Error at CMakeLists.txt:3")
	r.OnPackageComplete("protoc", now, errors.New("configuring protoc: exit status 1"))

	out := buf.String()
	assert.Contains(t, out, "✗ protoc: configuring protoc: exit status 1\n")
	assert.Contains(t, out, "  line 2\n  CMake Error at CMakeLists.txt:3\n")
	assert.NotContains(t, out, "line 1")

	_, _, ok := r.Current()
	assert.False(t, ok)
	require.NoError(t, r.Stop())
}

func TestRenderer_NewPhaseReplacesBar(t *testing.T) {
	var buf bytes.Buffer
	r := progress.NewRenderer(&buf)
	now := time.Now()

	r.OnPlanEmit("tools", "linux_amd64", []string{"protoc"})
	r.OnPackageStart("protoc", now)
	r.OnPackageComplete("protoc", now, nil)
	r.OnPlanEmit("target", "aarch64_linux", []string{"zlib", "app"})

	current, total, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, int64(0), current)
	assert.Equal(t, int64(2), total)
}
