package linear_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/central/internal/adapters/linear"
	"go.trai.ch/central/internal/core/ports"
)

var _ ports.Renderer = (*linear.Renderer)(nil)

func TestRenderer_PackageLifecycle(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.OnPlanEmit("target", "linux_amd64", []string{"zlib", "png"})
	r.OnPackageStart("zlib", start)
	r.OnPackageLog("zlib", "-- Configuring done")
	r.OnPackageLog("zlib", "")
	r.OnPackageLog("zlib", "[100%] Built target zlib")
	r.OnPackageComplete("zlib", start.Add(1500*time.Millisecond), nil)
	require.NoError(t, r.Stop())

	assert.Equal(t, "[zlib] -- Configuring done\n[zlib] [100%] Built target zlib\n", stdout.String())
	assert.Equal(t,
		"Planning to build 2 package(s) for linux_amd64 (target)\n"+
			"[zlib] Starting...\n"+
			"[zlib] ✓ Completed in 1.5s\n",
		stderr.String())
}

func TestRenderer_Failure(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.OnPackageStart("png", start)
	r.OnPackageComplete("png", start.Add(2*time.Second), errors.New("configuring png: exit status 1"))

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "[png] ✗ Failed after 2s: configuring png: exit status 1\n")
}
