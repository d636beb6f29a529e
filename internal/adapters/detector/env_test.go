package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/central/internal/adapters/detector"
)

func TestDetectEnvironment_CI(t *testing.T) {
	tests := []struct {
		name    string
		ciValue string
		wantCI  bool
	}{
		{name: "CI=true", ciValue: "true", wantCI: true},
		{name: "CI=1", ciValue: "1", wantCI: true},
		{name: "CI=false", ciValue: "false", wantCI: false},
		{name: "unset", ciValue: "", wantCI: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.ciValue)
			assert.Equal(t, tt.wantCI, detector.DetectEnvironment().CI)
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		flag string
		want detector.OutputMode
	}{
		{flag: "", want: detector.ModeAuto},
		{flag: "auto", want: detector.ModeAuto},
		{flag: "progress", want: detector.ModeProgress},
		{flag: "tui", want: detector.ModeProgress},
		{flag: "linear", want: detector.ModeLinear},
		{flag: "ci", want: detector.ModeLinear},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := detector.ParseMode(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := detector.ParseMode("fancy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output mode")
}

func TestResolve(t *testing.T) {
	tty := detector.Environment{IsTTY: true}
	pipe := detector.Environment{}
	ciEnv := detector.Environment{IsTTY: true, CI: true}

	tests := []struct {
		name    string
		env     detector.Environment
		mode    detector.OutputMode
		ci      bool
		verbose bool
		want    detector.OutputMode
	}{
		{name: "auto on a terminal", env: tty, mode: detector.ModeAuto, want: detector.ModeProgress},
		{name: "auto on a pipe", env: pipe, mode: detector.ModeAuto, want: detector.ModeLinear},
		{name: "auto under CI", env: ciEnv, mode: detector.ModeAuto, want: detector.ModeLinear},
		{name: "forced progress on a pipe", env: pipe, mode: detector.ModeProgress, want: detector.ModeProgress},
		{name: "forced linear on a terminal", env: tty, mode: detector.ModeLinear, want: detector.ModeLinear},
		{name: "ci flag wins", env: tty, mode: detector.ModeProgress, ci: true, want: detector.ModeLinear},
		{name: "verbose wins", env: tty, mode: detector.ModeProgress, verbose: true, want: detector.ModeLinear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.Resolve(tt.env, tt.mode, tt.ci, tt.verbose))
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "auto", detector.ModeAuto.String())
	assert.Equal(t, "progress", detector.ModeProgress.String())
	assert.Equal(t, "linear", detector.ModeLinear.String())
}
