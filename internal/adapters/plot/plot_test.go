package plot_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/central/internal/adapters/plot"
	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/central/internal/core/ports"
)

var _ ports.Plotter = (*plot.DOTPlotter)(nil)

func TestPlot(t *testing.T) {
	tests := []struct {
		name       string
		graph      *domain.Graph
		goldenName string
	}{
		{
			name: "fragments with declared ALL",
			graph: domain.NewGraph(
				domain.Fragment{
					{Package: "app", Deps: []string{"core", "protoc"}},
					{Package: "core", Deps: []string{"zlib"}},
				},
				domain.Fragment{
					{Package: "app", Deps: []string{"core"}},
					{Package: domain.AllPackages, Deps: []string{"app"}},
				},
			),
			goldenName: "plot_fragments",
		},
		{
			name:       "lone package",
			graph:      domain.NewGraph(domain.Fragment{{Package: "zlib"}}),
			goldenName: "plot_single",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, plot.New().Plot(&buf, "linux_amd64/full", tt.graph))

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestPlot_WriteError(t *testing.T) {
	err := plot.New().Plot(failingWriter{}, "g", domain.NewGraph())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}
