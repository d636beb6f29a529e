package ports

import (
	"io"

	"go.trai.ch/central/internal/core/domain"
)

// Plotter renders a package graph.
//
//go:generate mockgen -source=plotter.go -destination=mocks/mock_plotter.go -package=mocks
type Plotter interface {
	Plot(w io.Writer, name string, g *domain.Graph) error
}
