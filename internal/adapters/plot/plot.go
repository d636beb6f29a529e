// Package plot renders package graphs in the Graphviz DOT language.
package plot

import (
	"fmt"
	"io"
	"strings"

	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/zerr"
)

// DOTPlotter implements ports.Plotter.
type DOTPlotter struct{}

// New creates a DOTPlotter.
func New() *DOTPlotter {
	return &DOTPlotter{}
}

// Plot writes g as a DOT digraph named name. Edges point from a package to its
// dependencies, in declaration order, with duplicates across fragments dropped.
func (p *DOTPlotter) Plot(w io.Writer, name string, g *domain.Graph) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "digraph %q {\n", name)
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, pkg := range g.Concrete() {
		fmt.Fprintf(&sb, "  %q;\n", pkg)
	}

	var edges []string
	seen := make(map[string]bool)
	hasAll := false
	for _, f := range g.Fragments() {
		for _, e := range f {
			if e.Package == domain.AllPackages {
				hasAll = true
			}
			for _, dep := range e.Deps {
				line := fmt.Sprintf("  %q -> %q;\n", e.Package, dep)
				if seen[line] {
					continue
				}
				seen[line] = true
				edges = append(edges, line)
			}
		}
	}
	if hasAll {
		fmt.Fprintf(&sb, "  %q [shape=doubleoctagon];\n", domain.AllPackages)
	}

	if len(edges) > 0 {
		sb.WriteString("\n")
		for _, line := range edges {
			sb.WriteString(line)
		}
	}
	sb.WriteString("}\n")

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return zerr.With(zerr.Wrap(err, "write graph"), "graph", name)
	}
	return nil
}
