// Package domain contains the core domain models of the package graph and build orchestration.
package domain

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// AllPackages is the sentinel package name standing for every concrete package of a graph.
const AllPackages = "ALL"

// Edge declares the ordered dependencies of one package inside a fragment.
type Edge struct {
	Package string
	Deps    []string
}

// Fragment is one declared mapping of package to dependency list.
// Edge order and dependency order are significant: they establish discovery order.
type Fragment []Edge

// Graph is the effective dependency graph of a build variant.
// It is the concatenation of the variant's fragments and is never mutated after construction.
type Graph struct {
	fragments []Fragment
	deps      map[string][]string
	concrete  []string
	declared  map[string]bool
}

// NewGraph concatenates the given fragments into a Graph.
// Dependencies of a package declared in several fragments are appended in fragment order,
// without merging or deduplication.
func NewGraph(fragments ...Fragment) *Graph {
	g := &Graph{
		fragments: fragments,
		deps:      make(map[string][]string),
		declared:  make(map[string]bool),
	}

	names := make(map[string]struct{})
	for _, f := range fragments {
		for _, e := range f {
			g.declared[e.Package] = true
			g.deps[e.Package] = append(g.deps[e.Package], e.Deps...)
			names[e.Package] = struct{}{}
			for _, d := range e.Deps {
				names[d] = struct{}{}
			}
		}
	}

	for name := range names {
		if name != AllPackages {
			g.concrete = append(g.concrete, name)
		}
	}
	slices.Sort(g.concrete)

	return g
}

// Fragments returns the fragments the graph was built from.
func (g *Graph) Fragments() []Fragment {
	return slices.Clone(g.fragments)
}

// Deps returns the declared dependencies of pkg in discovery order.
// An undeclared ALL depends on every concrete package in sorted order.
func (g *Graph) Deps(pkg string) []string {
	if pkg == AllPackages && !g.declared[AllPackages] {
		return slices.Clone(g.concrete)
	}
	return g.deps[pkg]
}

// Contains reports whether pkg is a package of the graph. ALL is always contained.
func (g *Graph) Contains(pkg string) bool {
	if pkg == AllPackages {
		return true
	}
	_, found := slices.BinarySearch(g.concrete, pkg)
	return found
}

// Packages returns every package of the graph, sorted, with ALL last.
// Packages referenced only as dependencies are included.
func (g *Graph) Packages() []string {
	out := make([]string, 0, len(g.concrete)+1)
	out = append(out, g.concrete...)
	return append(out, AllPackages)
}

// Concrete returns the sorted packages of the graph without ALL.
func (g *Graph) Concrete() []string {
	return slices.Clone(g.concrete)
}

// Validate checks the graph for cycles.
// Packages are visited in sorted order so the reported cycle is deterministic.
func (g *Graph) Validate() error {
	const (
		unvisited = iota
		visiting
		visited
	)
	state := make(map[string]int)
	var path []string

	var visit func(pkg string) error
	visit = func(pkg string) error {
		state[pkg] = visiting
		path = append(path, pkg)

		for _, dep := range g.Deps(pkg) {
			switch state[dep] {
			case visiting:
				return CycleError(path, dep)
			case unvisited:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		state[pkg] = visited
		path = path[:len(path)-1]
		return nil
	}

	for _, pkg := range g.Packages() {
		if state[pkg] == unvisited {
			if err := visit(pkg); err != nil {
				return err
			}
		}
	}
	return nil
}

// CycleError builds the error for a dependency edge from the tip of path back into path.
func CycleError(path []string, dep string) error {
	from := dep
	if len(path) > 0 {
		from = path[len(path)-1]
	}

	start := slices.Index(path, dep)
	if start < 0 {
		start = 0
	}
	cycle := append(slices.Clone(path[start:]), dep)

	err := zerr.Wrap(ErrCycleDetected, fmt.Sprintf("dependency cycle detected between %s and %s", from, dep))
	return zerr.With(err, "cycle", strings.Join(cycle, " -> "))
}

// SortPackages deduplicates and sorts pkgs, keeping ALL last when present.
func SortPackages(pkgs []string) []string {
	seen := make(map[string]struct{}, len(pkgs))
	out := make([]string, 0, len(pkgs))
	hasAll := false
	for _, p := range pkgs {
		if p == AllPackages {
			hasAll = true
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	slices.Sort(out)
	if hasAll {
		out = append(out, AllPackages)
	}
	return out
}
