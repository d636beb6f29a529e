// Package resolver turns package graphs into dependency-first build orders
// and separates the host tools a cross build needs.
package resolver

import (
	"slices"

	"go.trai.ch/central/internal/core/domain"
)

// Visited is the run-scoped set of packages already placed in an order.
// Thread one Visited through successive Resolve calls that feed the same order.
type Visited map[string]struct{}

// NewVisited returns an empty Visited set.
func NewVisited() Visited {
	return make(Visited)
}

// Has reports whether pkg was already placed.
func (v Visited) Has(pkg string) bool {
	_, ok := v[pkg]
	return ok
}

// Resolver computes build orders over one graph.
type Resolver struct {
	graph  *domain.Graph
	policy domain.OrderPolicy
}

// New creates a Resolver. An empty policy selects domain.OrderDependency.
func New(g *domain.Graph, policy domain.OrderPolicy) *Resolver {
	if policy == "" {
		policy = domain.OrderDependency
	}
	return &Resolver{graph: g, policy: policy}
}

// Policy returns the ordering policy of the resolver.
func (r *Resolver) Policy() domain.OrderPolicy {
	return r.policy
}

// Resolve walks the graph depth-first from pkg and returns, as a fresh slice, the packages
// not yet in visited. Every returned package is added to visited; first discovery wins.
//
// With OrderDependency the slice is already dependency-first. With OrderDiscovery it is in
// discovery (pre)order and the concatenation of all parts must be reversed once by the caller.
// Order does both.
func (r *Resolver) Resolve(pkg string, visited Visited) ([]string, error) {
	var out []string
	var path []string
	onPath := make(map[string]bool)

	var walk func(p string) error
	walk = func(p string) error {
		visited[p] = struct{}{}
		if r.policy == domain.OrderDiscovery {
			out = append(out, p)
		}

		onPath[p] = true
		path = append(path, p)

		for _, dep := range r.graph.Deps(p) {
			if onPath[dep] {
				return domain.CycleError(path, dep)
			}
			if visited.Has(dep) {
				continue
			}
			if err := walk(dep); err != nil {
				return err
			}
		}

		onPath[p] = false
		path = path[:len(path)-1]

		if r.policy != domain.OrderDiscovery {
			out = append(out, p)
		}
		return nil
	}

	if visited.Has(pkg) {
		return nil, nil
	}
	if err := walk(pkg); err != nil {
		return nil, err
	}
	return out, nil
}

// Order resolves every package of pkgs into one dependency-first order, closure included.
func (r *Resolver) Order(pkgs []string) ([]string, error) {
	visited := NewVisited()
	var order []string

	for _, pkg := range pkgs {
		part, err := r.Resolve(pkg, visited)
		if err != nil {
			return nil, err
		}
		order = appendUnique(order, part)
	}

	if r.policy == domain.OrderDiscovery {
		slices.Reverse(order)
	}
	return order, nil
}

// BuildOrder resolves pkgs and, unless closure is set, keeps only the requested packages
// in their resolved relative order.
func (r *Resolver) BuildOrder(pkgs []string, closure bool) ([]string, error) {
	order, err := r.Order(pkgs)
	if err != nil {
		return nil, err
	}
	if closure {
		return order, nil
	}
	return Filter(order, pkgs), nil
}

// Filter keeps the elements of order that are in keep, preserving order.
func Filter(order, keep []string) []string {
	out := make([]string, 0, len(keep))
	for _, p := range order {
		if slices.Contains(keep, p) {
			out = append(out, p)
		}
	}
	return out
}

// Without drops the elements of drop from order, preserving order.
func Without(order, drop []string) []string {
	out := make([]string, 0, len(order))
	for _, p := range order {
		if !slices.Contains(drop, p) {
			out = append(out, p)
		}
	}
	return out
}

func appendUnique(order, part []string) []string {
	for _, p := range part {
		if !slices.Contains(order, p) {
			order = append(order, p)
		}
	}
	return order
}
