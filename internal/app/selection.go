package app

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/central/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// Target is the effective architecture and build variant of a run.
type Target struct {
	Arch     string
	Variant  string
	Variants domain.ArchVariants
	Graph    *domain.Graph
}

// ResolveTarget applies the configured defaults to the requested architecture and variant.
// An empty arch selects the default target; the host alias selects the host architecture.
func ResolveTarget(cfg *domain.Config, arch, variant string) (Target, error) {
	if arch == "" {
		arch = cfg.DefaultTarget
	}
	if arch == cfg.Host {
		arch = cfg.HostArch
	}
	if !cfg.IsTarget(arch) {
		return Target{}, zerr.With(zerr.With(domain.ErrUnknownArch, "arch", arch),
			"targets", strings.Join(cfg.Targets, ", "))
	}

	av, ok := cfg.Variants(arch)
	if !ok {
		return Target{}, zerr.With(domain.ErrArchNotInVariants, "arch", arch)
	}

	if variant == "" {
		variant = av.Default
	}
	v, ok := av.Variants[variant]
	if !ok {
		return Target{}, zerr.With(zerr.With(domain.ErrUnknownVariant, "variant", variant),
			"available", strings.Join(av.Names(), ","))
	}

	return Target{Arch: arch, Variant: variant, Variants: av, Graph: v.Graph}, nil
}

// InferPackages returns the package whose source directory contains cwd.
// The most specific source directory wins. No match yields nil.
func InferPackages(cfg *domain.Config, arch, cwd string) []string {
	cwd = filepath.Clean(cwd)

	best, bestLen := "", -1
	pkgs := cfg.Packages[arch]
	for _, name := range slices.Sorted(maps.Keys(pkgs)) {
		src := filepath.Clean(cfg.SourcePath(pkgs[name]))
		rel, err := filepath.Rel(src, cwd)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if len(src) > bestLen {
			best, bestLen = name, len(src)
		}
	}

	if bestLen < 0 {
		return nil
	}
	return []string{best}
}

// Partition splits requested into packages of g and unknown names, preserving order.
func Partition(g *domain.Graph, requested []string) (known, unknown []string) {
	for _, pkg := range requested {
		if g.Contains(pkg) {
			known = append(known, pkg)
		} else {
			unknown = append(unknown, pkg)
		}
	}
	return known, unknown
}

// Selection is the effective package set of a run.
type Selection struct {
	// Packages is deduplicated and sorted, with ALL last.
	Packages []string
	// Closure is true when dependencies are built along with the packages.
	Closure bool
}

// Select applies exclusivity and deduplication to the requested packages of g.
// Selecting exactly ALL forces closure mode.
func Select(g *domain.Graph, requested []string, exclusive, closure bool) (Selection, error) {
	pkgs := requested
	if exclusive {
		if len(requested) == 0 {
			return Selection{}, domain.ErrExclusiveEmpty
		}
		if slices.Contains(requested, domain.AllPackages) {
			return Selection{}, domain.ErrExclusiveWithAll
		}
		pkgs = resolver.Without(g.Concrete(), requested)
	}

	pkgs = domain.SortPackages(pkgs)
	if len(pkgs) == 1 && pkgs[0] == domain.AllPackages {
		closure = true
	}
	return Selection{Packages: pkgs, Closure: closure}, nil
}
