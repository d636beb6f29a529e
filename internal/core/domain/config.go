package domain

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// OrderPolicy selects how the resolver turns discovery into a build order.
type OrderPolicy string

const (
	// OrderDependency emits each package after all of its dependencies (depth-first postorder).
	OrderDependency OrderPolicy = "dependency"

	// OrderDiscovery appends packages on first discovery (preorder) and reverses the whole list once.
	OrderDiscovery OrderPolicy = "discovery"
)

// ParseOrderPolicy maps a configuration value to an OrderPolicy. Empty selects OrderDependency.
func ParseOrderPolicy(s string) (OrderPolicy, error) {
	switch OrderPolicy(s) {
	case "", OrderDependency:
		return OrderDependency, nil
	case OrderDiscovery:
		return OrderDiscovery, nil
	default:
		return "", zerr.With(ErrUnknownOrderPolicy, "order_policy", s)
	}
}

// Variant is a named build configuration group under an architecture.
type Variant struct {
	Name  string
	Graph *Graph
	Vars  map[string]string
}

// ArchVariants holds the build variants of one architecture.
type ArchVariants struct {
	Default   string
	Toolchain string
	Variants  map[string]Variant
}

// Names returns the variant names in sorted order.
func (a ArchVariants) Names() []string {
	return slices.Sorted(maps.Keys(a.Variants))
}

// Config is the loaded build configuration.
// It is immutable: use WithExtraVars to derive a copy carrying command line overrides.
type Config struct {
	// Root is the absolute project root.
	Root string

	// Host is the alias that, used as a target, means the host architecture.
	Host string

	// HostArch is the architecture identifier of the machine running the build.
	HostArch string

	// DefaultTarget is the target used when none is requested.
	DefaultTarget string

	// Targets lists the supported architectures.
	Targets []string

	// OutputDir is the absolute output directory.
	OutputDir string

	// LogDir is the absolute log directory.
	LogDir string

	// OrderPolicy selects the resolver ordering.
	OrderPolicy OrderPolicy

	// BuildVariants is keyed by architecture.
	BuildVariants map[string]ArchVariants

	// Packages is keyed by architecture, then package name.
	Packages map[string]map[string]PackageDescriptor

	extraVars []string
}

// WithExtraVars returns a copy of the config carrying the given KEY=VALUE overrides.
// The receiver is left untouched.
func (c *Config) WithExtraVars(vars []string) (*Config, error) {
	for _, v := range vars {
		key, _, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, zerr.With(ErrInvalidExtraVar, "var", v)
		}
	}

	next := *c
	next.extraVars = append(slices.Clone(c.extraVars), vars...)
	return &next, nil
}

// ExtraVars returns the command line build variables in the order given.
func (c *Config) ExtraVars() []string {
	return slices.Clone(c.extraVars)
}

// IsTarget reports whether arch is in the supported target list.
func (c *Config) IsTarget(arch string) bool {
	return slices.Contains(c.Targets, arch)
}

// Variants returns the build variants of arch.
func (c *Config) Variants(arch string) (ArchVariants, bool) {
	av, ok := c.BuildVariants[arch]
	return av, ok
}

// Variant returns a build variant of arch.
func (c *Config) Variant(arch, name string) (Variant, bool) {
	av, ok := c.BuildVariants[arch]
	if !ok {
		return Variant{}, false
	}
	v, ok := av.Variants[name]
	return v, ok
}

// Package returns the descriptor of pkg for arch.
func (c *Config) Package(arch, pkg string) (PackageDescriptor, bool) {
	d, ok := c.Packages[arch][pkg]
	return d, ok
}

// SourcePath returns the absolute source directory of a descriptor.
func (c *Config) SourcePath(d PackageDescriptor) string {
	return filepath.Join(c.Root, d.Path)
}

// StagePath returns the install prefix of arch and variant.
func (c *Config) StagePath(arch, variant string) string {
	return StagePath(c.OutputDir, arch, variant)
}

// BuildPath returns the build tree of pkg.
func (c *Config) BuildPath(arch, variant, pkg string) string {
	return BuildPath(c.OutputDir, arch, variant, pkg)
}

// LogPath returns the build log of arch.
func (c *Config) LogPath(arch string) string {
	return LogPath(c.LogDir, arch)
}
