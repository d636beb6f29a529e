package domain

import (
	"maps"
	"slices"
	"strconv"
)

// BuildRequest is everything the underlying build tool needs to act on one package.
type BuildRequest struct {
	Arch      string
	Variant   string
	Package   string
	Debug     bool
	Verbose   bool
	Jobs      int
	Generator string
	Config    *Config
}

// Descriptor returns the package descriptor of the request's architecture.
func (r BuildRequest) Descriptor() (PackageDescriptor, bool) {
	if r.Config == nil {
		return PackageDescriptor{}, false
	}
	return r.Config.Package(r.Arch, r.Package)
}

// Inputs returns the canonical list of settings that shape the package build.
// Two requests with equal inputs configure the package identically.
func (r BuildRequest) Inputs() []string {
	inputs := []string{
		"arch=" + r.Arch,
		"variant=" + r.Variant,
		"package=" + r.Package,
		"generator=" + r.Generator,
		"debug=" + strconv.FormatBool(r.Debug),
	}
	if r.Config == nil {
		return inputs
	}

	if av, ok := r.Config.Variants(r.Arch); ok {
		inputs = append(inputs, "toolchain="+av.Toolchain)
	}
	if v, ok := r.Config.Variant(r.Arch, r.Variant); ok {
		inputs = append(inputs, sortedVars("variant.", v.Vars)...)
	}
	if d, ok := r.Descriptor(); ok {
		inputs = append(inputs, "path="+d.Path)
		inputs = append(inputs, sortedVars("package.", d.Vars)...)
	}
	for _, v := range r.Config.ExtraVars() {
		inputs = append(inputs, "extra."+v)
	}
	return inputs
}

func sortedVars(prefix string, vars map[string]string) []string {
	out := make([]string, 0, len(vars))
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		out = append(out, prefix+k+"="+vars[k])
	}
	return out
}
