package resolver

import "go.trai.ch/central/internal/core/domain"

// Tools returns the host tool packages needed to build order for arch, in discovery order.
// A tool's own tools are taken from its host descriptor, transitively.
func Tools(cfg *domain.Config, arch string, order []string) []string {
	var tools []string
	seen := make(map[string]bool)

	var add func(tool string)
	add = func(tool string) {
		if seen[tool] {
			return
		}
		seen[tool] = true
		tools = append(tools, tool)

		if d, ok := cfg.Package(cfg.HostArch, tool); ok {
			for _, t := range d.Tools {
				add(t)
			}
		}
	}

	for _, pkg := range order {
		d, ok := cfg.Package(arch, pkg)
		if !ok {
			continue
		}
		for _, t := range d.Tools {
			add(t)
		}
	}
	return tools
}

// ToolPlan is the host-scoped build order of a cross build.
type ToolPlan struct {
	// Variant is the host default variant the tools are built with.
	Variant string
	// Order is the dependency-first host build order.
	Order []string
}

// PlanTools computes the host build order for the tools that order needs.
// It returns false when the host architecture has no build variants, in which case
// target packages are assumed to be self-sufficient.
func PlanTools(cfg *domain.Config, arch string, order []string) (ToolPlan, bool, error) {
	hostVariants, ok := cfg.Variants(cfg.HostArch)
	if !ok {
		return ToolPlan{}, false, nil
	}
	variant, ok := hostVariants.Variants[hostVariants.Default]
	if !ok || variant.Graph == nil {
		return ToolPlan{}, false, nil
	}

	tools := Tools(cfg, arch, order)
	hostOrder, err := New(variant.Graph, cfg.OrderPolicy).Order(tools)
	if err != nil {
		return ToolPlan{}, false, err
	}
	return ToolPlan{Variant: hostVariants.Default, Order: hostOrder}, true, nil
}

// Separate removes from the target order the packages already built as tools
// when the target architecture is the host.
func Separate(cfg *domain.Config, arch string, target, tools []string) []string {
	if arch != cfg.HostArch {
		return target
	}
	return Without(target, tools)
}
