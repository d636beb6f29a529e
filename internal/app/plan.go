package app

import (
	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/central/internal/engine/resolver"
)

// Plan holds the build orders of a run.
type Plan struct {
	// Packages is the selection the plan was computed from.
	Packages []string

	// Order is the target build order before tool separation. ALL is never part of it.
	Order []string

	// Tools is the host build order of the tools Order needs. It is empty unless the
	// selection is built with its closure.
	Tools resolver.ToolPlan

	// Target is Order with the packages already built as tools removed when the target is the host.
	Target []string
}

// NewPlan resolves the target order of sel and separates its host tools.
func NewPlan(cfg *domain.Config, t Target, sel Selection) (Plan, error) {
	order, err := resolver.New(t.Graph, cfg.OrderPolicy).BuildOrder(sel.Packages, sel.Closure)
	if err != nil {
		return Plan{}, err
	}
	order = resolver.Without(order, []string{domain.AllPackages})

	plan := Plan{Packages: sel.Packages, Order: order, Target: order}
	if !sel.Closure {
		return plan, nil
	}

	tools, ok, err := resolver.PlanTools(cfg, t.Arch, order)
	if err != nil {
		return Plan{}, err
	}
	if ok {
		plan.Tools = tools
		plan.Target = resolver.Separate(cfg, t.Arch, order, tools.Order)
	}
	return plan, nil
}

// Dependencies returns the listing of one package: its host tools and its closure,
// with the tools removed from the closure when the target is the host.
func Dependencies(cfg *domain.Config, t Target, pkg string) (tools, order []string, err error) {
	order, err = resolver.New(t.Graph, cfg.OrderPolicy).Order([]string{pkg})
	if err != nil {
		return nil, nil, err
	}
	order = resolver.Without(order, []string{domain.AllPackages})

	tp, ok, err := resolver.PlanTools(cfg, t.Arch, order)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, order, nil
	}
	return tp.Order, resolver.Separate(cfg, t.Arch, order, tp.Order), nil
}
