package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/central/internal/engine/resolver"
)

const (
	hostArch  = "linux_amd64"
	crossArch = "aarch64"
)

// crossConfig has a host and a cross architecture sharing the same graph shape:
// A needs tool T at build time, B depends on A.
func crossConfig(t *testing.T, withHostVariants bool) *domain.Config {
	t.Helper()

	graph := func() *domain.Graph {
		return domain.NewGraph(domain.Fragment{
			edge("B", "A"),
			edge("A", "T"),
			edge("T", "gen"),
		})
	}
	packages := func() map[string]domain.PackageDescriptor {
		return map[string]domain.PackageDescriptor{
			"T":   {Name: "T", Path: "tools/t", Tools: []string{"gen"}},
			"gen": {Name: "gen", Path: "tools/gen"},
			"A":   {Name: "A", Path: "src/a", Tools: []string{"T"}},
			"B":   {Name: "B", Path: "src/b"},
		}
	}

	cfg := &domain.Config{
		HostArch: hostArch,
		Targets:  []string{hostArch, crossArch},
		BuildVariants: map[string]domain.ArchVariants{
			crossArch: {
				Default:  "full",
				Variants: map[string]domain.Variant{"full": {Name: "full", Graph: graph()}},
			},
		},
		Packages: map[string]map[string]domain.PackageDescriptor{
			hostArch:  packages(),
			crossArch: packages(),
		},
	}
	if withHostVariants {
		cfg.BuildVariants[hostArch] = domain.ArchVariants{
			Default:  "release",
			Variants: map[string]domain.Variant{"release": {Name: "release", Graph: graph()}},
		}
	}
	require.NoError(t, graph().Validate())
	return cfg
}

func TestTools_Transitive(t *testing.T) {
	cfg := crossConfig(t, true)

	// A needs T on the host, and T's host descriptor needs gen.
	tools := resolver.Tools(cfg, crossArch, []string{"A", "B"})
	assert.Equal(t, []string{"T", "gen"}, tools)

	tools = resolver.Tools(cfg, crossArch, []string{"gen", "T", "A", "B"})
	assert.Equal(t, []string{"gen", "T"}, tools)
}

func TestTools_UnknownPackagesIgnored(t *testing.T) {
	cfg := crossConfig(t, true)
	assert.Empty(t, resolver.Tools(cfg, crossArch, []string{"missing", domain.AllPackages}))
}

func TestPlanTools(t *testing.T) {
	t.Run("host equals target removes tools from the target order", func(t *testing.T) {
		cfg := crossConfig(t, true)
		target := []string{"gen", "T", "A", "B"}

		plan, ok, err := resolver.PlanTools(cfg, hostArch, target)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "release", plan.Variant)
		assert.Equal(t, []string{"gen", "T"}, plan.Order)

		assert.Equal(t, []string{"A", "B"}, resolver.Separate(cfg, hostArch, target, plan.Order))
	})

	t.Run("cross target keeps its own copy of the tools", func(t *testing.T) {
		cfg := crossConfig(t, true)
		target := []string{"gen", "T", "A", "B"}

		plan, ok, err := resolver.PlanTools(cfg, crossArch, target)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []string{"gen", "T"}, plan.Order)

		assert.Equal(t, target, resolver.Separate(cfg, crossArch, target, plan.Order))
	})

	t.Run("host without build variants skips separation", func(t *testing.T) {
		cfg := crossConfig(t, false)

		plan, ok, err := resolver.PlanTools(cfg, crossArch, []string{"A"})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, plan.Order)
	})
}

func TestPlanTools_SingleToolScenario(t *testing.T) {
	// Target order [T, A, B] where T is a tool required by A.
	graph := domain.NewGraph(domain.Fragment{edge("B", "A"), edge("A", "T"), edge("T")})
	cfg := &domain.Config{
		HostArch: hostArch,
		BuildVariants: map[string]domain.ArchVariants{
			hostArch: {Default: "d", Variants: map[string]domain.Variant{"d": {Graph: graph}}},
		},
		Packages: map[string]map[string]domain.PackageDescriptor{
			hostArch: {"A": {Tools: []string{"T"}}, "T": {}, "B": {}},
		},
	}

	target, err := resolver.New(graph, domain.OrderDependency).BuildOrder([]string{"B"}, true)
	require.NoError(t, err)
	require.Equal(t, []string{"T", "A", "B"}, target)

	plan, ok, err := resolver.PlanTools(cfg, hostArch, target)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"T"}, plan.Order)
	assert.Equal(t, []string{"A", "B"}, resolver.Separate(cfg, hostArch, target, plan.Order))
}
