package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/central/internal/app"
	"go.trai.ch/central/internal/core/domain"
)

func target(t *testing.T, cfg *domain.Config, arch, variant string) app.Target {
	t.Helper()
	tg, err := app.ResolveTarget(cfg, arch, variant)
	require.NoError(t, err)
	return tg
}

func TestNewPlan(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		name      string
		arch      string
		sel       app.Selection
		wantOrder []string
		wantTools []string
		wantTgt   []string
	}{
		{
			name:      "selected packages only",
			arch:      "host",
			sel:       app.Selection{Packages: []string{"app", "lib"}},
			wantOrder: []string{"lib", "app"},
			wantTgt:   []string{"lib", "app"},
		},
		{
			name:      "host closure moves tools to the tools phase",
			arch:      "host",
			sel:       app.Selection{Packages: []string{"app"}, Closure: true},
			wantOrder: []string{"lib", "protoc", "app"},
			wantTools: []string{"protoc"},
			wantTgt:   []string{"lib", "app"},
		},
		{
			name:      "cross closure",
			arch:      crossArch,
			sel:       app.Selection{Packages: []string{"app"}, Closure: true},
			wantOrder: []string{"lib", "app"},
			wantTools: []string{"protoc"},
			wantTgt:   []string{"lib", "app"},
		},
		{
			name:      "ALL is never built",
			arch:      crossArch,
			sel:       app.Selection{Packages: []string{domain.AllPackages}, Closure: true},
			wantOrder: []string{"lib", "app"},
			wantTools: []string{"protoc"},
			wantTgt:   []string{"lib", "app"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := app.NewPlan(cfg, target(t, cfg, tt.arch, ""), tt.sel)
			require.NoError(t, err)
			assert.Equal(t, tt.sel.Packages, plan.Packages)
			assert.Equal(t, tt.wantOrder, plan.Order)
			assert.Equal(t, tt.wantTools, plan.Tools.Order)
			assert.Equal(t, tt.wantTgt, plan.Target)
			if tt.wantTools != nil {
				assert.Equal(t, "release", plan.Tools.Variant)
			}
		})
	}
}

func TestNewPlan_Cycle(t *testing.T) {
	cfg := testConfig(t)
	cfg.BuildVariants[crossArch].Variants["full"] = domain.Variant{Name: "full", Graph: domain.NewGraph(domain.Fragment{
		edge("app", "lib"),
		edge("lib", "app"),
	})}

	_, err := app.NewPlan(cfg, target(t, cfg, crossArch, ""), app.Selection{Packages: []string{"app"}})
	require.ErrorIs(t, err, domain.ErrCycleDetected)
	assert.Contains(t, err.Error(), "dependency cycle detected between lib and app")
}

func TestNewPlan_NoHostVariants(t *testing.T) {
	cfg := testConfig(t)
	delete(cfg.BuildVariants, hostArch)

	plan, err := app.NewPlan(cfg, target(t, cfg, crossArch, ""), app.Selection{Packages: []string{"app"}, Closure: true})
	require.NoError(t, err)
	assert.Empty(t, plan.Tools.Order)
	assert.Equal(t, []string{"lib", "app"}, plan.Target)
}

func TestDependencies(t *testing.T) {
	cfg := testConfig(t)

	tools, order, err := app.Dependencies(cfg, target(t, cfg, "host", ""), "app")
	require.NoError(t, err)
	assert.Equal(t, []string{"protoc"}, tools)
	assert.Equal(t, []string{"lib", "app"}, order)

	tools, order, err = app.Dependencies(cfg, target(t, cfg, crossArch, ""), "lib")
	require.NoError(t, err)
	assert.Empty(t, tools)
	assert.Equal(t, []string{"lib"}, order)
}
