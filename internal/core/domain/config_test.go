package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/central/internal/core/domain"
)

func TestConfig_WithExtraVars(t *testing.T) {
	base := &domain.Config{Root: "/work"}

	next, err := base.WithExtraVars([]string{"FOO=1", "BAR=a=b"})
	require.NoError(t, err)

	assert.Equal(t, []string{"FOO=1", "BAR=a=b"}, next.ExtraVars())
	assert.Empty(t, base.ExtraVars(), "base config must not change")

	again, err := next.WithExtraVars([]string{"BAZ="})
	require.NoError(t, err)
	assert.Equal(t, []string{"FOO=1", "BAR=a=b", "BAZ="}, again.ExtraVars())
	assert.Equal(t, []string{"FOO=1", "BAR=a=b"}, next.ExtraVars())
}

func TestConfig_WithExtraVars_Invalid(t *testing.T) {
	base := &domain.Config{}

	for _, v := range []string{"NOVALUE", "=1", " =x"} {
		_, err := base.WithExtraVars([]string{v})
		assert.ErrorContains(t, err, domain.ErrInvalidExtraVar.Error(), v)
	}
}

func TestConfig_Lookups(t *testing.T) {
	cfg := &domain.Config{
		Root:      "/work",
		Targets:   []string{"linux_amd64", "arm"},
		OutputDir: "/work/output",
		LogDir:    "/work/output/log",
		BuildVariants: map[string]domain.ArchVariants{
			"arm": {
				Default: "full",
				Variants: map[string]domain.Variant{
					"full": {Name: "full"},
					"mini": {Name: "mini"},
				},
			},
		},
		Packages: map[string]map[string]domain.PackageDescriptor{
			"arm": {"app": {Name: "app", Path: "src/app"}},
		},
	}

	assert.True(t, cfg.IsTarget("arm"))
	assert.False(t, cfg.IsTarget("mips"))

	av, ok := cfg.Variants("arm")
	require.True(t, ok)
	assert.Equal(t, []string{"full", "mini"}, av.Names())

	_, ok = cfg.Variant("arm", "debug")
	assert.False(t, ok)
	_, ok = cfg.Variant("mips", "full")
	assert.False(t, ok)

	d, ok := cfg.Package("arm", "app")
	require.True(t, ok)
	assert.Equal(t, "/work/src/app", cfg.SourcePath(d))

	assert.Equal(t, "/work/output/arm/full/stage", cfg.StagePath("arm", "full"))
	assert.Equal(t, "/work/output/arm/full/build/app", cfg.BuildPath("arm", "full", "app"))
	assert.Equal(t, "/work/output/log/arm/log", cfg.LogPath("arm"))
}

func TestParseOrderPolicy(t *testing.T) {
	p, err := domain.ParseOrderPolicy("")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderDependency, p)

	p, err = domain.ParseOrderPolicy("discovery")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderDiscovery, p)

	_, err = domain.ParseOrderPolicy("random")
	assert.ErrorContains(t, err, domain.ErrUnknownOrderPolicy.Error())
}
