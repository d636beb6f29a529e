package config

import (
	"fmt"

	"go.trai.ch/central/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// Centralfile represents the structure of the central.yaml configuration file.
type Centralfile struct {
	Version       string                           `yaml:"version" validate:"omitempty,oneof=1"`
	Root          string                           `yaml:"root"`
	Host          string                           `yaml:"host"`
	HostArch      string                           `yaml:"host_arch"`
	DefaultTarget string                           `yaml:"default_target"`
	Targets       []string                         `yaml:"targets" validate:"required,min=1,dive,required"`
	OutputDir     string                           `yaml:"output_dir"`
	LogDir        string                           `yaml:"log_dir"`
	OrderPolicy   string                           `yaml:"order_policy" validate:"omitempty,oneof=dependency discovery"`
	BuildVariants map[string]ArchVariantsDTO       `yaml:"build_variants" validate:"required,min=1,dive"`
	Packages      map[string]map[string]PackageDTO `yaml:"packages" validate:"dive,dive"`
}

// ArchVariantsDTO holds the variants of one architecture.
type ArchVariantsDTO struct {
	Default   string                `yaml:"default" validate:"required"`
	Toolchain string                `yaml:"toolchain"`
	Variants  map[string]VariantDTO `yaml:"variants" validate:"required,min=1,dive"`
}

// VariantDTO is one build variant: its variables and the graph fragments concatenated into its graph.
type VariantDTO struct {
	Vars   map[string]string `yaml:"vars"`
	Graphs []FragmentDTO     `yaml:"graphs" validate:"required,min=1"`
}

// PackageDTO describes one package for one architecture.
type PackageDTO struct {
	Label string            `yaml:"label"`
	Path  string            `yaml:"path" validate:"required"`
	Tools []string          `yaml:"tools" validate:"dive,required"`
	Vars  map[string]string `yaml:"vars"`
}

// FragmentDTO is a package-to-dependencies mapping whose key order is significant.
type FragmentDTO struct {
	Edges domain.Fragment
}

// UnmarshalYAML decodes the mapping node by node so that declaration order is kept.
func (f *FragmentDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: graph must be a mapping of package to dependency list", node.Line)
	}

	f.Edges = make(domain.Fragment, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var deps []string
		switch {
		case value.Kind == yaml.ScalarNode && value.Tag == "!!null":
		case value.Kind == yaml.SequenceNode:
			if err := value.Decode(&deps); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: dependencies of %q must be a list", value.Line, key.Value)
		}

		f.Edges = append(f.Edges, domain.Edge{Package: key.Value, Deps: deps})
	}
	return nil
}
