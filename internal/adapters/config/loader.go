// Package config provides the configuration loader for central.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/central/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultHostAlias is the target alias that stands for the host architecture.
const DefaultHostAlias = "host"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger   ports.Logger
	validate *validator.Validate
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Load finds central.yaml at or above cwd and returns the validated configuration.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}
	l.Logger.Debug("using " + configPath)

	var file Centralfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "file", configPath)
	}

	if err := l.validate.Struct(&file); err != nil {
		return nil, zerr.With(describeValidation(err), "file", configPath)
	}

	cfg, err := l.buildConfig(configPath, &file)
	if err != nil {
		return nil, zerr.With(err, "file", configPath)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) buildConfig(configPath string, file *Centralfile) (*domain.Config, error) {
	policy, err := domain.ParseOrderPolicy(file.OrderPolicy)
	if err != nil {
		return nil, err
	}

	root := resolvePath(filepath.Dir(configPath), file.Root, "")
	outputDir := resolvePath(root, file.OutputDir, domain.DefaultOutputDir)

	cfg := &domain.Config{
		Root:          root,
		Host:          withDefault(file.Host, DefaultHostAlias),
		HostArch:      withDefault(file.HostArch, runtime.GOOS+"_"+runtime.GOARCH),
		Targets:       slices.Clone(file.Targets),
		OutputDir:     outputDir,
		LogDir:        resolvePath(root, file.LogDir, filepath.Join(outputDir, "log")),
		OrderPolicy:   policy,
		BuildVariants: make(map[string]domain.ArchVariants, len(file.BuildVariants)),
		Packages:      make(map[string]map[string]domain.PackageDescriptor, len(file.Packages)),
	}
	cfg.DefaultTarget = withDefault(file.DefaultTarget, cfg.Host)

	if cfg.DefaultTarget != cfg.Host && !cfg.IsTarget(cfg.DefaultTarget) {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownArch, "default_target is not a target"), "default_target", cfg.DefaultTarget)
	}

	for _, arch := range slices.Sorted(maps.Keys(file.BuildVariants)) {
		av, err := buildArchVariants(arch, file.BuildVariants[arch])
		if err != nil {
			return nil, err
		}
		cfg.BuildVariants[arch] = av
	}

	for _, arch := range slices.Sorted(maps.Keys(file.Packages)) {
		pkgs := make(map[string]domain.PackageDescriptor, len(file.Packages[arch]))
		for name, dto := range file.Packages[arch] {
			pkgs[name] = domain.PackageDescriptor{
				Name:  name,
				Label: dto.Label,
				Path:  dto.Path,
				Tools: slices.Clone(dto.Tools),
				Vars:  maps.Clone(dto.Vars),
			}
		}
		cfg.Packages[arch] = pkgs
	}

	l.warnUnbuildableTools(cfg)
	return cfg, nil
}

func buildArchVariants(arch string, dto ArchVariantsDTO) (domain.ArchVariants, error) {
	av := domain.ArchVariants{
		Default:   dto.Default,
		Toolchain: dto.Toolchain,
		Variants:  make(map[string]domain.Variant, len(dto.Variants)),
	}

	if _, ok := dto.Variants[dto.Default]; !ok {
		err := zerr.Wrap(domain.ErrConfigInvalid, "default variant is not declared")
		err = zerr.With(err, "arch", arch)
		return av, zerr.With(err, "default", dto.Default)
	}

	for _, name := range slices.Sorted(maps.Keys(dto.Variants)) {
		v := dto.Variants[name]
		fragments := make([]domain.Fragment, 0, len(v.Graphs))
		for _, g := range v.Graphs {
			fragments = append(fragments, g.Edges)
		}

		graph := domain.NewGraph(fragments...)
		if err := graph.Validate(); err != nil {
			err = zerr.With(err, "arch", arch)
			return av, zerr.With(err, "variant", name)
		}

		av.Variants[name] = domain.Variant{Name: name, Graph: graph, Vars: maps.Clone(v.Vars)}
	}
	return av, nil
}

// warnUnbuildableTools reports tools that no host variant can build.
func (l *Loader) warnUnbuildableTools(cfg *domain.Config) {
	for _, arch := range slices.Sorted(maps.Keys(cfg.Packages)) {
		for _, name := range slices.Sorted(maps.Keys(cfg.Packages[arch])) {
			for _, tool := range cfg.Packages[arch][name].Tools {
				if _, ok := cfg.Package(cfg.HostArch, tool); !ok {
					l.Logger.Warn(fmt.Sprintf("tool %s of %s/%s has no descriptor for host %s", tool, arch, name, cfg.HostArch))
				}
			}
		}
	}
}

// describeValidation turns the first validator failure into a config error naming the field.
func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		wrapped := zerr.Wrap(domain.ErrConfigInvalid, fmt.Sprintf("%s fails %q", fe.Namespace(), fe.Tag()))
		return zerr.With(wrapped, "violations", len(fieldErrs))
	}
	return zerr.Wrap(err, domain.ErrConfigInvalid.Error())
}

func resolvePath(base, configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	if configured == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(base, configured))
}

func withDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
