// Package cmake drives CMake as the underlying per-package build tool.
package cmake

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/central/internal/core/ports"
	"go.trai.ch/zerr"
)

// ManifestFileName is the file in which CMake records every installed path.
const ManifestFileName = "install_manifest.txt"

// Binary is the CMake executable name.
const Binary = "cmake"

var generators = map[string]string{
	"make":        "Unix Makefiles",
	"ninja":       "Ninja",
	"ninja-multi": "Ninja Multi-Config",
	"xcode":       "Xcode",
	"codeblocks":  "CodeBlocks - Unix Makefiles",
	"eclipse":     "Eclipse CDT4 - Unix Makefiles",
}

// Tool implements ports.BuildTool on top of CMake.
type Tool struct {
	executor ports.Executor
	logger   ports.Logger
}

// New creates a new CMake Tool.
func New(executor ports.Executor, logger ports.Logger) *Tool {
	return &Tool{executor: executor, logger: logger}
}

// Generators returns the supported generator choices mapped to CMake generator names.
func (t *Tool) Generators() map[string]string {
	return maps.Clone(generators)
}

// Configure generates the build tree of the requested package.
func (t *Tool) Configure(ctx context.Context, req domain.BuildRequest, out io.Writer) error {
	cmd, err := ConfigureCommand(req)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(req.Config.BuildPath(req.Arch, req.Variant, req.Package), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create build directory"), "package", req.Package)
	}

	return t.executor.Execute(ctx, cmd, out, out)
}

// Build compiles the package and installs it into the shared stage.
func (t *Tool) Build(ctx context.Context, req domain.BuildRequest, out io.Writer) error {
	for _, cmd := range BuildCommands(req) {
		if err := t.executor.Execute(ctx, cmd, out, out); err != nil {
			return err
		}
	}
	return nil
}

// Clean removes every file the last install recorded, then the build tree.
func (t *Tool) Clean(_ context.Context, req domain.BuildRequest, out io.Writer) error {
	files, _, err := t.InstalledFiles(req)
	if err != nil {
		return err
	}

	for _, f := range files {
		if err := os.Remove(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "file", f)
		}
		_, _ = fmt.Fprintf(out, "-- Removing: %s\n", f)
	}

	buildDir := req.Config.BuildPath(req.Arch, req.Variant, req.Package)
	if err := os.RemoveAll(buildDir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "dir", buildDir)
	}
	t.logger.Debug(fmt.Sprintf("%s: removed %d installed files and %s", req.Package, len(files), buildDir))
	return nil
}

// InstalledFiles reads the install manifest of the package.
// found is false when the package has never been installed in this configuration.
func (t *Tool) InstalledFiles(req domain.BuildRequest) ([]string, bool, error) {
	manifest := filepath.Join(req.Config.BuildPath(req.Arch, req.Variant, req.Package), ManifestFileName)

	// #nosec G304 -- manifest path is derived from the output layout
	data, err := os.ReadFile(manifest)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "manifest", manifest)
	}

	files := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			files = append(files, line)
		}
	}
	return files, true, nil
}

// ConfigureCommand returns the cmake invocation generating the package build tree.
func ConfigureCommand(req domain.BuildRequest) (*domain.Command, error) {
	cfg := req.Config
	d, ok := req.Descriptor()
	if !ok {
		err := zerr.With(domain.ErrMissingPackageDescriptor, "package", req.Package)
		return nil, zerr.With(err, "arch", req.Arch)
	}

	stage := cfg.StagePath(req.Arch, req.Variant)
	args := []string{
		Binary,
		"-S", cfg.SourcePath(d),
		"-B", cfg.BuildPath(req.Arch, req.Variant, req.Package),
	}

	if req.Generator != "" {
		gen, ok := generators[req.Generator]
		if !ok {
			return nil, zerr.With(domain.ErrUnsupportedGenerator, "generator", req.Generator)
		}
		args = append(args, "-G", gen)
	}

	buildType := "Release"
	if req.Debug {
		buildType = "Debug"
	}
	args = append(args,
		"-DCMAKE_BUILD_TYPE="+buildType,
		"-DCMAKE_INSTALL_PREFIX="+stage,
		"-DCMAKE_PREFIX_PATH="+stage,
	)

	if av, ok := cfg.Variants(req.Arch); ok && av.Toolchain != "" {
		toolchain := av.Toolchain
		if !filepath.IsAbs(toolchain) {
			toolchain = filepath.Join(cfg.Root, toolchain)
		}
		args = append(args, "-DCMAKE_TOOLCHAIN_FILE="+toolchain)
	}

	if req.Arch != cfg.HostArch {
		if hv, ok := cfg.Variants(cfg.HostArch); ok {
			args = append(args, "-DCMAKE_PROGRAM_PATH="+filepath.Join(cfg.StagePath(cfg.HostArch, hv.Default), "bin"))
		}
	}

	if req.Verbose {
		args = append(args, "-DCMAKE_VERBOSE_MAKEFILE=ON")
	}

	if v, ok := cfg.Variant(req.Arch, req.Variant); ok {
		args = append(args, defines(v.Vars)...)
	}
	args = append(args, defines(d.Vars)...)
	for _, v := range cfg.ExtraVars() {
		args = append(args, "-D"+v)
	}

	return &domain.Command{Args: args, Dir: cfg.Root}, nil
}

// BuildCommands returns the compile and install invocations of the package.
func BuildCommands(req domain.BuildRequest) []*domain.Command {
	buildDir := req.Config.BuildPath(req.Arch, req.Variant, req.Package)

	build := []string{Binary, "--build", buildDir}
	if req.Jobs > 0 {
		build = append(build, "--parallel", strconv.Itoa(req.Jobs))
	}
	if req.Verbose {
		build = append(build, "--verbose")
	}

	return []*domain.Command{
		{Args: build, Dir: req.Config.Root},
		{Args: []string{Binary, "--install", buildDir}, Dir: req.Config.Root},
	}
}

func defines(vars map[string]string) []string {
	out := make([]string, 0, len(vars))
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		out = append(out, "-D"+k+"="+vars[k])
	}
	return out
}
