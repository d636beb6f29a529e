package ports

import (
	"context"
	"io"

	"go.trai.ch/central/internal/core/domain"
)

// BuildTool is the underlying per-package build system.
//
//go:generate mockgen -source=build_tool.go -destination=mocks/mock_build_tool.go -package=mocks
type BuildTool interface {
	// Generators returns the supported generator choices keyed by their short name.
	Generators() map[string]string

	// Clean removes previously installed files and the build tree of the package.
	Clean(ctx context.Context, req domain.BuildRequest, out io.Writer) error

	// Configure generates the package build tree.
	Configure(ctx context.Context, req domain.BuildRequest, out io.Writer) error

	// Build compiles and installs the package into the stage.
	Build(ctx context.Context, req domain.BuildRequest, out io.Writer) error

	// InstalledFiles returns the files recorded in the package install manifest.
	// found is false when the package has never been built in this configuration.
	InstalledFiles(req domain.BuildRequest) (files []string, found bool, err error)
}
