// Package inspector reports what previous builds installed.
package inspector

import (
	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/central/internal/core/ports"
	"go.trai.ch/zerr"
)

// Inspector reads install manifests through the build tool.
type Inspector struct {
	tool  ports.BuildTool
	store ports.BuildRecordStore
}

// New creates a new Inspector.
func New(tool ports.BuildTool, store ports.BuildRecordStore) *Inspector {
	return &Inspector{tool: tool, store: store}
}

// Installed returns the install report of pkg for arch and variant.
// A package without a manifest is reported as domain.InstallRetry with no files.
func (i *Inspector) Installed(arch, pkg string, cfg *domain.Config, variant string) (domain.InstallReport, error) {
	req := domain.BuildRequest{Arch: arch, Variant: variant, Package: pkg, Config: cfg}

	files, found, err := i.tool.InstalledFiles(req)
	if err != nil {
		return domain.InstallReport{}, zerr.With(zerr.Wrap(err, "inspect "+pkg), "package", pkg)
	}
	if !found {
		return domain.InstallReport{Package: pkg, Status: domain.InstallRetry, Files: []string{}}, nil
	}

	report := domain.InstallReport{Package: pkg, Status: domain.InstallReady, Files: files}

	// The record only enriches the report.
	if rec, err := i.store.Get(cfg.OutputDir, arch, variant, pkg); err == nil {
		report.Record = rec
	}
	return report, nil
}
