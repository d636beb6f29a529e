package ports

import "go.trai.ch/central/internal/core/domain"

// BuildRecordStore defines the interface for storing and retrieving build records.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildRecordStore interface {
	// Get retrieves the record of a package for an architecture and variant.
	// Returns nil, nil if not found.
	Get(outputDir, arch, variant, pkg string) (*domain.BuildRecord, error)

	// Put stores the record.
	Put(outputDir string, record domain.BuildRecord) error

	// Fingerprint summarizes the inputs of a build request.
	Fingerprint(req domain.BuildRequest) string
}
