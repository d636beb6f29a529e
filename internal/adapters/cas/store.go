// Package cas stores build records, one JSON file per package keyed by content hash.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.BuildRecordStore using a file-per-package strategy.
type Store struct{}

// NewStore creates a new build record store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the build record of a package. A missing record is not an error.
func (s *Store) Get(outputDir, arch, variant, pkg string) (*domain.BuildRecord, error) {
	filename := s.filename(outputDir, arch, variant, pkg)
	//nolint:gosec // Path is constructed from the output layout and a hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var rec domain.BuildRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "file", filename)
	}

	return &rec, nil
}

// Put stores the build record, replacing any previous one of the same package.
func (s *Store) Put(outputDir string, rec domain.BuildRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.filename(outputDir, rec.Arch, rec.Variant, rec.Package)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from the output layout and a hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

// Fingerprint hashes the canonical inputs of a build request.
func (s *Store) Fingerprint(req domain.BuildRequest) string {
	return hash(strings.Join(req.Inputs(), "\n"))
}

func (s *Store) filename(outputDir, arch, variant, pkg string) string {
	return filepath.Join(domain.RecordsPath(outputDir, arch, variant), hash(pkg)+".json")
}

func hash(s string) string {
	return strconv.FormatUint(xxhash.Sum64String(s), 16)
}
