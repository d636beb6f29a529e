package fs

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/central/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceHasher = (*Hasher)(nil)

// Hasher digests source trees with xxhash.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// SourceDigest hashes the relative path and content of every file under dir.
// The digest does not depend on where dir lives, so moving a checkout keeps it stable.
func (h *Hasher) SourceDigest(dir string, skip []string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat source directory"), "path", dir)
	}
	if !info.IsDir() {
		return "", zerr.With(zerr.New("source path is not a directory"), "path", dir)
	}

	digest := xxhash.New()
	for path, err := range h.walker.WalkFiles(dir, skip) {
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to walk source directory"), "path", path)
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		_, _ = digest.WriteString(filepath.ToSlash(rel))
		_, _ = digest.Write([]byte{0})

		sum, err := h.ComputeFileHash(path)
		if err != nil {
			return "", err
		}
		if err := binary.Write(digest, binary.LittleEndian, sum); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return strconv.FormatUint(digest.Sum64(), 16), nil
}
