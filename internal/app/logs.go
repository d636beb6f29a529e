package app

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/zerr"
)

// logFiles owns the per-architecture build logs of one run.
// Each log is truncated when first opened in the run and shared by later phases.
type logFiles struct {
	cfg   *domain.Config
	files map[string]*os.File
}

func newLogFiles(cfg *domain.Config) *logFiles {
	return &logFiles{cfg: cfg, files: make(map[string]*os.File)}
}

// Open returns the log of arch.
func (l *logFiles) Open(arch string) (io.Writer, error) {
	if f, ok := l.files[arch]; ok {
		return f, nil
	}

	path := l.cfg.LogPath(arch)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLogFileOpenFailed.Error()), "path", path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLogFileOpenFailed.Error()), "path", path)
	}
	l.files[arch] = f
	return f, nil
}

// Close closes every opened log.
func (l *logFiles) Close() {
	for _, f := range l.files {
		_ = f.Close()
	}
}
