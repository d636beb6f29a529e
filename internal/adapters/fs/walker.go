// Package fs hashes package source trees.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file under root in lexical order, skipping version control directories.
// An ignore entry is either a base name pattern or an absolute path; matching directories are not descended.
// A path that cannot be read is yielded with its error and ends the walk.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				yield(path, err)
				return filepath.SkipAll
			}

			if path != root && w.ignored(path, d, ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) ignored(path string, d fs.DirEntry, ignores []string) bool {
	name := d.Name()
	if d.IsDir() && (name == ".git" || name == ".jj" || name == ".svn") {
		return true
	}

	for _, ignore := range ignores {
		if filepath.IsAbs(ignore) {
			if filepath.Clean(ignore) == path {
				return true
			}
			continue
		}
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
