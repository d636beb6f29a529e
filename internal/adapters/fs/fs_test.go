package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/central/internal/adapters/fs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// sourceTree creates
//
//	root/
//	  .git/config
//	  build/CMakeCache.txt
//	  src/zlib.c
//	  CMakeLists.txt
func sourceTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "config"), "git config")
	writeFile(t, filepath.Join(root, "build", "CMakeCache.txt"), "cache")
	writeFile(t, filepath.Join(root, "src", "zlib.c"), "int main(void) { return 0; }")
	writeFile(t, filepath.Join(root, "CMakeLists.txt"), "project(zlib C)")
	return root
}

func TestWalker_WalkFiles(t *testing.T) {
	root := sourceTree(t)

	tests := []struct {
		name    string
		ignores []string
		want    []string
	}{
		{
			name: "version control is skipped",
			want: []string{"CMakeLists.txt", "build/CMakeCache.txt", "src/zlib.c"},
		},
		{
			name:    "base name pattern",
			ignores: []string{"build"},
			want:    []string{"CMakeLists.txt", "src/zlib.c"},
		},
		{
			name:    "absolute path",
			ignores: []string{filepath.Join(root, "src")},
			want:    []string{"CMakeLists.txt", "build/CMakeCache.txt"},
		},
		{
			name:    "file pattern",
			ignores: []string{"*.txt"},
			want:    []string{"src/zlib.c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for path, err := range fs.NewWalker().WalkFiles(root, tt.ignores) {
				require.NoError(t, err)
				rel, err := filepath.Rel(root, path)
				require.NoError(t, err)
				got = append(got, filepath.ToSlash(rel))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	root := sourceTree(t)

	count := 0
	for range fs.NewWalker().WalkFiles(root, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

// unreadableTree returns a source tree whose src directory cannot be listed.
func unreadableTree(t *testing.T) (root, locked string) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	root = sourceTree(t)
	locked = filepath.Join(root, "src")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o750) })
	return root, locked
}

func TestWalker_WalkFiles_ReportsUnreadableDirectory(t *testing.T) {
	root, locked := unreadableTree(t)

	var files []string
	var walkErr error
	var errPath string
	for path, err := range fs.NewWalker().WalkFiles(root, []string{"build"}) {
		if err != nil {
			walkErr, errPath = err, path
			continue
		}
		files = append(files, path)
	}

	require.ErrorIs(t, walkErr, os.ErrPermission)
	assert.Equal(t, locked, errPath)
	assert.Equal(t, []string{filepath.Join(root, "CMakeLists.txt")}, files)
}

func TestHasher_ComputeFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zlib.c")
	writeFile(t, path, "hello world")

	hasher := fs.NewHasher(fs.NewWalker())

	hash1, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.NotZero(t, hash1)

	hash2, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2, "expected deterministic hash")

	_, err = hasher.ComputeFileHash(filepath.Join(t.TempDir(), "missing.c"))
	require.Error(t, err)
}

func TestHasher_SourceDigest(t *testing.T) {
	hasher := fs.NewHasher(fs.NewWalker())
	root := sourceTree(t)
	skip := []string{filepath.Join(root, "build")}

	base, err := hasher.SourceDigest(root, skip)
	require.NoError(t, err)
	assert.NotEmpty(t, base)

	t.Run("stable across locations", func(t *testing.T) {
		other := sourceTree(t)
		got, err := hasher.SourceDigest(other, []string{filepath.Join(other, "build")})
		require.NoError(t, err)
		assert.Equal(t, base, got)
	})

	t.Run("skipped output does not count", func(t *testing.T) {
		writeFile(t, filepath.Join(root, "build", "libz.a"), "archive")
		got, err := hasher.SourceDigest(root, skip)
		require.NoError(t, err)
		assert.Equal(t, base, got)
	})

	t.Run("content change", func(t *testing.T) {
		dir := sourceTree(t)
		writeFile(t, filepath.Join(dir, "src", "zlib.c"), "int main(void) { return 1; }")
		got, err := hasher.SourceDigest(dir, []string{filepath.Join(dir, "build")})
		require.NoError(t, err)
		assert.NotEqual(t, base, got)
	})

	t.Run("rename", func(t *testing.T) {
		dir := sourceTree(t)
		require.NoError(t, os.Rename(filepath.Join(dir, "src", "zlib.c"), filepath.Join(dir, "src", "deflate.c")))
		got, err := hasher.SourceDigest(dir, []string{filepath.Join(dir, "build")})
		require.NoError(t, err)
		assert.NotEqual(t, base, got)
	})
}

func TestHasher_SourceDigest_Errors(t *testing.T) {
	hasher := fs.NewHasher(fs.NewWalker())

	_, err := hasher.SourceDigest(filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat source directory")

	file := filepath.Join(t.TempDir(), "CMakeLists.txt")
	writeFile(t, file, "project(x)")
	_, err = hasher.SourceDigest(file, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestHasher_SourceDigest_UnreadableDirectory(t *testing.T) {
	root, _ := unreadableTree(t)

	digest, err := fs.NewHasher(fs.NewWalker()).SourceDigest(root, []string{filepath.Join(root, "build")})
	require.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), "failed to walk source directory")
	assert.Empty(t, digest)
}
