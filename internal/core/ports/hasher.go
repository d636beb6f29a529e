package ports

// SourceHasher summarizes package source trees.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type SourceHasher interface {
	// SourceDigest hashes the relative paths and contents of the files under dir.
	// Directories listed in skip are not descended.
	SourceDigest(dir string, skip []string) (string, error)
}
