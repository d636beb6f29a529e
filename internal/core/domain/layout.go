package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "central.yaml"

	// CentralDirName is the name of the per-variant metadata directory.
	CentralDirName = ".central"

	// RecordsDirName is the name of the build record directory.
	RecordsDirName = "records"

	// StageDirName is the name of the per-variant install prefix.
	StageDirName = "stage"

	// BuildDirName is the name of the per-variant build tree root.
	BuildDirName = "build"

	// LogFileName is the name of the per-architecture build log.
	LogFileName = "log"

	// DefaultOutputDir is the output directory used when the config does not set one.
	DefaultOutputDir = "output"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// VariantDir returns <output>/<arch>/<variant>.
func VariantDir(outputDir, arch, variant string) string {
	return filepath.Join(outputDir, arch, variant)
}

// StagePath returns the install prefix shared by every package of an architecture and variant.
func StagePath(outputDir, arch, variant string) string {
	return filepath.Join(VariantDir(outputDir, arch, variant), StageDirName)
}

// BuildPath returns the build tree of a single package.
func BuildPath(outputDir, arch, variant, pkg string) string {
	return filepath.Join(VariantDir(outputDir, arch, variant), BuildDirName, pkg)
}

// RecordsPath returns the directory holding build records for an architecture and variant.
func RecordsPath(outputDir, arch, variant string) string {
	return filepath.Join(VariantDir(outputDir, arch, variant), CentralDirName, RecordsDirName)
}

// LogPath returns the build log of an architecture.
// It joins the log dir, the architecture and "log".
func LogPath(logDir, arch string) string {
	return filepath.Join(logDir, arch, LogFileName)
}
