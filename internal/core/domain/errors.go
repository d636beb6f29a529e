package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when no central.yaml is found above the working directory.
	ErrConfigNotFound = zerr.New("could not find central.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file fails validation.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrUnknownArch is returned when the requested target architecture is not in the target list.
	ErrUnknownArch = zerr.New("invalid target arch")

	// ErrArchNotInVariants is returned when an architecture has no build_variants entry.
	ErrArchNotInVariants = zerr.New("arch is not defined in build_variants")

	// ErrUnknownVariant is returned when the requested build variant does not exist for the architecture.
	ErrUnknownVariant = zerr.New("invalid build variant")

	// ErrUnknownOrderPolicy is returned when the configured order policy is not recognized.
	ErrUnknownOrderPolicy = zerr.New("unknown order policy, expected 'dependency' or 'discovery'")

	// ErrInvalidPackage is returned when an explicitly requested package is not part of the variant's graph.
	ErrInvalidPackage = zerr.New("invalid package")

	// ErrExclusiveWithAll is returned when exclusive selection names the ALL sentinel.
	ErrExclusiveWithAll = zerr.New("exclusive selection cannot name ALL")

	// ErrExclusiveEmpty is returned when exclusive selection names no package.
	ErrExclusiveEmpty = zerr.New("exclusive selection needs at least one package")

	// ErrUnsupportedGenerator is returned when the requested build tool generator is unknown.
	ErrUnsupportedGenerator = zerr.New("generator is not supported")

	// ErrInvalidExtraVar is returned when an extra build variable is not in KEY=VALUE form.
	ErrInvalidExtraVar = zerr.New("extra variable must be in KEY=VALUE form")

	// ErrCycleDetected is returned when a cycle is detected in a package graph.
	ErrCycleDetected = zerr.New("cyclic package graph")

	// ErrMissingPackageDescriptor is returned when a package in a build order has no descriptor for the architecture.
	ErrMissingPackageDescriptor = zerr.New("package has no descriptor for this architecture")

	// ErrBuildFailed is returned when a build phase stops at a failing package.
	ErrBuildFailed = zerr.New("build failed")

	// ErrManifestReadFailed is returned when an install manifest exists but cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read install manifest")

	// ErrCleanFailed is returned when previous build output cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean package output")

	// ErrLogFileOpenFailed is returned when the architecture log file cannot be opened.
	ErrLogFileOpenFailed = zerr.New("failed to open log file")

	// ErrMetricsWriteFailed is returned when the metrics textfile cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")

	// ErrStoreCreateFailed is returned when the build record directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build record directory")

	// ErrStoreReadFailed is returned when a build record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build record")

	// ErrStoreUnmarshalFailed is returned when a build record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build record")

	// ErrStoreMarshalFailed is returned when a build record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build record")

	// ErrStoreWriteFailed is returned when a build record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build record")
)
