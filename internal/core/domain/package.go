package domain

// PackageDescriptor describes one package for one architecture.
type PackageDescriptor struct {
	// Name is the package name used in graphs.
	Name string

	// Label is the human readable description shown in listings.
	Label string

	// Path is the source subtree, relative to the project root.
	Path string

	// Tools lists the packages that must be built for the host before this package
	// can be built, because its build executes them.
	Tools []string

	// Vars are package-specific build variables passed to the underlying build tool.
	Vars map[string]string
}
