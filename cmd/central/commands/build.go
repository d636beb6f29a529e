package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/central/internal/app"
)

func addBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolP("verbose", "v", false, "Show build tool output and debug messages")
	f.BoolP("debug", "d", false, "Build packages in debug mode")
	f.BoolP("clean", "c", false, "Remove previous build output of the packages without building")
	f.BoolP("clean-build", "b", false, "Remove previous build output, then build (use with --clean)")
	f.BoolP("list", "l", false, "List packages of the build variant")
	f.BoolP("dep", "a", false, "Build or list the packages together with their dependencies")
	f.BoolP("exclusive", "e", false, "Select every package except the given ones")
	f.StringP("target-arch", "t", "", "Target architecture (defaults to the configured default target)")
	f.StringP("build-variant", "r", "", "Build variant (defaults to the architecture's default variant)")
	f.IntP("jobs", "j", 0, "Number of parallel build jobs passed to the build tool")
	f.StringP("generator", "g", "", "CMake generator")
	f.StringSliceP("extra-var", "D", nil, "Extra build variables as KEY=VALUE, comma separated")
	f.BoolP("info", "i", false, "Show the files installed by the packages")
	f.BoolP("plot", "p", false, "Print the dependency graph of the build variant in DOT format")
	f.StringP("output-mode", "o", "auto", "Output mode: auto, progress, or linear")
	f.Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	f.String("metrics-file", "", "Write Prometheus metrics of the run to this file")
}

func (c *CLI) runBuild(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	verbose, _ := f.GetBool("verbose")
	debug, _ := f.GetBool("debug")
	clean, _ := f.GetBool("clean")
	cleanBuild, _ := f.GetBool("clean-build")
	list, _ := f.GetBool("list")
	dep, _ := f.GetBool("dep")
	exclusive, _ := f.GetBool("exclusive")
	arch, _ := f.GetString("target-arch")
	variant, _ := f.GetString("build-variant")
	jobs, _ := f.GetInt("jobs")
	generator, _ := f.GetString("generator")
	extraVars, _ := f.GetStringSlice("extra-var")
	info, _ := f.GetBool("info")
	plot, _ := f.GetBool("plot")
	outputMode, _ := f.GetString("output-mode")
	ci, _ := f.GetBool("ci")
	metricsFile, _ := f.GetString("metrics-file")

	if verbose {
		if v, ok := c.logger.(verboseSetter); ok {
			v.SetVerbose(true)
		}
	}

	return c.app.Run(cmd.Context(), app.Options{
		Packages:    splitList(args),
		Arch:        arch,
		Variant:     variant,
		Verbose:     verbose,
		Debug:       debug,
		Clean:       clean,
		CleanBuild:  cleanBuild,
		List:        list,
		Dep:         dep,
		Exclusive:   exclusive,
		Info:        info,
		Plot:        plot,
		Jobs:        jobs,
		Generator:   generator,
		ExtraVars:   extraVars,
		OutputMode:  outputMode,
		CI:          ci,
		MetricsFile: metricsFile,
	})
}
