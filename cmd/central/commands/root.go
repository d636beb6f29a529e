// Package commands implements the CLI of the central build orchestrator.
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/central/internal/app"
	"go.trai.ch/central/internal/build"
	"go.trai.ch/central/internal/core/ports"
)

// CLI represents the command line interface for central.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.Options) error
}

// verboseSetter is implemented by loggers that can show debug messages.
type verboseSetter interface {
	SetVerbose(enable bool)
}

// New creates a new CLI instance with the given app and logger.
func New(a Application, logger ports.Logger) *CLI {
	c := &CLI{
		app:    a,
		logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "central [packages]",
		Short: "Build packages and their dependencies for a target architecture",
		Long: "central resolves the dependency order of the requested packages, builds the host\n" +
			"tools a cross build needs, then builds every package with CMake.\n\n" +
			"Packages are given as a comma separated list. Without packages, the package whose\n" +
			"source directory contains the working directory is built.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runBuild,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	// -v belongs to --verbose; the version flag only takes it when free.
	addBuildFlags(rootCmd)

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// splitList splits comma separated values, dropping empty entries.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
