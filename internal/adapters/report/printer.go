// Package report prints the human readable listings and build reports of central.
package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/central/internal/core/domain"
	"go.trai.ch/central/internal/ui/output"
	"go.trai.ch/central/internal/ui/style"
)

// AllLabel describes the ALL sentinel in package listings.
const AllLabel = "Stand for All Packages"

const recordTimeLayout = "2006-01-02 15:04:05 MST"

// PackageRow is one line of the package table.
type PackageRow struct {
	Name   string
	Label  string
	Source string
}

// Summary is the final build report.
type Summary struct {
	Info      domain.RunInfo
	Specified []string
	Status    []domain.StatusEntry
	Result    domain.BuildResult
	LogFile   string
	OutputDir string
}

// Printer writes reports to a writer.
type Printer struct {
	w       io.Writer
	palette style.Palette
}

// New creates a Printer. NO_COLOR turns styling off.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile())
	return &Printer{w: w, palette: style.NewPalette(r)}
}

func (p *Printer) println(s string) {
	_, _ = fmt.Fprintln(p.w, s)
}

func (p *Printer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format, args...)
}

// section renders a titled rule of style.RuleWidth characters.
func section(title string) string {
	if title == "" {
		return strings.Repeat("=", style.RuleWidth)
	}
	left := (style.RuleWidth - len(title)) / 2
	if left < 0 {
		left = 0
	}
	right := style.RuleWidth - left - len(title)
	if right < 0 {
		right = 0
	}
	return strings.Repeat("=", left) + title + strings.Repeat("=", right)
}

// Banner prints the description of the current selection.
func (p *Printer) Banner(info domain.RunInfo) {
	p.println(p.palette.Heading.Render(section("")))
	p.println(p.palette.Heading.Render("            central version " + info.Version))
	p.println("Supported architectures: " + strings.Join(info.Targets, ", "))
	p.println("     Supported variants: " + strings.Join(info.Variants, ","))
	p.println("  Building architecture: " + info.Arch)
	p.println("       Building variant: " + info.Variant)
	p.println("             Stage path: " + info.StagePath)
	p.println("            Output path: " + info.OutputPath)
	p.println(p.palette.Heading.Render(section("")))
}

// PackageTable prints the package listing.
func (p *Printer) PackageTable(rows []PackageRow) {
	p.println(p.palette.Heading.Render(section("Packages")))
	p.printf("| %-16s| %-20s| %s\n", "Package Name", "Description", "Source Dir")
	for _, r := range rows {
		p.println(strings.TrimRight(fmt.Sprintf("| %-16s| %-20s| %s", r.Name, r.Label, r.Source), " "))
	}
}

// DependencyList prints the closure of one selected package, host tools first.
func (p *Printer) DependencyList(pkg string, tools, order []string) {
	p.println(pkg)
	for _, t := range tools {
		p.println("    " + p.palette.Muted.Render(t+domain.HostSuffix))
	}
	for _, o := range order {
		p.println("    " + o)
	}
}

// InvalidPackage prints the valid choices for an unknown package.
func (p *Printer) InvalidPackage(pkg, arch string, valid []string) {
	p.println(p.palette.Failure.Render(
		fmt.Sprintf("==== Invalid package %s for %s! Please select packages from the following: ====", pkg, arch)))
	for _, v := range valid {
		p.println(v)
	}
}

// SkippedPackage prints the notice for an inferred package that is not in the graph.
func (p *Printer) SkippedPackage(pkg string) {
	p.println(p.palette.Notice.Render(
		fmt.Sprintf("==== Work directory matches package %s but not configured in building list. Skipping...", pkg)))
}

// Installed prints the installed files of a ready package, followed by the
// run that last built it when a build record exists.
func (p *Printer) Installed(r domain.InstallReport) {
	p.println(p.palette.Heading.Render("> " + r.Package))
	for _, f := range r.Files {
		p.println(f)
	}
	if r.Record != nil {
		p.println(p.palette.Muted.Render(fmt.Sprintf("  last built %s by run %s",
			r.Record.Timestamp.UTC().Format(recordTimeLayout), r.Record.RunID)))
	}
}

// RetryList prints the packages that must be built before their files can be listed.
func (p *Printer) RetryList(pkgs []string) {
	if len(pkgs) == 0 {
		return
	}
	p.println(p.palette.Notice.Render(
		"==== Warning! Please build the following packages before installing list is available. ===="))
	for _, pkg := range pkgs {
		p.println("  " + pkg)
	}
}

// Generators prints the supported generator choices.
func (p *Printer) Generators(gens map[string]string) {
	p.println(p.palette.Heading.Render(section("CMake Generator")))
	for _, name := range slices.Sorted(maps.Keys(gens)) {
		p.printf("  %-12s %s\n", name, gens[name])
	}
	p.println(p.palette.Heading.Render(section("")))
}

// UnsupportedGenerator prints the rejected generator and the valid choices.
func (p *Printer) UnsupportedGenerator(name string, gens map[string]string) {
	p.println(p.palette.Failure.Render(fmt.Sprintf("Generator %s is not supported!", name)))
	p.Generators(gens)
}

// Summary prints the final build report.
func (p *Printer) Summary(s Summary) {
	p.println("")
	p.Banner(s.Info)

	p.println(p.palette.Heading.Render("==== The following packages are specified: ===="))
	for _, pkg := range s.Specified {
		p.println("  " + pkg)
	}

	p.println("")
	p.println(p.palette.Heading.Render("==== Build status: ===="))
	for _, e := range s.Status {
		line := string(e.Mark) + " " + e.Name
		switch e.Mark {
		case domain.MarkFailed:
			line = p.palette.Failure.Render(line)
		case domain.MarkNotAttempted:
			line = p.palette.Muted.Render(line)
		}
		p.println(strings.TrimRight(line, " "))
	}

	if s.Result.Succeeded() {
		p.println(p.palette.Success.Render("==== Success! ===="))
	} else {
		p.println(p.palette.Failure.Render("==== Failure! ===="))
		p.println("")
		p.println(s.Result.Diagnostic)
	}

	p.println("")
	p.println("Log file: " + s.LogFile)
	p.println("Output dir: " + s.OutputDir)
	p.println("")
}
