// Package style provides shared UI styling primitives including brand colors
// and icons for consistent presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
)

// RuleWidth is the width of the separator lines framing report sections.
const RuleWidth = 64

// Palette holds the text styles of the build report, bound to one renderer.
type Palette struct {
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Notice  lipgloss.Style
}

// NewPalette binds the report styles to r.
func NewPalette(r *lipgloss.Renderer) Palette {
	return Palette{
		Heading: r.NewStyle().Bold(true).Foreground(Iris),
		Muted:   r.NewStyle().Foreground(Slate),
		Success: r.NewStyle().Bold(true).Foreground(Green),
		Failure: r.NewStyle().Bold(true).Foreground(Red),
		Notice:  r.NewStyle().Foreground(Yellow),
	}
}
