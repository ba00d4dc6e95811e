// Package style provides the shared colors and glyphs used by the tagger's terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Ink    = lipgloss.Color("#0B0F19")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)

// Header renders table headers.
var Header = lipgloss.NewStyle().Bold(true).Foreground(Iris)

// Muted renders secondary text.
var Muted = lipgloss.NewStyle().Foreground(Slate)

// Good renders healthy states.
var Good = lipgloss.NewStyle().Foreground(Green)

// Bad renders terminal failure states.
var Bad = lipgloss.NewStyle().Foreground(Red)
