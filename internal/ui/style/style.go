// Package style holds the colours and icons shared by the logger and the report table.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
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
	Skip    = "○"
)

// Header returns the style of table headers.
func Header(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Bold(true).Foreground(Iris).Padding(0, 1)
}

// Cell returns the style of an ordinary table cell.
func Cell(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Padding(0, 1)
}

// Failed returns the style of a cell in a failed row.
func Failed(r *lipgloss.Renderer) lipgloss.Style {
	return Cell(r).Foreground(Red)
}

// Muted returns the style of secondary information such as fingerprints.
func Muted(r *lipgloss.Renderer) lipgloss.Style {
	return Cell(r).Foreground(Slate)
}
