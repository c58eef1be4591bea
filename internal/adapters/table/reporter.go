// Package table renders count results as a Markdown-style table.
package table

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/caves/internal/core/domain"
	"go.trai.ch/caves/internal/core/ports"
	"go.trai.ch/caves/internal/ui/output"
	"go.trai.ch/caves/internal/ui/style"
)

// Headers are the column titles of the report.
var Headers = []string{"Puzzle", "Mode", "Paths", "Elapsed", "Runs", "Graph"}

// Columns holding numbers, aligned right.
const (
	colPaths   = 2
	colElapsed = 3
	colRuns    = 4
	colGraph   = 5
)

var _ ports.Reporter = (*Reporter)(nil)

// Reporter implements ports.Reporter by printing a table to a writer.
type Reporter struct {
	out      io.Writer
	renderer *lipgloss.Renderer
}

// New creates a Reporter writing to out. A nil writer means os.Stdout.
func New(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out, renderer: output.Renderer(out)}
}

// Report writes one row per solution, in the order given, surrounded by blank lines.
func (r *Reporter) Report(solutions []domain.Solution) error {
	header := style.Header(r.renderer)
	cell := style.Cell(r.renderer)
	failed := style.Failed(r.renderer)
	muted := style.Muted(r.renderer)

	t := table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers(Headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow:
				s = header
			case row < len(solutions) && solutions[row].Failed():
				s = failed
			case col == colGraph:
				s = muted
			default:
				s = cell
			}
			if col >= colPaths && col <= colRuns {
				s = s.Align(lipgloss.Right)
			}
			return s
		})

	for _, sol := range solutions {
		t.Row(Row(sol)...)
	}

	_, err := fmt.Fprintf(r.out, "\n%s\n\n", t.String())
	return err
}

// Row returns the cells of one solution. A failed job shows the name of its
// error in place of the path count.
func Row(sol domain.Solution) []string {
	paths := strconv.Itoa(sol.Paths)
	if sol.Err != nil {
		paths = ErrorName(sol.Err)
	}

	elapsed, runs := domain.FormatElapsed(sol.Elapsed), strconv.Itoa(sol.Runs)
	if sol.Status == domain.JobStatusSkipped {
		elapsed, runs = "-", "-"
	}

	graph := "-"
	if sol.Fingerprint != 0 {
		graph = fmt.Sprintf("%016x", sol.Fingerprint)
	}

	return []string{sol.Puzzle, sol.Mode.String(), paths, elapsed, runs, graph}
}

// ErrorName returns the short name of err: the message of a zerr error
// without its metadata and causes, or the full text of any other error.
func ErrorName(err error) string {
	if m, ok := err.(interface{ Message() string }); ok {
		return m.Message()
	}
	return err.Error()
}
