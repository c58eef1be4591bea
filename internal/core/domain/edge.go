package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// EdgeSeparator joins the two cave labels of an edge line.
const EdgeSeparator = "-"

// Edge is an unparsed connection between two cave labels.
type Edge struct {
	From string
	To   string
}

// String renders the edge in its input form.
func (e Edge) String() string {
	return e.From + EdgeSeparator + e.To
}

// ParseEdge splits a single "a-b" line into an Edge.
// Surrounding whitespace is ignored; anything other than exactly two
// non-empty tokens is rejected with ErrMalformedEdge.
func ParseEdge(line string) (Edge, error) {
	parts := strings.Split(strings.TrimSpace(line), EdgeSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Edge{}, zerr.With(ErrMalformedEdge, "line", line)
	}
	return Edge{From: parts[0], To: parts[1]}, nil
}

// ParseEdges parses one edge per line, skipping blank lines.
// The first malformed line aborts parsing; its 1-based position is attached as "index".
func ParseEdges(lines []string) ([]Edge, error) {
	edges := make([]Edge, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := ParseEdge(line)
		if err != nil {
			return nil, zerr.With(err, "index", i+1)
		}
		edges = append(edges, e)
	}
	return edges, nil
}
