// Package domain contains the core domain models of the cave system: caves, edges,
// the undirected cave graph and the canonical visit state used by the path search.
package domain

import (
	"iter"
	"maps"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Graph is an immutable undirected adjacency structure over caves.
// Neighbor lists are deduplicated and sorted by label, so iteration order never
// depends on the order edges were supplied in.
type Graph struct {
	adjacency map[Cave][]Cave
	edges     int
}

// BuildGraph parses and validates a list of edges and returns the resulting graph.
// It fails with ErrInvalidCaveName for a badly cased label and with ErrBigCavesAdjacent
// when an edge joins two big caves. Nothing is returned on failure.
func BuildGraph(edges []Edge) (*Graph, error) {
	sets := make(map[Cave]map[Cave]struct{})
	link := func(a, b Cave) {
		if sets[a] == nil {
			sets[a] = make(map[Cave]struct{})
		}
		sets[a][b] = struct{}{}
	}

	for _, e := range edges {
		from, err := NewCave(e.From)
		if err != nil {
			return nil, zerr.With(err, "edge", e.String())
		}
		to, err := NewCave(e.To)
		if err != nil {
			return nil, zerr.With(err, "edge", e.String())
		}
		link(from, to)
		link(to, from)
	}

	g := &Graph{adjacency: make(map[Cave][]Cave, len(sets))}
	for cave, set := range sets {
		neighbors := slices.SortedFunc(maps.Keys(set), Cave.Compare)
		g.adjacency[cave] = neighbors
		g.edges += len(neighbors)
		if _, loop := set[cave]; loop {
			// A self loop appears once in its own list but stands for a single edge.
			g.edges++
		}
	}
	g.edges /= 2

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseGraph parses edge lines and builds a graph from them in one step.
func ParseGraph(lines []string) (*Graph, error) {
	edges, err := ParseEdges(lines)
	if err != nil {
		return nil, err
	}
	return BuildGraph(edges)
}

// Validate checks the termination precondition of the path search:
// no edge may connect two big caves, since such a pair could be bounced
// between forever without spending any revisit budget.
func (g *Graph) Validate() error {
	for _, cave := range g.Caves() {
		if !cave.IsBig() {
			continue
		}
		for _, n := range g.adjacency[cave] {
			if n.IsBig() {
				return zerr.With(ErrBigCavesAdjacent, "edge", cave.String()+EdgeSeparator+n.String())
			}
		}
	}
	return nil
}

// Neighbors returns the caves adjacent to c in label order.
// The returned slice is shared and must not be modified.
func (g *Graph) Neighbors(c Cave) []Cave {
	return g.adjacency[c]
}

// HasEdge reports whether a and b are directly connected.
func (g *Graph) HasEdge(a, b Cave) bool {
	_, found := slices.BinarySearchFunc(g.adjacency[a], b, Cave.Compare)
	return found
}

// HasCave reports whether c appears in any edge.
func (g *Graph) HasCave(c Cave) bool {
	_, ok := g.adjacency[c]
	return ok
}

// Caves returns every cave of the graph sorted by label.
func (g *Graph) Caves() []Cave {
	return slices.SortedFunc(maps.Keys(g.adjacency), Cave.Compare)
}

// SmallCaves returns the number of small caves, excluding the start and end sentinels.
func (g *Graph) SmallCaves() int {
	n := 0
	for c := range g.adjacency {
		if c.IsSmall() {
			n++
		}
	}
	return n
}

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Edges yields every distinct edge once, with From <= To, in label order.
func (g *Graph) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, a := range g.Caves() {
			for _, b := range g.adjacency[a] {
				if a.Compare(b) > 0 {
					continue
				}
				if !yield(Edge{From: a.String(), To: b.String()}) {
					return
				}
			}
		}
	}
}

// Fingerprint returns a 64-bit digest of the canonical edge list.
// Two graphs built from the same set of edges share a fingerprint regardless
// of edge order, edge direction or duplicates.
func (g *Graph) Fingerprint() uint64 {
	hasher := xxhash.New()
	for e := range g.Edges() {
		_, _ = hasher.WriteString(e.From)
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(e.To)
		_, _ = hasher.Write([]byte{'\n'})
	}
	return hasher.Sum64()
}
