package domain

// Puzzle is one cave system to solve, together with any known answers.
type Puzzle struct {
	Name string
	// Lines holds the unparsed edge lines.
	Lines []string
	// Source is the file the edges were read from.
	Source string
	// Expect holds the known path count per mode, if any.
	Expect map[Mode]int
}

// Graph parses the puzzle's edges and builds its cave graph.
func (p Puzzle) Graph() (*Graph, error) {
	return ParseGraph(p.Lines)
}

// Expected returns the known answer for mode m.
func (p Puzzle) Expected(m Mode) (int, bool) {
	n, ok := p.Expect[m]
	return n, ok
}

// JobName identifies the count of puzzle under mode, e.g. "example/strict".
func JobName(puzzle string, m Mode) string {
	return puzzle + "/" + m.String()
}

// Count is the outcome of one path-counting search.
type Count struct {
	Mode  Mode
	Paths int
	// States is the number of distinct visit states that were expanded.
	States int
	// CacheHits is the number of lookups answered from the cache.
	CacheHits int
	// MaxDepth is the deepest recursion level reached.
	MaxDepth int
}
