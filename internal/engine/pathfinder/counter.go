// Package pathfinder counts the distinct start-to-end paths through a cave graph.
package pathfinder

import (
	"context"
	"fmt"

	"go.trai.ch/caves/internal/core/domain"
	"go.trai.ch/caves/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// cancelCheckInterval is the number of cache misses between two context checks.
const cancelCheckInterval = 1024

// Option configures a Counter.
type Option func(*Counter)

// WithMaxDepth sets the recursion ceiling of a search. A value of zero or less
// restores the default, which is derived from the graph.
func WithMaxDepth(n int) Option {
	return func(c *Counter) {
		c.maxDepth = n
	}
}

// WithLogger sets the logger used to report aborted searches.
func WithLogger(logger ports.Logger) Option {
	return func(c *Counter) {
		c.logger = logger
	}
}

// Counter runs memoized depth-first path counts. A Counter holds no per-search
// state and is safe for concurrent use; every search owns its own cache.
type Counter struct {
	maxDepth int
	logger   ports.Logger
}

// NewCounter creates a Counter with the given options.
func NewCounter(opts ...Option) *Counter {
	c := &Counter{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DepthLimit returns the default recursion ceiling for g.
// A valid graph never alternates two big caves, so a path holds at most one big
// cave per small-cave visit plus the sentinels, which stays under this bound.
func DepthLimit(g *domain.Graph) int {
	return 2 * (2*g.SmallCaves() + 2)
}

// Count returns the number of distinct paths from start to end under mode,
// together with statistics about the search.
func (c *Counter) Count(ctx context.Context, g *domain.Graph, mode domain.Mode) (domain.Count, error) {
	if err := ctx.Err(); err != nil {
		return domain.Count{}, err
	}

	limit := c.maxDepth
	if limit <= 0 {
		limit = DepthLimit(g)
	}

	s := &search{
		ctx:   ctx,
		graph: g,
		limit: limit,
		cache: make(map[domain.StateKey]int),
	}

	paths, err := s.countFrom(domain.InitialState(mode), 0)
	if err != nil {
		if c.logger != nil && s.exceeded {
			c.logger.Warn(fmt.Sprintf("%s search stopped at depth %d, is a big cave looping?", mode, limit))
		}
		return domain.Count{}, err
	}

	res := domain.Count{
		Mode:      mode,
		Paths:     paths,
		States:    len(s.cache),
		CacheHits: s.hits,
		MaxDepth:  s.deepest,
	}
	if v, ok := ports.VertexFromContext(ctx); ok {
		v.Log(domain.LogLevelDebug, fmt.Sprintf("%d paths, %d states, %d cache hits, depth %d",
			res.Paths, res.States, res.CacheHits, res.MaxDepth))
	}
	return res, nil
}

// CountModes counts g once per mode. The counts run concurrently and the
// results are returned in the order the modes were given.
func (c *Counter) CountModes(ctx context.Context, g *domain.Graph, modes ...domain.Mode) ([]domain.Count, error) {
	results := make([]domain.Count, len(modes))

	eg, ctx := errgroup.WithContext(ctx)
	for i, mode := range modes {
		eg.Go(func() error {
			res, err := c.Count(ctx, g, mode)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CountPaths counts the paths of g with the default Counter. When
// allowOneSmallCaveTwice is set a single small cave may be visited twice.
func CountPaths(ctx context.Context, g *domain.Graph, allowOneSmallCaveTwice bool) (int, error) {
	res, err := NewCounter().Count(ctx, g, domain.ModeFor(allowOneSmallCaveTwice))
	if err != nil {
		return 0, err
	}
	return res.Paths, nil
}

type search struct {
	ctx   context.Context
	graph *domain.Graph
	limit int
	cache map[domain.StateKey]int

	misses   int
	hits     int
	deepest  int
	exceeded bool
}

func (s *search) countFrom(state domain.VisitState, depth int) (int, error) {
	key := state.Key()
	if n, ok := s.cache[key]; ok {
		s.hits++
		return n, nil
	}

	if depth > s.limit {
		s.exceeded = true
		err := zerr.With(domain.ErrDepthExceeded, "depth", depth)
		err = zerr.With(err, "limit", s.limit)
		return 0, zerr.With(err, "mode", state.Mode().String())
	}
	s.deepest = max(s.deepest, depth)

	s.misses++
	if s.misses%cancelCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			return 0, err
		}
	}

	total := 0
	for _, next := range s.graph.Neighbors(state.Last()) {
		switch next.Kind() {
		case domain.KindStart:
			continue
		case domain.KindEnd:
			total++
			continue
		}

		nextState, ok := state.Append(next)
		if !ok {
			continue
		}
		n, err := s.countFrom(nextState, depth+1)
		if err != nil {
			return 0, err
		}
		total += n
	}

	s.cache[key] = total
	return total, nil
}
