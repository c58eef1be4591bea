// Package bench times repeated executions of a function.
package bench

import (
	"context"
	"iter"
	"time"
)

const (
	// DefaultTarget is the minimum duration of a batch found by the autorange phase.
	DefaultTarget = 200 * time.Millisecond
	// DefaultRepeat is the number of timed batches after autoranging.
	DefaultRepeat = 5
)

// Result holds the value of the measured function and its best per-run time.
type Result[T any] struct {
	Value   T
	Elapsed time.Duration
	Runs    int
}

// Option configures a benchmark.
type Option func(*config)

type config struct {
	target time.Duration
	repeat int
	now    func() time.Time
}

// WithTarget sets the minimum batch duration used to choose the run count.
func WithTarget(d time.Duration) Option {
	return func(c *config) {
		c.target = d
	}
}

// WithRepeat sets the number of timed batches.
func WithRepeat(n int) Option {
	return func(c *config) {
		c.repeat = n
	}
}

func withClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

func newConfig(opts []Option) config {
	c := config{target: DefaultTarget, repeat: DefaultRepeat, now: time.Now}
	for _, opt := range opts {
		opt(&c)
	}
	if c.repeat < 1 {
		c.repeat = 1
	}
	return c
}

// Once runs fn a single time and reports its duration.
func Once[T any](ctx context.Context, fn func(context.Context) (T, error), opts ...Option) (Result[T], error) {
	cfg := newConfig(opts)

	start := cfg.now()
	v, err := fn(ctx)
	if err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Value: v, Elapsed: cfg.now().Sub(start), Runs: 1}, nil
}

// Run benchmarks fn. A first call obtains the value and surfaces errors. The
// run count is then grown through 1, 2, 5, 10, 20, 50, ... until one batch
// takes at least the target duration, and the fastest of the repeated batches
// divided by the run count is reported.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error), opts ...Option) (Result[T], error) {
	cfg := newConfig(opts)

	value, err := fn(ctx)
	if err != nil {
		return Result[T]{}, err
	}

	runs := 0
	for step := range autorange() {
		elapsed, err := batch(ctx, cfg, fn, step)
		if err != nil {
			return Result[T]{}, err
		}
		runs = step
		if elapsed >= cfg.target {
			break
		}
	}

	best := time.Duration(-1)
	for range cfg.repeat {
		elapsed, err := batch(ctx, cfg, fn, runs)
		if err != nil {
			return Result[T]{}, err
		}
		if best < 0 || elapsed < best {
			best = elapsed
		}
	}

	return Result[T]{Value: value, Elapsed: best / time.Duration(runs), Runs: runs}, nil
}

// autorange yields 1, 2, 5, 10, 20, 50, ... without end.
func autorange() iter.Seq[int] {
	return func(yield func(int) bool) {
		for base := 1; ; base *= 10 {
			for _, m := range []int{1, 2, 5} {
				if !yield(base * m) {
					return
				}
			}
		}
	}
}

func batch[T any](ctx context.Context, c config, fn func(context.Context) (T, error), runs int) (time.Duration, error) {
	start := c.now()
	for range runs {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if _, err := fn(ctx); err != nil {
			return 0, err
		}
	}
	return c.now().Sub(start), nil
}
