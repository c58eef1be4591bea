// Package app implements the application layer for caves.
package app

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strings"

	"go.trai.ch/caves/internal/adapters/detector" //nolint:depguard // Wired in app layer
	"go.trai.ch/caves/internal/core/domain"
	"go.trai.ch/caves/internal/core/ports"
	"go.trai.ch/caves/internal/engine/bench"
	"go.trai.ch/caves/internal/engine/pathfinder"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader    ports.PuzzleLoader
	counter   *pathfinder.Counter
	logger    ports.Logger
	telemetry ports.Telemetry
	reporter  ports.Reporter
	watcher   ports.Watcher

	benchOpts   []bench.Option
	progressOut io.Writer
}

// New creates a new App instance.
func New(
	loader ports.PuzzleLoader,
	counter *pathfinder.Counter,
	log ports.Logger,
	telemetry ports.Telemetry,
	reporter ports.Reporter,
	watcher ports.Watcher,
) *App {
	return &App{
		loader:      loader,
		counter:     counter,
		logger:      log,
		telemetry:   telemetry,
		reporter:    reporter,
		watcher:     watcher,
		progressOut: os.Stderr,
	}
}

// WithBenchOptions configures the benchmark loop used with RunOptions.Benchmark.
// This is primarily used for testing to shorten benchmarks.
func (a *App) WithBenchOptions(opts ...bench.Option) *App {
	a.benchOpts = append(a.benchOpts, opts...)
	return a
}

// WithProgressOutput sets where plain progress lines are written.
func (a *App) WithProgressOutput(w io.Writer) *App {
	a.progressOut = w
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Manifest is the path of the YAML manifest, used when Files is empty.
	Manifest string
	// Files are plain edge files, each one puzzle named after the file.
	Files []string
	// Puzzles restricts the run to the named puzzles.
	Puzzles []string
	// Modes to count. Empty means every mode.
	Modes      []domain.Mode
	Sequential bool
	Benchmark  bool
	// Verbose is the -v count: 1 logs progress, 2 also logs search statistics.
	Verbose  int
	JSON     bool
	Progress string
	Watch    bool
}

// logConfigurer is implemented by loggers whose level and format can change at runtime.
type logConfigurer interface {
	SetVerbosity(v int)
	SetJSON(enable bool)
}

// outputSetter is implemented by telemetry that can echo progress lines.
type outputSetter interface {
	SetOutput(w io.Writer)
}

// Run loads the puzzles, counts every requested (puzzle, mode) job and reports
// the results. It returns domain.ErrRunFailed when any job failed.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	a.configure(opts)
	defer func() {
		if err := a.telemetry.Close(); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to close telemetry: %v", err))
		}
	}()

	puzzles, err := a.load(opts)
	if err != nil {
		return err
	}

	if opts.Watch {
		return a.watch(ctx, puzzles, opts)
	}
	return a.solve(ctx, puzzles, opts)
}

func (a *App) configure(opts RunOptions) {
	if lc, ok := a.logger.(logConfigurer); ok {
		lc.SetVerbosity(opts.Verbose)
		lc.SetJSON(opts.JSON)
	}

	if setter, ok := a.telemetry.(outputSetter); ok {
		mode := detector.ResolveMode(detector.DetectEnvironment(), opts.Progress)
		if mode == detector.ProgressPlain {
			setter.SetOutput(a.progressOut)
		} else {
			setter.SetOutput(nil)
		}
	}
}

// load reads the puzzles from the edge files, or from the manifest when no
// files are given.
func (a *App) load(opts RunOptions) ([]domain.Puzzle, error) {
	if len(opts.Files) == 0 {
		if opts.Manifest == "" {
			return nil, domain.ErrNoInputs
		}
		puzzles, err := a.loader.LoadManifest(opts.Manifest)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to load puzzles")
		}
		if len(puzzles) == 0 {
			return nil, zerr.With(domain.ErrNoInputs, "manifest", opts.Manifest)
		}
		return puzzles, nil
	}

	puzzles := make([]domain.Puzzle, 0, len(opts.Files))
	seen := make(map[string]string, len(opts.Files))
	for _, path := range opts.Files {
		p, err := a.loader.LoadEdgeFile(path)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to load puzzles")
		}
		if prev, dup := seen[p.Name]; dup {
			err := zerr.With(domain.ErrDuplicatePuzzle, "puzzle", p.Name)
			return nil, zerr.With(err, "files", prev+", "+path)
		}
		seen[p.Name] = path
		puzzles = append(puzzles, p)
	}
	return puzzles, nil
}

// job is one (puzzle, mode) count over an already built graph.
type job struct {
	puzzle domain.Puzzle
	mode   domain.Mode
	graph  *domain.Graph
}

func (a *App) solve(ctx context.Context, puzzles []domain.Puzzle, opts RunOptions) error {
	puzzles = a.filter(puzzles, opts.Puzzles)
	if len(puzzles) == 0 {
		a.logger.Warn("No matching puzzles found.")
		return nil
	}

	modes := opts.Modes
	if len(modes) == 0 {
		modes = domain.AllModes
	}

	var jobs []job
	var solutions []domain.Solution
	for _, p := range puzzles {
		g, err := p.Graph()
		if err != nil {
			err = zerr.With(err, "puzzle", p.Name)
			a.logger.Error(err)
			for _, mode := range modes {
				solutions = append(solutions, domain.Solution{
					Puzzle: p.Name,
					Mode:   mode,
					Status: domain.JobStatusSkipped,
					Err:    err,
				})
			}
			continue
		}
		for _, mode := range modes {
			jobs = append(jobs, job{puzzle: p, mode: mode, graph: g})
		}
	}

	solutions = append(solutions, a.execute(ctx, jobs, opts)...)
	slices.SortFunc(solutions, func(x, y domain.Solution) int {
		return cmp.Or(cmp.Compare(x.Puzzle, y.Puzzle), cmp.Compare(x.Mode, y.Mode))
	})

	if err := a.reporter.Report(solutions); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}

	if slices.ContainsFunc(solutions, domain.Solution.Failed) {
		return domain.ErrRunFailed
	}
	return nil
}

func (a *App) filter(puzzles []domain.Puzzle, names []string) []domain.Puzzle {
	if len(names) == 0 {
		return puzzles
	}

	kept := make([]domain.Puzzle, 0, len(puzzles))
	for _, p := range puzzles {
		if slices.Contains(names, p.Name) {
			kept = append(kept, p)
			continue
		}
		a.logger.Info(fmt.Sprintf("Skipping puzzle %s.", p.Name))
	}
	return kept
}

// execute runs the jobs, in parallel unless opts.Sequential is set. A failing
// job never stops the others.
func (a *App) execute(ctx context.Context, jobs []job, opts RunOptions) []domain.Solution {
	results := make([]domain.Solution, len(jobs))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	if opts.Sequential {
		g.SetLimit(1)
	}

	for i, j := range jobs {
		g.Go(func() error {
			results[i] = a.runJob(ctx, j, opts)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (a *App) runJob(ctx context.Context, j job, opts RunOptions) domain.Solution {
	name := domain.JobName(j.puzzle.Name, j.mode)
	ctx, vertex := a.telemetry.Record(ctx, j.mode.String(), ports.WithGroup(j.puzzle.Name))

	count := func(ctx context.Context) (domain.Count, error) {
		return a.counter.Count(ctx, j.graph, j.mode)
	}

	var res bench.Result[domain.Count]
	var err error
	if opts.Benchmark {
		a.logger.Info(fmt.Sprintf("Benchmarking %s...", name))
		res, err = bench.Run(ctx, count, a.benchOpts...)
	} else {
		a.logger.Info(fmt.Sprintf("Counting %s...", name))
		res, err = bench.Once(ctx, count)
	}

	sol := domain.Solution{
		Puzzle:      j.puzzle.Name,
		Mode:        j.mode,
		Status:      domain.JobStatusCompleted,
		Paths:       res.Value.Paths,
		Elapsed:     res.Elapsed,
		Runs:        res.Runs,
		Fingerprint: j.graph.Fingerprint(),
	}

	if err == nil {
		err = checkExpected(j, res.Value.Paths)
	}
	if err != nil {
		err = zerr.With(err, "puzzle", j.puzzle.Name)
		sol.Status = domain.JobStatusFailed
		sol.Err = err
		a.logger.Error(err)
	} else if opts.Verbose > 1 {
		a.logger.Info(fmt.Sprintf("%s: %d states, %d cache hits, depth %d",
			name, res.Value.States, res.Value.CacheHits, res.Value.MaxDepth))
	}

	vertex.Complete(err)
	return sol
}

func checkExpected(j job, paths int) error {
	want, ok := j.puzzle.Expected(j.mode)
	if !ok || want == paths {
		return nil
	}
	err := zerr.With(domain.ErrUnexpectedCount, "mode", j.mode.String())
	err = zerr.With(err, "expected", want)
	return zerr.With(err, "actual", paths)
}

// watch runs once, then again after every batch of input changes until ctx ends.
func (a *App) watch(ctx context.Context, puzzles []domain.Puzzle, opts RunOptions) error {
	paths := watchPaths(puzzles, opts)
	changes, err := a.watcher.Watch(ctx, paths)
	if err != nil {
		return err
	}

	rerun := func(puzzles []domain.Puzzle) {
		if err := a.solve(ctx, puzzles, opts); err != nil && !errors.Is(err, domain.ErrRunFailed) {
			a.logger.Error(err)
		}
	}

	rerun(puzzles)
	a.logger.Info(fmt.Sprintf("Watching %d files for changes.", len(paths)))

	for changed := range changes {
		a.logger.Info("Changed: " + strings.Join(changed, ", "))
		reloaded, err := a.load(opts)
		if err != nil {
			a.logger.Error(err)
			continue
		}
		rerun(reloaded)
	}
	return nil
}

func watchPaths(puzzles []domain.Puzzle, opts RunOptions) []string {
	var paths []string
	if len(opts.Files) == 0 && opts.Manifest != "" {
		paths = append(paths, opts.Manifest)
	}
	for _, p := range puzzles {
		if p.Source != "" {
			paths = append(paths, p.Source)
		}
	}
	slices.Sort(paths)
	return slices.Compact(paths)
}
