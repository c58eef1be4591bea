package app_test

import (
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/caves/internal/app"
	"go.trai.ch/caves/internal/core/domain"
	"go.trai.ch/caves/internal/core/ports/mocks"
	"go.trai.ch/caves/internal/engine/bench"
	"go.trai.ch/caves/internal/engine/pathfinder"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var exampleLines = []string{
	"start-A",
	"start-b",
	"A-c",
	"A-b",
	"b-d",
	"A-end",
	"b-end",
}

type fixture struct {
	loader    *mocks.MockPuzzleLoader
	logger    *mocks.MockLogger
	telemetry *mocks.MockTelemetry
	vertex    *mocks.MockVertex
	reporter  *mocks.MockReporter
	watcher   *mocks.MockWatcher
	app       *app.App

	reports [][]domain.Solution
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:    mocks.NewMockPuzzleLoader(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		vertex:    mocks.NewMockVertex(ctrl),
		reporter:  mocks.NewMockReporter(ctrl),
		watcher:   mocks.NewMockWatcher(ctrl),
	}
	f.app = app.New(f.loader, pathfinder.NewCounter(), f.logger, f.telemetry, f.reporter, f.watcher)

	f.telemetry.EXPECT().Close().Return(nil)
	return f
}

// expectJobs allows n count jobs to record a vertex and report once.
func (f *fixture) expectJobs(n int) {
	f.telemetry.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(context.Background(), f.vertex).Times(n)
	f.vertex.EXPECT().Complete(gomock.Any()).Times(n)
}

func (f *fixture) expectReport() {
	f.reporter.EXPECT().Report(gomock.Any()).DoAndReturn(func(s []domain.Solution) error {
		f.reports = append(f.reports, s)
		return nil
	})
}

func (f *fixture) quietInfo() {
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
}

func TestApp_Run_Manifest(t *testing.T) {
	f := newFixture(t)
	f.quietInfo()
	f.loader.EXPECT().LoadManifest("caves.yaml").Return([]domain.Puzzle{{
		Name:   "example",
		Lines:  exampleLines,
		Expect: map[domain.Mode]int{domain.ModeStrict: 10, domain.ModeRelaxed: 36},
	}}, nil)
	f.expectJobs(2)
	f.expectReport()

	err := f.app.Run(context.Background(), app.RunOptions{Manifest: "caves.yaml"})
	require.NoError(t, err)

	require.Len(t, f.reports, 1)
	rows := f.reports[0]
	require.Len(t, rows, 2)

	assert.Equal(t, "example", rows[0].Puzzle)
	assert.Equal(t, domain.ModeStrict, rows[0].Mode)
	assert.Equal(t, 10, rows[0].Paths)
	assert.Equal(t, domain.ModeRelaxed, rows[1].Mode)
	assert.Equal(t, 36, rows[1].Paths)

	for _, row := range rows {
		assert.Equal(t, domain.JobStatusCompleted, row.Status)
		assert.NoError(t, row.Err)
		assert.Equal(t, 1, row.Runs)
		assert.NotZero(t, row.Fingerprint)
	}
}

func TestApp_Run_SortsRows(t *testing.T) {
	f := newFixture(t)
	f.quietInfo()
	f.loader.EXPECT().LoadManifest("caves.yaml").Return([]domain.Puzzle{
		{Name: "zeta", Lines: []string{"start-end"}},
		{Name: "alpha", Lines: exampleLines},
	}, nil)
	f.expectJobs(4)
	f.expectReport()

	err := f.app.Run(context.Background(), app.RunOptions{Manifest: "caves.yaml"})
	require.NoError(t, err)

	var order []string
	for _, row := range f.reports[0] {
		order = append(order, domain.JobName(row.Puzzle, row.Mode))
	}
	assert.Equal(t, []string{"alpha/strict", "alpha/relaxed", "zeta/strict", "zeta/relaxed"}, order)
}

func TestApp_Run_UnexpectedCount(t *testing.T) {
	f := newFixture(t)
	f.quietInfo()
	f.loader.EXPECT().LoadManifest("caves.yaml").Return([]domain.Puzzle{{
		Name:   "example",
		Lines:  exampleLines,
		Expect: map[domain.Mode]int{domain.ModeStrict: 11},
	}}, nil)
	f.expectJobs(1)
	f.expectReport()
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, domain.ErrUnexpectedCount.Error())
	})

	err := f.app.Run(context.Background(), app.RunOptions{
		Manifest: "caves.yaml",
		Modes:    []domain.Mode{domain.ModeStrict},
	})
	require.ErrorIs(t, err, domain.ErrRunFailed)

	row := f.reports[0][0]
	assert.Equal(t, domain.JobStatusFailed, row.Status)
	assert.Equal(t, 10, row.Paths)

	var zErr *zerr.Error
	require.ErrorAs(t, row.Err, &zErr)
	meta := zErr.Metadata()
	assert.Equal(t, 11, meta["expected"])
	assert.Equal(t, 10, meta["actual"])
	assert.Equal(t, "example", meta["puzzle"])
}

func TestApp_Run_InvalidGraphSkipsPuzzle(t *testing.T) {
	f := newFixture(t)
	f.quietInfo()
	f.loader.EXPECT().LoadManifest("caves.yaml").Return([]domain.Puzzle{
		{Name: "broken", Lines: []string{"start-A", "A-B", "B-end"}},
		{Name: "tiny", Lines: []string{"start-end"}},
	}, nil)
	f.expectJobs(2)
	f.expectReport()
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, domain.ErrBigCavesAdjacent.Error())
	})

	err := f.app.Run(context.Background(), app.RunOptions{Manifest: "caves.yaml"})
	require.ErrorIs(t, err, domain.ErrRunFailed)

	rows := f.reports[0]
	require.Len(t, rows, 4)
	for _, row := range rows[:2] {
		assert.Equal(t, "broken", row.Puzzle)
		assert.Equal(t, domain.JobStatusSkipped, row.Status)
		assert.ErrorContains(t, row.Err, domain.ErrBigCavesAdjacent.Error())
	}
	for _, row := range rows[2:] {
		assert.Equal(t, "tiny", row.Puzzle)
		assert.Equal(t, domain.JobStatusCompleted, row.Status)
		assert.Equal(t, 1, row.Paths)
	}
}

func TestApp_Run_FilterPuzzles(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Info("Skipping puzzle alpha.")
	f.quietInfo()
	f.loader.EXPECT().LoadManifest("caves.yaml").Return([]domain.Puzzle{
		{Name: "alpha", Lines: exampleLines},
		{Name: "beta", Lines: []string{"start-end"}},
	}, nil)
	f.expectJobs(1)
	f.expectReport()

	err := f.app.Run(context.Background(), app.RunOptions{
		Manifest: "caves.yaml",
		Puzzles:  []string{"beta"},
		Modes:    []domain.Mode{domain.ModeRelaxed},
	})
	require.NoError(t, err)

	rows := f.reports[0]
	require.Len(t, rows, 1)
	assert.Equal(t, "beta", rows[0].Puzzle)
	assert.Equal(t, domain.ModeRelaxed, rows[0].Mode)
}

func TestApp_Run_NoMatchingPuzzles(t *testing.T) {
	f := newFixture(t)
	f.quietInfo()
	f.loader.EXPECT().LoadManifest("caves.yaml").Return([]domain.Puzzle{
		{Name: "alpha", Lines: exampleLines},
	}, nil)
	f.logger.EXPECT().Warn("No matching puzzles found.")

	err := f.app.Run(context.Background(), app.RunOptions{
		Manifest: "caves.yaml",
		Puzzles:  []string{"missing"},
	})
	require.NoError(t, err)
}

func TestApp_Run_EdgeFiles(t *testing.T) {
	f := newFixture(t)
	f.quietInfo()
	f.loader.EXPECT().LoadEdgeFile("one.txt").Return(domain.Puzzle{Name: "one", Lines: exampleLines}, nil)
	f.loader.EXPECT().LoadEdgeFile("two.txt").Return(domain.Puzzle{Name: "two", Lines: []string{"start-end"}}, nil)
	f.expectJobs(2)
	f.expectReport()

	err := f.app.Run(context.Background(), app.RunOptions{
		Manifest:   "caves.yaml",
		Files:      []string{"one.txt", "two.txt"},
		Modes:      []domain.Mode{domain.ModeStrict},
		Sequential: true,
	})
	require.NoError(t, err)

	rows := f.reports[0]
	require.Len(t, rows, 2)
	assert.Equal(t, 10, rows[0].Paths)
	assert.Equal(t, 1, rows[1].Paths)
}

func TestApp_Run_DuplicatePuzzle(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().LoadEdgeFile("a/input.txt").Return(domain.Puzzle{Name: "input"}, nil)
	f.loader.EXPECT().LoadEdgeFile("b/input.txt").Return(domain.Puzzle{Name: "input"}, nil)

	err := f.app.Run(context.Background(), app.RunOptions{Files: []string{"a/input.txt", "b/input.txt"}})
	require.ErrorContains(t, err, domain.ErrDuplicatePuzzle.Error())

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "input", zErr.Metadata()["puzzle"])
}

func TestApp_Run_NoInputs(t *testing.T) {
	f := newFixture(t)

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrNoInputs)
}

func TestApp_Run_EmptyManifest(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().LoadManifest("caves.yaml").Return(nil, nil)

	err := f.app.Run(context.Background(), app.RunOptions{Manifest: "caves.yaml"})
	require.ErrorContains(t, err, domain.ErrNoInputs.Error())
}

func TestApp_Run_LoadError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().LoadManifest("caves.yaml").Return(nil, domain.ErrConfigNotFound)

	err := f.app.Run(context.Background(), app.RunOptions{Manifest: "caves.yaml"})
	require.ErrorContains(t, err, domain.ErrConfigNotFound.Error())
	require.ErrorContains(t, err, "failed to load puzzles")
}

func TestApp_Run_ReportError(t *testing.T) {
	f := newFixture(t)
	f.quietInfo()
	f.loader.EXPECT().LoadManifest("caves.yaml").Return([]domain.Puzzle{
		{Name: "tiny", Lines: []string{"start-end"}},
	}, nil)
	f.expectJobs(2)
	f.reporter.EXPECT().Report(gomock.Any()).Return(errors.New("disk full"))

	err := f.app.Run(context.Background(), app.RunOptions{Manifest: "caves.yaml"})
	require.ErrorContains(t, err, "failed to write report")
	require.ErrorContains(t, err, "disk full")
}

func TestApp_Run_Benchmark(t *testing.T) {
	f := newFixture(t)
	f.app.WithBenchOptions(bench.WithTarget(time.Nanosecond), bench.WithRepeat(2))
	f.logger.EXPECT().Info("Benchmarking tiny/strict...")
	f.quietInfo()
	f.loader.EXPECT().LoadManifest("caves.yaml").Return([]domain.Puzzle{
		{Name: "tiny", Lines: []string{"start-end"}},
	}, nil)
	f.expectJobs(1)
	f.expectReport()

	err := f.app.Run(context.Background(), app.RunOptions{
		Manifest:  "caves.yaml",
		Modes:     []domain.Mode{domain.ModeStrict},
		Benchmark: true,
	})
	require.NoError(t, err)

	row := f.reports[0][0]
	assert.Equal(t, 1, row.Paths)
	assert.GreaterOrEqual(t, row.Runs, 1)
}

func TestApp_Run_VerboseStatistics(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Info("Counting tiny/strict...")
	f.logger.EXPECT().Info("tiny/strict: 1 states, 0 cache hits, depth 0")
	f.loader.EXPECT().LoadManifest("caves.yaml").Return([]domain.Puzzle{
		{Name: "tiny", Lines: []string{"start-end"}},
	}, nil)
	f.expectJobs(1)
	f.expectReport()

	err := f.app.Run(context.Background(), app.RunOptions{
		Manifest: "caves.yaml",
		Modes:    []domain.Mode{domain.ModeStrict},
		Verbose:  2,
	})
	require.NoError(t, err)
}

func TestApp_Run_Watch(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Info("Changed: caves.yaml")
	f.quietInfo()

	puzzles := []domain.Puzzle{{Name: "tiny", Lines: []string{"start-end"}, Source: "tiny.txt"}}
	f.loader.EXPECT().LoadManifest("caves.yaml").Return(puzzles, nil).Times(2)

	var batches iter.Seq[[]string] = func(yield func([]string) bool) {
		yield([]string{"caves.yaml"})
	}
	f.watcher.EXPECT().Watch(gomock.Any(), []string{"caves.yaml", "tiny.txt"}).Return(batches, nil)

	f.expectJobs(2)
	f.reporter.EXPECT().Report(gomock.Any()).DoAndReturn(func(s []domain.Solution) error {
		f.reports = append(f.reports, s)
		return nil
	}).Times(2)

	err := f.app.Run(context.Background(), app.RunOptions{
		Manifest: "caves.yaml",
		Modes:    []domain.Mode{domain.ModeStrict},
		Watch:    true,
	})
	require.NoError(t, err)
	assert.Len(t, f.reports, 2)
}

func TestApp_Run_WatchKeepsGoingAfterReloadError(t *testing.T) {
	f := newFixture(t)
	f.quietInfo()

	puzzles := []domain.Puzzle{{Name: "tiny", Lines: []string{"start-end"}}}
	gomock.InOrder(
		f.loader.EXPECT().LoadManifest("caves.yaml").Return(puzzles, nil),
		f.loader.EXPECT().LoadManifest("caves.yaml").Return(nil, domain.ErrConfigParseFailed),
		f.loader.EXPECT().LoadManifest("caves.yaml").Return(puzzles, nil),
	)
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
	})

	var batches iter.Seq[[]string] = func(yield func([]string) bool) {
		if !yield([]string{"caves.yaml"}) {
			return
		}
		yield([]string{"caves.yaml"})
	}
	f.watcher.EXPECT().Watch(gomock.Any(), []string{"caves.yaml"}).Return(batches, nil)

	f.expectJobs(2)
	f.reporter.EXPECT().Report(gomock.Any()).Return(nil).Times(2)

	err := f.app.Run(context.Background(), app.RunOptions{
		Manifest: "caves.yaml",
		Modes:    []domain.Mode{domain.ModeStrict},
		Watch:    true,
	})
	require.NoError(t, err)
}

func TestApp_Run_WatchError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().LoadManifest("caves.yaml").Return([]domain.Puzzle{{Name: "tiny", Lines: []string{"start-end"}}}, nil)
	f.watcher.EXPECT().Watch(gomock.Any(), gomock.Any()).Return(nil, domain.ErrWatchFailed)

	err := f.app.Run(context.Background(), app.RunOptions{Manifest: "caves.yaml", Watch: true})
	require.ErrorIs(t, err, domain.ErrWatchFailed)
}
