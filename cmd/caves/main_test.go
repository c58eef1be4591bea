package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/caves/internal/adapters/telemetry/progrock"
	"go.trai.ch/caves/internal/app"
	"go.trai.ch/caves/internal/core/domain"
	"go.trai.ch/caves/internal/core/ports/mocks"
	"go.trai.ch/caves/internal/engine/pathfinder"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"caves": func() {
			os.Exit(run(context.Background(), os.Args[1:], os.Stderr, provideComponents))
		},
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			env.Setenv("NO_COLOR", "1")
			env.Setenv("CI", "true")
			return nil
		},
	})
}

type mockSet struct {
	loader    *mocks.MockPuzzleLoader
	logger    *mocks.MockLogger
	telemetry *mocks.MockTelemetry
	reporter  *mocks.MockReporter
	watcher   *mocks.MockWatcher
}

func newProvider(t *testing.T) (*mockSet, ComponentProvider) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &mockSet{
		loader:    mocks.NewMockPuzzleLoader(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		reporter:  mocks.NewMockReporter(ctrl),
		watcher:   mocks.NewMockWatcher(ctrl),
	}
	application := app.New(m.loader, pathfinder.NewCounter(), m.logger, m.telemetry, m.reporter, m.watcher)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: m.logger,
		}, func() {}, nil
	}
	return m, provider
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	_, provider := newProvider(t)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that command errors are logged and exit with 1.
func TestRun_ExecutionError(t *testing.T) {
	m, provider := newProvider(t)
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, domain.ErrUnknownMode.Error())
	})

	exitCode := run(context.Background(), []string{"count", "--mode", "lenient"}, new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_FailedCountsNotLoggedTwice verifies that a run with failed rows exits
// with 1 without logging the aggregate error again.
func TestRun_FailedCountsNotLoggedTwice(t *testing.T) {
	m, provider := newProvider(t)
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.loader.EXPECT().LoadManifest("caves.yaml").Return([]domain.Puzzle{
		{Name: "broken", Lines: []string{"start-A", "A-B", "B-end"}},
	}, nil)
	m.telemetry.EXPECT().Close().Return(nil)
	m.reporter.EXPECT().Report(gomock.Any()).Return(nil)
	// Once for the puzzle, never for domain.ErrRunFailed.
	m.logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"count"}, new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_Options verifies that options are applied to the app before execution.
func TestRun_Options(t *testing.T) {
	_, provider := newProvider(t)

	var applied *app.App
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), provider, func(a *app.App) {
		applied = a
	})
	assert.Equal(t, 0, exitCode)
	assert.NotNil(t, applied)
}

// TestRun_PlainProgressToStderr verifies that plain progress lines go to the
// stderr given to run, like logger and cobra output.
func TestRun_PlainProgressToStderr(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)

	loader := mocks.NewMockPuzzleLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	reporter := mocks.NewMockReporter(ctrl)

	log.EXPECT().Info(gomock.Any()).AnyTimes()
	loader.EXPECT().LoadManifest("caves.yaml").Return([]domain.Puzzle{
		{Name: "tiny", Lines: []string{"start-end"}},
	}, nil)
	reporter.EXPECT().Report(gomock.Any()).Return(nil)

	application := app.New(loader, pathfinder.NewCounter(), log, progrock.New(), reporter, mocks.NewMockWatcher(ctrl))
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: log}, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"count", "--progress", "plain", "-m", "strict"}, stderr, provider)

	assert.Equal(t, 0, exitCode)
	assert.Equal(t, "✓ tiny/strict\n", stderr.String())
}
