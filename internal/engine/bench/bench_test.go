package bench_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/caves/internal/engine/bench"
)

// fakeClock advances by step every time the measured function runs.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) fn(value int) func(context.Context) (int, error) {
	return func(context.Context) (int, error) {
		c.now = c.now.Add(c.step)
		return value, nil
	}
}

func TestAutorange(t *testing.T) {
	var got []int
	for n := range bench.Autorange() {
		got = append(got, n)
		if len(got) == 8 {
			break
		}
	}
	assert.Equal(t, []int{1, 2, 5, 10, 20, 50, 100, 200}, got)
}

func TestRun(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0), step: 10 * time.Millisecond}

	res, err := bench.Run(context.Background(), clock.fn(42), bench.WithClock(clock.Now))
	require.NoError(t, err)

	assert.Equal(t, 42, res.Value)
	// 20 runs of 10ms are the first batch to reach 200ms.
	assert.Equal(t, 20, res.Runs)
	assert.Equal(t, 10*time.Millisecond, res.Elapsed)
}

func TestRun_Options(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0), step: time.Millisecond}
	calls := 0
	fn := func(ctx context.Context) (int, error) {
		calls++
		return clock.fn(7)(ctx)
	}

	res, err := bench.Run(context.Background(), fn,
		bench.WithClock(clock.Now),
		bench.WithTarget(5*time.Millisecond),
		bench.WithRepeat(2),
	)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Runs)
	assert.Equal(t, time.Millisecond, res.Elapsed)
	// 1 initial call, autorange 1+2+5, then 2 batches of 5.
	assert.Equal(t, 1+8+10, calls)
}

func TestRun_Error(t *testing.T) {
	errBoom := errors.New("boom")
	calls := 0
	fn := func(context.Context) (int, error) {
		calls++
		return 0, errBoom
	}

	_, err := bench.Run(context.Background(), fn)
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, calls)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	fn := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			cancel()
		}
		return 1, nil
	}

	_, err := bench.Run(ctx, fn)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestOnce(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0), step: 3 * time.Millisecond}

	res, err := bench.Once(context.Background(), clock.fn(9), bench.WithClock(clock.Now))
	require.NoError(t, err)

	assert.Equal(t, 9, res.Value)
	assert.Equal(t, 1, res.Runs)
	assert.Equal(t, 3*time.Millisecond, res.Elapsed)
}

func TestOnce_Error(t *testing.T) {
	errBoom := errors.New("boom")
	_, err := bench.Once(context.Background(), func(context.Context) (string, error) {
		return "", errBoom
	})
	require.ErrorIs(t, err, errBoom)
}
