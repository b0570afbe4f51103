package parallel_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahimailabs/fluxcrud/parallel"
)

func TestGatherLimited_CapsConcurrency(t *testing.T) {
	var (
		mu     sync.Mutex
		active int
		peak   int
	)

	tasks := make([]parallel.Task[int], 10)
	for i := range tasks {
		tasks[i] = func(_ context.Context) (int, error) {
			mu.Lock()
			active++
			if active > peak {
				peak = active
			}
			mu.Unlock()

			time.Sleep(10 * time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
			return i, nil
		}
	}

	results, err := parallel.GatherLimited(context.Background(), 2, tasks)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, results)
	assert.LessOrEqual(t, peak, 2)
	assert.Positive(t, peak)
}

func TestGatherLimited_OrderIndependentOfCompletion(t *testing.T) {
	// Later tasks finish first; results must still line up with
	// submission order.
	tasks := make([]parallel.Task[int], 5)
	for i := range tasks {
		tasks[i] = func(_ context.Context) (int, error) {
			time.Sleep(time.Duration(5-i) * 5 * time.Millisecond)
			return i * 10, nil
		}
	}

	results, err := parallel.GatherLimited(context.Background(), 5, tasks)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 10, 20, 30, 40}, results)
}

func TestGatherLimited_EmptyTasks(t *testing.T) {
	results, err := parallel.GatherLimited[int](context.Background(), 3, nil)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestGatherLimited_InvalidLimit(t *testing.T) {
	_, err := parallel.GatherLimited[int](context.Background(), 0, nil)
	assert.ErrorIs(t, err, parallel.ErrLimitNotPositive)

	_, err = parallel.GatherLimited[int](context.Background(), -1, nil)
	assert.ErrorIs(t, err, parallel.ErrLimitNotPositive)
}

func TestGatherLimited_FirstFailureStopsAdmission(t *testing.T) {
	taskErr := errors.New("task blew up")
	var started atomic.Int32

	tasks := []parallel.Task[int]{
		func(_ context.Context) (int, error) {
			started.Add(1)
			return 0, taskErr
		},
		func(_ context.Context) (int, error) {
			started.Add(1)
			return 1, nil
		},
		func(_ context.Context) (int, error) {
			started.Add(1)
			return 2, nil
		},
	}

	results, err := parallel.GatherLimited(context.Background(), 1, tasks)
	assert.ErrorIs(t, err, taskErr)
	assert.Nil(t, results)
	assert.Equal(t, int32(1), started.Load())
}

func TestGatherLimited_InFlightTasksFinishAfterFailure(t *testing.T) {
	taskErr := errors.New("task blew up")
	var (
		slowFinished atomic.Bool
		thirdStarted atomic.Bool
	)

	tasks := []parallel.Task[int]{
		func(_ context.Context) (int, error) {
			time.Sleep(30 * time.Millisecond)
			slowFinished.Store(true)
			return 0, nil
		},
		func(_ context.Context) (int, error) {
			return 0, taskErr
		},
		func(_ context.Context) (int, error) {
			thirdStarted.Store(true)
			return 2, nil
		},
	}

	_, err := parallel.GatherLimited(context.Background(), 2, tasks)
	assert.ErrorIs(t, err, taskErr)

	// The slow in-flight task was allowed to settle before returning,
	// and nothing new was admitted after the failure.
	assert.True(t, slowFinished.Load())
	assert.False(t, thirdStarted.Load())
}

func TestGatherLimited_CancellationReachesRunningTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var observed atomic.Bool

	tasks := []parallel.Task[int]{
		func(ctx context.Context) (int, error) {
			select {
			case <-ctx.Done():
				observed.Store(true)
				return 0, ctx.Err()
			case <-time.After(time.Second):
				return 0, nil
			}
		},
	}

	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := parallel.GatherLimited(ctx, 1, tasks)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, observed.Load())
}

func TestGatherLimited_NilTaskLeavesZeroValue(t *testing.T) {
	tasks := []parallel.Task[int]{
		func(_ context.Context) (int, error) { return 1, nil },
		nil,
		func(_ context.Context) (int, error) { return 3, nil },
	}

	results, err := parallel.GatherLimited(context.Background(), 2, tasks)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 3}, results)
}

func TestGatherLimited_ContextCancellationStopsAdmission(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var started atomic.Int32

	tasks := []parallel.Task[int]{
		func(_ context.Context) (int, error) {
			started.Add(1)
			time.Sleep(30 * time.Millisecond)
			return 0, nil
		},
		func(_ context.Context) (int, error) {
			started.Add(1)
			return 1, nil
		},
	}

	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := parallel.GatherLimited(ctx, 1, tasks)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), started.Load())
}
