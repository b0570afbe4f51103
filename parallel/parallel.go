// Package parallel provides bounded parallel execution of independent
// tasks with results aligned to submission order.
package parallel

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ErrLimitNotPositive is returned by GatherLimited when limit is zero or
// negative.
var ErrLimitNotPositive = errors.New("parallel: limit must be positive")

// Task is one unit of asynchronous work.
type Task[T any] func(ctx context.Context) (T, error)

// GatherLimited runs tasks with at most limit of them in flight at once and
// returns their results in submission order, regardless of completion
// order. Tasks are admitted strictly in submission order as slots free up;
// nil tasks are skipped and leave the zero value in their slot.
//
// On the first task failure no further tasks are admitted, tasks already
// running finish naturally (GatherLimited never cancels their contexts),
// and the first error is returned once everything in flight has settled.
// Each task receives ctx, so the caller cancelling it stops admission and
// is also observable by tasks already running; whether a running task cuts
// short is up to the task itself.
func GatherLimited[T any](ctx context.Context, limit int, tasks []Task[T]) ([]T, error) {
	if limit <= 0 {
		return nil, ErrLimitNotPositive
	}

	results := make([]T, len(tasks))
	if len(tasks) == 0 {
		return results, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	sem := semaphore.NewWeighted(int64(limit))
	for i, task := range tasks {
		if failed() {
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			fail(err)
			break
		}
		// A failure may have been recorded while this slot was blocked
		// waiting for admission.
		if failed() {
			sem.Release(1)
			break
		}
		if task == nil {
			sem.Release(1)
			continue
		}

		wg.Add(1)
		go func(i int, task Task[T]) {
			defer wg.Done()

			v, err := task(ctx)
			if err != nil {
				fail(err)
				sem.Release(1)
				return
			}
			results[i] = v
			sem.Release(1)
		}(i, task)
	}
	wg.Wait()

	mu.Lock()
	err := firstErr
	mu.Unlock()
	if err != nil {
		return nil, err
	}
	return results, nil
}
