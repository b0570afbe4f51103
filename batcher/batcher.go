package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mahimailabs/fluxcrud"
)

// ProcessFunc performs one bulk operation on a batch of items. It is never
// called with an empty slice, and items arrive in insertion order.
type ProcessFunc[T any] func(ctx context.Context, items []T) error

// Batcher buffers items and flushes them to a ProcessFunc when the batch
// size is reached, when the flush interval elapses, or on demand.
//
// A Batcher is safe for concurrent use. The buffer is swapped out under the
// batcher's lock before the handler runs, so concurrent Add calls during
// handler execution start a fresh buffer. Create one with New; the zero
// value is not usable.
type Batcher[T any] struct {
	process  ProcessFunc[T]
	size     int
	interval time.Duration
	logger   fluxcrud.Logger

	stats statsCounters

	// mu guards buf, timer, gen, and closed. gen increments on every
	// drain; a pending timer only flushes the generation it was armed
	// for, which keeps a late timer from double-flushing a buffer that a
	// size or manual flush already drained.
	mu     sync.Mutex
	buf    []T
	timer  *time.Timer
	gen    uint64
	closed bool
}

// New creates a Batcher that flushes to process once size items are
// buffered or interval has elapsed since the first buffered item, whichever
// comes first. An interval of zero disables time-based flushing.
func New[T any](process ProcessFunc[T], size int, interval time.Duration, opts ...Option) (*Batcher[T], error) {
	if process == nil {
		return nil, ErrNilProcess
	}
	if size <= 0 {
		return nil, ErrSizeNotPositive
	}
	if interval < 0 {
		return nil, ErrNegativeInterval
	}

	o := options{
		logger: &fluxcrud.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = &fluxcrud.NoOpLogger{}
	}

	return &Batcher[T]{
		process:  process,
		size:     size,
		interval: interval,
		logger:   o.logger,
	}, nil
}

// Add appends item to the buffer. If the buffer reaches the batch size, the
// triggering Add drains it and runs the handler before returning; the
// handler's error (wrapped in a ProcessError) is returned to that caller.
// The first item into an empty buffer arms the flush timer when an interval
// is configured.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}

	b.buf = append(b.buf, item)
	if len(b.buf) >= b.size {
		items := b.drainLocked()
		b.mu.Unlock()

		b.stats.sizeFlushes.Add(1)
		return b.runProcess(ctx, items, "size")
	}

	if b.interval > 0 && len(b.buf) == 1 {
		gen := b.gen
		b.timer = time.AfterFunc(b.interval, func() {
			b.flushExpired(gen)
		})
	}
	b.mu.Unlock()
	return nil
}

// Flush drains and processes whatever is currently buffered. It is a no-op
// when the buffer is empty.
func (b *Batcher[T]) Flush(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	if len(b.buf) == 0 {
		b.mu.Unlock()
		return nil
	}
	items := b.drainLocked()
	b.mu.Unlock()

	b.stats.manualFlushes.Add(1)
	return b.runProcess(ctx, items, "manual")
}

// Close flushes any remaining items and marks the batcher closed. Add and
// Flush return ErrClosed afterwards. Close is idempotent.
func (b *Batcher[T]) Close(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	items := b.drainLocked()
	b.mu.Unlock()

	if len(items) == 0 {
		return nil
	}
	b.stats.manualFlushes.Add(1)
	return b.runProcess(ctx, items, "final")
}

// Run executes fn and then closes the batcher, guaranteeing the final flush
// on every exit path. Errors from fn and from the final flush are joined.
func (b *Batcher[T]) Run(ctx context.Context, fn func(b *Batcher[T]) error) error {
	err := fn(b)
	return errors.Join(err, b.Close(ctx))
}

// Stats returns a snapshot of the batcher's counters.
func (b *Batcher[T]) Stats() Stats {
	return b.stats.snapshot()
}

// drainLocked swaps out the buffer, bumps the flush generation, and disarms
// a pending timer. Callers must hold mu.
func (b *Batcher[T]) drainLocked() []T {
	items := b.buf
	b.buf = nil
	b.gen++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	return items
}

// flushExpired is the timer callback. It flushes only if the buffer it was
// armed for is still the live one; otherwise some other flush got there
// first and the timer is a no-op.
func (b *Batcher[T]) flushExpired(gen uint64) {
	b.mu.Lock()
	if b.closed || b.gen != gen || len(b.buf) == 0 {
		b.mu.Unlock()
		return
	}
	items := b.drainLocked()
	b.mu.Unlock()

	b.stats.timerFlushes.Add(1)

	// No caller waits on an interval flush, so a handler failure here is
	// logged and counted rather than returned.
	_ = b.runProcess(context.Background(), items, "interval")
}

func (b *Batcher[T]) runProcess(ctx context.Context, items []T, trigger string) error {
	b.logger.Debug("batcher: processing %d item(s) (%s flush)", len(items), trigger)
	start := time.Now()

	if err := b.process(ctx, items); err != nil {
		b.stats.processErrors.Add(1)
		b.logger.Error("batcher: %s flush of %d item(s) failed: %v", trigger, len(items), err)
		return &ProcessError{Err: err}
	}

	b.stats.itemsProcessed.Add(uint64(len(items)))
	b.stats.processingTime.Add(int64(time.Since(start)))
	return nil
}
