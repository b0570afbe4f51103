package loader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mahimailabs/fluxcrud"
)

// BatchFunc performs one bulk fetch for a list of keys. The result must be
// aligned positionally to keys: result[i] is the value for keys[i]. A key
// with no backing record maps to the zero value of V; use a pointer type
// for V when absence must be distinguishable from a real zero value.
//
// The keys slice is deduplicated and preserves first-registration order.
// Returning a slice of any other length fails the whole batch with
// ErrResultLength.
type BatchFunc[K comparable, V any] func(ctx context.Context, keys []K) ([]V, error)

// Loader batches and caches point lookups. Concurrent Load calls issued
// within one collection window are dispatched as a single BatchFunc call,
// and every resolved key (including "not found" zero values) is cached for
// the lifetime of the Loader.
//
// A Loader is safe for concurrent use. Create one with New; the zero value
// is not usable.
type Loader[K comparable, V any] struct {
	fetch    BatchFunc[K, V]
	wait     time.Duration
	maxBatch int
	logger   fluxcrud.Logger

	stats statsCounters

	// mu guards cache and pending. The cache maps each key to the batch
	// slot that resolves it, whether that batch is still in flight or
	// already done.
	mu      sync.Mutex
	cache   map[K]*slot[K, V]
	pending *fetchBatch[K, V]
}

// fetchBatch is one dispatch unit: the deduplicated keys registered during
// a collection window and the positionally-aligned results.
type fetchBatch[K comparable, V any] struct {
	ctx  context.Context
	keys []K
	data []V
	err  error
	done chan struct{}
}

// slot points a key at its position within a batch. Duplicate loads of the
// same key share one slot.
type slot[K comparable, V any] struct {
	batch *fetchBatch[K, V]
	pos   int
}

// wait blocks until the slot's batch resolves, or until ctx is done. A
// canceled ctx only abandons this caller's wait; the dispatch itself is
// never interrupted. Resolved slots return without blocking.
func (s *slot[K, V]) wait(ctx context.Context) (V, error) {
	select {
	case <-s.batch.done:
	default:
		select {
		case <-s.batch.done:
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}

	if s.batch.err != nil {
		var zero V
		return zero, s.batch.err
	}
	return s.batch.data[s.pos], nil
}

// New creates a Loader around the given batch fetch function.
// It panics if fetch is nil.
func New[K comparable, V any](fetch BatchFunc[K, V], opts ...Option) *Loader[K, V] {
	if fetch == nil {
		panic("loader: fetch function cannot be nil")
	}

	o := options{
		wait:   DefaultWait,
		logger: &fluxcrud.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.wait <= 0 {
		o.wait = DefaultWait
	}
	if o.maxBatch < 0 {
		o.maxBatch = 0
	}
	if o.logger == nil {
		o.logger = &fluxcrud.NoOpLogger{}
	}

	return &Loader[K, V]{
		fetch:    fetch,
		wait:     o.wait,
		maxBatch: o.maxBatch,
		logger:   o.logger,
		cache:    make(map[K]*slot[K, V]),
	}
}

// Load returns the value for key. A cached key resolves immediately without
// invoking the batch function. Otherwise the caller joins the batch of the
// current collection window and blocks until it is dispatched and resolved.
//
// The BatchFunc receives the values of the ctx that opened the window, but
// with cancellation detached: a batch is shared state, and any Load's ctx
// going away only stops that caller from waiting.
func (l *Loader[K, V]) Load(ctx context.Context, key K) (V, error) {
	return l.register(ctx, key).wait(ctx)
}

// LoadThunk registers interest in key and returns a function that blocks
// for the result when called. It allows one goroutine to register keys
// against several loaders before waiting on any of them.
func (l *Loader[K, V]) LoadThunk(ctx context.Context, key K) func() (V, error) {
	s := l.register(ctx, key)
	return func() (V, error) {
		return s.wait(ctx)
	}
}

// LoadMany loads all keys and returns values in input order. All keys are
// registered before any waiting happens, so they share one collection
// window (and one batch, up to WithMaxBatch) with each other and with any
// concurrent Load calls. The first failed key's error is returned.
func (l *Loader[K, V]) LoadMany(ctx context.Context, keys []K) ([]V, error) {
	slots := make([]*slot[K, V], len(keys))
	for i, key := range keys {
		slots[i] = l.register(ctx, key)
	}

	out := make([]V, len(keys))
	for i, s := range slots {
		v, err := s.wait(ctx)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Clear evicts key from the cache so the next Load refetches it. It has no
// effect on a batch currently in flight for that key: waiters already
// registered still receive their result.
func (l *Loader[K, V]) Clear(key K) {
	l.mu.Lock()
	delete(l.cache, key)
	l.mu.Unlock()
}

// ClearAll evicts every cached key. In-flight batches are unaffected.
func (l *Loader[K, V]) ClearAll() {
	l.mu.Lock()
	l.cache = make(map[K]*slot[K, V])
	l.mu.Unlock()
}

// Prime seeds the cache with a value, typically one obtained through some
// other query path. It reports whether the value was stored; a key that is
// already cached or in flight is left untouched. To overwrite, Clear first.
func (l *Loader[K, V]) Prime(key K, value V) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.cache[key]; ok {
		return false
	}
	b := &fetchBatch[K, V]{
		data: []V{value},
		done: make(chan struct{}),
	}
	close(b.done)
	l.cache[key] = &slot[K, V]{batch: b}
	return true
}

// Stats returns a snapshot of the loader's counters.
func (l *Loader[K, V]) Stats() Stats {
	return l.stats.snapshot()
}

// register looks up or creates the slot for key. The first registration of
// a collection window creates the pending batch and schedules its dispatch;
// later registrations join it. Reaching the WithMaxBatch cap seals the
// batch and dispatches it right away.
func (l *Loader[K, V]) register(ctx context.Context, key K) *slot[K, V] {
	l.mu.Lock()

	if s, ok := l.cache[key]; ok {
		l.stats.cacheHits.Add(1)
		l.mu.Unlock()
		return s
	}
	l.stats.cacheMisses.Add(1)

	b := l.pending
	if b == nil {
		b = &fetchBatch[K, V]{
			ctx:  ctx,
			done: make(chan struct{}),
		}
		l.pending = b
		go l.dispatchAfterWait(b)
	}

	s := &slot[K, V]{batch: b, pos: len(b.keys)}
	b.keys = append(b.keys, key)
	l.cache[key] = s

	var full *fetchBatch[K, V]
	if l.maxBatch > 0 && len(b.keys) >= l.maxBatch {
		l.pending = nil
		full = b
	}
	l.mu.Unlock()

	if full != nil {
		go l.dispatch(full)
	}
	return s
}

// dispatchAfterWait closes the collection window for b once the configured
// wait elapses. If b was already sealed by the max-batch cap, the pending
// pointer has moved on and this is a no-op.
func (l *Loader[K, V]) dispatchAfterWait(b *fetchBatch[K, V]) {
	time.Sleep(l.wait)

	l.mu.Lock()
	if l.pending != b {
		l.mu.Unlock()
		return
	}
	l.pending = nil
	l.mu.Unlock()

	l.dispatch(b)
}

// dispatch runs the batch function for a sealed batch and resolves every
// waiter. On failure the affected keys are evicted so later loads refetch;
// nothing from a failed batch is ever cached.
func (l *Loader[K, V]) dispatch(b *fetchBatch[K, V]) {
	l.logger.Debug("loader: dispatching batch of %d key(s)", len(b.keys))

	// The opener's ctx supplies request-scoped values, but its cancellation
	// must not poison the batch for the other waiters.
	data, err := l.fetch(context.WithoutCancel(b.ctx), b.keys)
	switch {
	case err != nil:
		b.err = &FetchError{Err: err}
	case len(data) != len(b.keys):
		b.err = fmt.Errorf("%w: %d result(s) for %d key(s)", ErrResultLength, len(data), len(b.keys))
	default:
		b.data = data
		l.stats.batches.Add(1)
		l.stats.keysFetched.Add(uint64(len(b.keys)))
		l.logger.Debug("loader: batch of %d key(s) resolved", len(b.keys))
	}

	if b.err != nil {
		l.stats.fetchErrors.Add(1)
		l.logger.Error("loader: batch of %d key(s) failed: %v", len(b.keys), b.err)

		l.mu.Lock()
		for _, k := range b.keys {
			if s, ok := l.cache[k]; ok && s.batch == b {
				delete(l.cache, k)
			}
		}
		l.mu.Unlock()
	}

	close(b.done)
}
