package loader

import (
	"time"

	"github.com/mahimailabs/fluxcrud"
)

// DefaultWait is the length of the collection window when WithWait is not
// specified. It is short enough to be invisible next to a network
// round-trip while still letting logically-concurrent loads join the same
// batch.
const DefaultWait = 250 * time.Microsecond

type options struct {
	wait     time.Duration
	maxBatch int
	logger   fluxcrud.Logger
}

// Option configures a Loader.
type Option func(*options)

// WithWait sets the collection window. The first uncached Load opens a
// window of the given duration; every Load issued before it closes joins
// the same batch. Values <= 0 fall back to DefaultWait.
func WithWait(d time.Duration) Option {
	return func(o *options) {
		o.wait = d
	}
}

// WithMaxBatch caps the number of keys in a single batch. When the cap is
// reached the batch is dispatched immediately, without waiting for the
// collection window to close. Zero means no cap.
func WithMaxBatch(n int) Option {
	return func(o *options) {
		o.maxBatch = n
	}
}

// WithLogger sets the logger used to trace dispatch activity.
// If not set, no logging occurs.
func WithLogger(l fluxcrud.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
