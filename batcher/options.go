package batcher

import "github.com/mahimailabs/fluxcrud"

type options struct {
	logger fluxcrud.Logger
}

// Option configures a Batcher.
type Option func(*options)

// WithLogger sets the logger used to trace flush activity.
// If not set, no logging occurs.
func WithLogger(l fluxcrud.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
