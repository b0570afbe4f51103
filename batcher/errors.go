package batcher

import (
	"errors"
	"fmt"
)

var (
	// ErrNilProcess is returned by New when no process function is given.
	ErrNilProcess = errors.New("batcher: process function cannot be nil")

	// ErrSizeNotPositive is returned by New when the batch size is zero or
	// negative.
	ErrSizeNotPositive = errors.New("batcher: batch size must be positive")

	// ErrNegativeInterval is returned by New when the flush interval is
	// negative. Zero disables time-based flushing.
	ErrNegativeInterval = errors.New("batcher: flush interval cannot be negative")

	// ErrClosed is returned by Add and Flush after Close.
	ErrClosed = errors.New("batcher: closed")
)

// ProcessError wraps an error returned by a ProcessFunc, so the caller can
// tell a handler failure apart from the batcher's own errors.
type ProcessError struct {
	Err error
}

func (e ProcessError) Error() string {
	return fmt.Sprintf("process error: %v", e.Err)
}

func (e ProcessError) Unwrap() error {
	return e.Err
}
