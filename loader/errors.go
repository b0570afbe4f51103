package loader

import (
	"errors"
	"fmt"
)

// ErrResultLength is returned to every waiter of a batch whose BatchFunc
// returned a result slice that is not aligned to the key list.
var ErrResultLength = errors.New("loader: batch result length does not match key count")

// FetchError wraps an error returned by a BatchFunc. Every Load waiting on
// the failed batch receives the same FetchError.
type FetchError struct {
	Err error
}

func (e FetchError) Error() string {
	return fmt.Sprintf("batch fetch error: %v", e.Err)
}

func (e FetchError) Unwrap() error {
	return e.Err
}
