package loader

import "sync/atomic"

// Stats is a snapshot of a Loader's counters.
type Stats struct {
	// CacheHits is the number of Load calls answered from the cache,
	// including loads that joined a batch already in flight.
	CacheHits uint64

	// CacheMisses is the number of Load calls that registered a new key.
	CacheMisses uint64

	// BatchesDispatched is the number of successful BatchFunc calls.
	BatchesDispatched uint64

	// KeysFetched is the total number of keys passed to successful
	// BatchFunc calls.
	KeysFetched uint64

	// FetchErrors is the number of failed batch dispatches, including
	// misaligned results.
	FetchErrors uint64
}

// statsCounters holds the live atomic counters behind Stats.
type statsCounters struct {
	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64
	batches     atomic.Uint64
	keysFetched atomic.Uint64
	fetchErrors atomic.Uint64
}

func (c *statsCounters) snapshot() Stats {
	return Stats{
		CacheHits:         c.cacheHits.Load(),
		CacheMisses:       c.cacheMisses.Load(),
		BatchesDispatched: c.batches.Load(),
		KeysFetched:       c.keysFetched.Load(),
		FetchErrors:       c.fetchErrors.Load(),
	}
}
