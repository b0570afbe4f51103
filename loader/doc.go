// Package loader provides a per-key batching and memoizing Loader that
// collapses many concurrent point lookups into a single bulk fetch.
//
// A Loader is constructed with a BatchFunc that knows how to translate a
// list of keys into one bulk fetch against its store. Concurrent Load calls
// made within a short collection window are gathered into a single batch,
// deduplicated, and dispatched as one BatchFunc call. Results are cached
// for the lifetime of the Loader, so repeated loads of the same key never
// refetch.
//
// Loaders are cheap to create and are meant to be scoped to a single
// logical unit of work, such as an HTTP request or a session. The cache has
// no eviction policy; discard the Loader when the unit of work ends.
//
// Basic usage:
//
//	fetch := func(ctx context.Context, ids []string) ([]*User, error) {
//		// One bulk query for all ids, results aligned to ids.
//		return store.UsersByIDs(ctx, ids)
//	}
//
//	l := loader.New(fetch)
//	// Concurrent calls for different keys share one fetch.
//	u, err := l.Load(ctx, "user-1")
//
// Go offers no microtask-style scheduling boundary, so the collection
// window is approximated by a short, bounded wait (see WithWait). Every
// Load issued while the window is open joins the same batch.
package loader
