// Package batcher provides a size- and time-triggered batch accumulator.
//
// A Batcher buffers a stream of items and hands the whole buffer to a
// user-supplied ProcessFunc once either the configured batch size is
// reached or the flush interval elapses, whichever comes first. Write paths
// use it to turn many small writes into few bulk ones.
//
// Basic usage:
//
//	process := func(ctx context.Context, rows []Row) error {
//		return store.BulkInsert(ctx, rows)
//	}
//
//	b, err := batcher.New(process, 100, 50*time.Millisecond)
//	if err != nil {
//		return err
//	}
//	defer b.Close(ctx)
//
//	for _, row := range rows {
//		if err := b.Add(ctx, row); err != nil {
//			return err
//		}
//	}
//
// Close performs a final flush of anything still buffered. When the final
// flush must happen on every exit path, including failures, use Run:
//
//	err := b.Run(ctx, func(b *batcher.Batcher[Row]) error {
//		for _, row := range rows {
//			if err := b.Add(ctx, row); err != nil {
//				return err
//			}
//		}
//		return nil
//	})
//
// The handler is never invoked with an empty batch, and a flush drains the
// entire buffer atomically: items added while the handler is running start
// a fresh buffer and never interleave into the in-flight batch.
package batcher
