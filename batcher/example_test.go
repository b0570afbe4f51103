package batcher_test

import (
	"context"
	"fmt"

	"github.com/mahimailabs/fluxcrud/batcher"
)

func ExampleBatcher() {
	process := func(_ context.Context, items []int) error {
		fmt.Println("processing:", items)
		return nil
	}

	b, err := batcher.New(process, 3, 0)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	ctx := context.Background()
	for i := 1; i <= 4; i++ {
		if err := b.Add(ctx, i); err != nil {
			fmt.Println("error:", err)
			return
		}
	}

	// The first three items flushed on size; Close picks up the rest.
	if err := b.Close(ctx); err != nil {
		fmt.Println("error:", err)
	}

	// Output:
	// processing: [1 2 3]
	// processing: [4]
}

func ExampleBatcher_Run() {
	process := func(_ context.Context, items []string) error {
		fmt.Println("bulk write:", items)
		return nil
	}

	b, err := batcher.New(process, 100, 0)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	ctx := context.Background()
	err = b.Run(ctx, func(b *batcher.Batcher[string]) error {
		for _, row := range []string{"a", "b", "c"} {
			if err := b.Add(ctx, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		fmt.Println("error:", err)
	}

	// Output:
	// bulk write: [a b c]
}
