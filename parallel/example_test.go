package parallel_test

import (
	"context"
	"fmt"

	"github.com/mahimailabs/fluxcrud/parallel"
)

func ExampleGatherLimited() {
	tasks := make([]parallel.Task[int], 4)
	for i := range tasks {
		n := i + 1
		tasks[i] = func(_ context.Context) (int, error) {
			// Stands in for a remote call; at most two run at once.
			return n * n, nil
		}
	}

	results, err := parallel.GatherLimited(context.Background(), 2, tasks)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(results)

	// Output:
	// [1 4 9 16]
}
