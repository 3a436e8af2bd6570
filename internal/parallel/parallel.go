// Package parallel runs fork-join loops over independent index ranges.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// chunksPerWorker oversubscribes the pool a little so uneven iterations
// (e.g. pixels that miss vs. pixels that hit) still balance.
const chunksPerWorker = 4

// For calls body(i) for every i in [0, n). Iterations run concurrently and
// in no particular order; body must only write to slots owned by i.
// For returns once every iteration has completed.
func For(n int, body func(i int)) {
	Range(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			body(i)
		}
	})
}

// Range splits [0, n) into contiguous chunks and calls body(lo, hi) for each
// chunk concurrently.
func Range(n int, body func(lo, hi int)) {
	if n <= 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := max(1, n/(workers*chunksPerWorker))
	if chunk >= n || workers == 1 {
		body(0, n)
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		lo := lo
		hi := min(lo+chunk, n)
		g.Go(func() error {
			body(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
