// Package parallel dispatches per-cell and per-mode kernels over index
// spaces. Units of work never synchronize with each other; the only ordering
// guarantee is that For returns after every unit has completed, which
// establishes the read-after-write ordering between kernel invocations.
package parallel

import (
	"runtime"
	"sync"

	"github.com/plasmakit/picmesh/grid"
)

// Degree is the number of execution lanes used by For. It defaults to the
// number of CPUs and may be lowered for deterministic profiling.
var Degree = runtime.NumCPU()

// For splits [0,n) into contiguous chunks, one per lane, and runs fn on each
// chunk concurrently. fn must not write outside its own chunk's outputs.
func For(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	np := Degree
	if np > n {
		np = n
	}
	if np <= 1 {
		fn(0, n)
		return
	}
	chunk := (n + np - 1) / np
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// ForBox runs fn once per cell of b. The k planes are sharded across lanes,
// matching the slowest-varying axis of grid.Array storage.
func ForBox(b grid.Box, fn func(i, j, k int)) {
	n := b.Size()
	For(n[2], func(lo, hi int) {
		for k := b.Lo[2] + lo; k <= b.Lo[2]+hi-1; k++ {
			for j := b.Lo[1]; j <= b.Hi[1]; j++ {
				for i := b.Lo[0]; i <= b.Hi[0]; i++ {
					fn(i, j, k)
				}
			}
		}
	})
}
