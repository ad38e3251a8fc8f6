// Package parallel provides row-parallel fan-out for the pixel-grid inner
// loops used throughout the imaging core: demosaicing, auto-analysis,
// mask rasterisation, panorama warps, histogram accumulation, feature
// detection and the separable convolutions in the Menon demosaicer.
//
// There is no synchronisation inside a stage beyond the implicit join:
// callers hand in a pure per-row function and Rows hands rows out to up
// to GOMAXPROCS workers through a shared atomic counter.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Rows calls fn(y) for every y in [0, height) using up to GOMAXPROCS
// goroutines. fn must not mutate state shared across rows other than
// through disjoint slices indexed by y. Rows blocks until every row has
// completed.
func Rows(height int, fn func(y int)) {
	if height <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		for y := 0; y < height; y++ {
			fn(y)
		}
		return
	}

	var next int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				y := int(atomic.AddInt64(&next, 1)) - 1
				if y >= height {
					return
				}
				fn(y)
			}
		}()
	}
	wg.Wait()
}

// Range calls fn(i) for every i in [0, n) using up to GOMAXPROCS goroutines,
// the same work-stealing scheme as Rows but for index spaces that are not
// image rows (RANSAC iterations, pairwise match evaluations).
func Range(n int, fn func(i int)) {
	Rows(n, fn)
}
