package integrate

import (
	"runtime"
	"sync"
)

// parallelFor splits [0, n) into chunks across GOMAXPROCS goroutines and
// calls fn once per chunk, joining before returning. Every wavefront
// kernel dispatch uses this instead of spawning one goroutine per item,
// keeping goroutine count independent of queue size.
func parallelFor(n int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if lo >= n {
			break
		}
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
