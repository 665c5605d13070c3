// Package parallel provides a bounded fan-out helper for independent,
// fixed-size units of work. Earlier incarnations of this pool
// dynamically scaled worker count against a self-feeding goal queue and
// detected deadlocks among blocked workers; a taxonomy reduction's
// workload is known in full up front (one task per concept, no
// dependencies between tasks, no scaling decisions to make at
// runtime), so that machinery is dropped in favor of a plain
// semaphore-bounded WaitGroup fan-out.
package parallel

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// DefaultWorkers returns the default concurrency bound used when a
// caller does not pick one explicitly: the number of logical CPUs.
func DefaultWorkers() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

// Run executes fn(i) for every i in [0, n), bounded to at most
// DefaultWorkers() concurrent calls. It blocks until every call has
// returned. fn must not panic; Run does not recover.
func Run(n int, fn func(i int)) {
	RunWithWorkers(n, DefaultWorkers(), fn)
}

// RunWithWorkers is Run with an explicit concurrency bound. A
// non-positive workers falls back to DefaultWorkers().
func RunWithWorkers(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		// Acquire blocks the submitting goroutine, not a worker
		// goroutine, so backpressure never needs its own channel.
		_ = sem.Acquire(context.Background(), 1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			fn(i)
		}()
	}
	wg.Wait()
}
