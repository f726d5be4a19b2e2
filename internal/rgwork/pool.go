// Package rgwork provides a small bounded worker pool for running
// independent file or archive-entry operations concurrently while each
// operation itself stays synchronous and self-contained, matching the
// engine and archive packages' single-threaded-per-call contract.
package rgwork

import (
	"context"
	"sync"
)

// Result pairs a work item's index with whatever error its execution
// produced (nil on success).
type Result struct {
	Index int
	Err   error
}

// Pool bounds how many units of work run concurrently. Grounded on the
// teacher's internal/util.BufferPool for the shape of a small reusable
// resource guard, adapted here to bound concurrent goroutines rather than
// reused byte buffers.
type Pool struct {
	jobs int
}

// New returns a pool that runs at most jobs goroutines at a time. jobs <= 0
// is treated as 1 (sequential).
func New(jobs int) *Pool {
	if jobs <= 0 {
		jobs = 1
	}
	return &Pool{jobs: jobs}
}

// Run calls fn(ctx, i) for every i in [0, n), running at most p.jobs calls
// concurrently, and returns one Result per item in item order.
//
// Run never stops early on error: spec.md's translation engine error
// policy is forgiving (one bad file doesn't abort a batch), and this
// extends that policy to batch mode — every item runs regardless of its
// siblings' outcome. If ctx is cancelled, items not yet started return
// ctx.Err() without running fn.
func (p *Pool) Run(ctx context.Context, n int, fn func(ctx context.Context, index int) error) []Result {
	results := make([]Result, n)
	sem := make(chan struct{}, p.jobs)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				results[i] = Result{Index: i, Err: err}
				return
			}
			results[i] = Result{Index: i, Err: fn(ctx, i)}
		}(i)
	}

	wg.Wait()
	return results
}
