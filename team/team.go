package team

import (
	"context"
	"sync"
	"sync/atomic"
)

// WorkerFunc is a function that processes a job of type T and returns a result of type U (and optionally error)
type WorkerFunc[T any, U any] func(context.Context, T) (U, error)

// Team is a generic worker pool
// WorkerCount: number of concurrent workers
// Worker: the function to process each job
// Completed: optional counter bumped after every job, for progress reporting
type Team[T any, U any] struct {
	WorkerCount int
	Worker      WorkerFunc[T, U]
	Completed   *int64
}

type indexed[T any] struct {
	pos int
	job T
}

// Run executes the worker pool and returns the results in job order.
// Jobs whose worker returned an error are dropped. Once ctx is done no
// new job is started.
func (t *Team[T, U]) Run(ctx context.Context, jobs []T) []U {
	workers := t.WorkerCount
	if workers <= 0 || workers > len(jobs) {
		workers = len(jobs)
	}

	jobChan := make(chan indexed[T], len(jobs))
	results := make([]U, len(jobs))
	ok := make([]bool, len(jobs))
	var wg sync.WaitGroup

	// Start workers
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobChan {
				if ctx.Err() != nil {
					continue
				}
				if res, err := t.Worker(ctx, item.job); err == nil {
					results[item.pos] = res
					ok[item.pos] = true
				}
				if t.Completed != nil {
					atomic.AddInt64(t.Completed, 1)
				}
			}
		}()
	}

	// Feed jobs
	for i, job := range jobs {
		jobChan <- indexed[T]{pos: i, job: job}
	}
	close(jobChan)
	wg.Wait()

	var out []U
	for i, res := range results {
		if ok[i] {
			out = append(out, res)
		}
	}
	return out
}
