package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RowFunc renders one image row. Rows are disjoint, so concurrent calls
// for different rows never write the same pixels.
type RowFunc func(row int) RowResult

// WorkerPool renders image rows in parallel
type WorkerPool struct {
	numWorkers int
	render     RowFunc
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A non-positive count uses one worker per CPU.
func NewWorkerPool(numWorkers int, render RowFunc) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		numWorkers: numWorkers,
		render:     render,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders rows [0, rows) and returns per-row results indexed by row.
// It stops handing out rows once ctx is cancelled.
func (wp *WorkerPool) Run(ctx context.Context, rows int) ([]RowResult, error) {
	results := make([]RowResult, rows)
	taskQueue := make(chan int)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(taskQueue)
		for row := 0; row < rows; row++ {
			select {
			case taskQueue <- row:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < wp.numWorkers; i++ {
		g.Go(func() error {
			for row := range taskQueue {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[row] = wp.render(row)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
