package graph

import (
	"context"
	"sync"

	"github.com/vk/holograph/internal/ctxlog"
	"github.com/vk/holograph/internal/hrr"
)

// Pool is a bounded set of worker goroutines executing CPU-bound kernel
// jobs. Connections within a depth dispatch their kernels here so the numeric
// work runs off the coordinating goroutine and spreads across cores.
type Pool struct {
	jobs chan poolJob
	wg   sync.WaitGroup
}

type poolJob struct {
	run  func() (hrr.Vector, error)
	done chan poolResult
}

type poolResult struct {
	out hrr.Vector
	err error
}

// StartPool launches workers goroutines consuming the job queue. The context
// is used for worker logging only; job-level cancellation is handled in Do.
func StartPool(ctx context.Context, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{jobs: make(chan poolJob)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(ctx, i)
	}
	return p
}

// worker is the processing loop for a single pool goroutine.
func (p *Pool) worker(ctx context.Context, workerID int) {
	defer p.wg.Done()
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Kernel worker started.", "workerID", workerID)

	for job := range p.jobs {
		out, err := job.run()
		job.done <- poolResult{out: out, err: err}
	}

	logger.Debug("Kernel worker finished.", "workerID", workerID)
}

// Do submits fn to the pool and blocks until it completes or ctx is
// canceled before a worker picks it up. A job that has already started is
// allowed to finish; cancellation is observed at dispatch points.
func (p *Pool) Do(ctx context.Context, fn func() (hrr.Vector, error)) (hrr.Vector, error) {
	done := make(chan poolResult, 1)
	select {
	case p.jobs <- poolJob{run: fn, done: done}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	res := <-done
	return res.out, res.err
}

// Close drains the pool: no further jobs are accepted, and Close returns
// once every worker has exited.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
