package graph

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/vk/holograph/internal/ctxlog"
)

// Graph is an ordered sequence of depths, each depth a set of connections
// assumed independent of one another. The engine performs no dependency
// validation between depths: a connection whose producer is not an Input and
// not the consumer of a strictly earlier depth reads whatever that producer's
// buffer currently holds (zeros on a first run). See builder.ValidateDepths
// for the opt-in strict mode.
type Graph struct {
	depths [][]*Connection
}

// New constructs a graph from caller-supplied depth layers. The graph does
// not copy the slices; callers must not mutate them after construction.
func New(depths [][]*Connection) *Graph {
	return &Graph{depths: depths}
}

// Depths returns the depth layers in execution order.
func (g *Graph) Depths() [][]*Connection { return g.depths }

// Connections returns the total number of connections across all depths.
func (g *Graph) Connections() int {
	total := 0
	for _, depth := range g.depths {
		total += len(depth)
	}
	return total
}

// Run executes the graph concurrently: depths strictly in order, every
// connection within a depth fanned out at once, with a full barrier before
// the next depth starts. Kernel computations are dispatched to a pool of
// workers workers (defaulting to GOMAXPROCS when non-positive).
//
// If any connection in a depth fails, its already-started siblings finish
// before the error is surfaced, later depths never start, and buffers
// written by earlier depths remain intact and readable. Run may be invoked
// repeatedly; each invocation overwrites all operator buffers in depth order.
func (g *Graph) Run(ctx context.Context, workers int) error {
	logger := ctxlog.FromContext(ctx)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	pool := StartPool(ctx, workers)
	defer pool.Close()

	for i, depth := range g.depths {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug("Starting depth.", "depth", i, "connections", len(depth))

		errs := make([]error, len(depth))
		var wg sync.WaitGroup
		for j, conn := range depth {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[j] = conn.Feed(ctx, pool)
			}()
		}
		wg.Wait() // barrier: all siblings finish, success or not

		for _, err := range errs {
			if err != nil {
				return fmt.Errorf("depth %d: %w", i, err)
			}
		}
		logger.Debug("Depth complete.", "depth", i)
	}
	return nil
}

// RunSync executes every connection strictly in declaration order with no
// concurrency. For a well-formed DAG the result is bit-identical to Run,
// because kernels are pure and buffers have a single writer.
func (g *Graph) RunSync(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	for i, depth := range g.depths {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug("Starting depth.", "depth", i, "connections", len(depth), "mode", "sync")
		for _, conn := range depth {
			if err := conn.Feed(ctx, nil); err != nil {
				return fmt.Errorf("depth %d: %w", i, err)
			}
		}
	}
	return nil
}
