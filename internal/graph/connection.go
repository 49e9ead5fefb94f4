package graph

import (
	"context"
	"fmt"

	"github.com/vk/holograph/internal/hrr"
)

// Connection is a graph edge: zero or more producer nodes whose output
// buffers feed one consumer node's invocation, in declared order. Connections
// hold shared references; the graph's ownership of all nodes keeps them valid
// for the duration of a run, and multiple connections may read the same
// producer.
type Connection struct {
	producers []*Node
	consumer  *Node
}

// NewConnection wires the given producers, in argument order, into consumer.
func NewConnection(producers []*Node, consumer *Node) *Connection {
	return &Connection{producers: producers, consumer: consumer}
}

// Producers returns the producer nodes in declared order.
func (c *Connection) Producers() []*Node { return c.producers }

// Consumer returns the consumer node.
func (c *Connection) Consumer() *Node { return c.consumer }

// Feed gathers the current output buffer of each producer, in declared
// order, and invokes the consumer with that argument list. It returns only
// after the consumer's kernel has completed. Kernel failures propagate
// unchanged apart from naming the edge; there are no retries, since arity and
// dimension faults are wiring errors, not transient ones.
func (c *Connection) Feed(ctx context.Context, pool *Pool) error {
	inputs := make([]hrr.Vector, len(c.producers))
	for i, p := range c.producers {
		inputs[i] = p.Output()
	}
	if err := c.consumer.Invoke(ctx, pool, inputs); err != nil {
		return fmt.Errorf("feeding %q: %w", c.consumer.Label(), err)
	}
	return nil
}
