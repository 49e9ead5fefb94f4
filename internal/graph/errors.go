package graph

import "fmt"

// ArityError reports a connection feeding a consumer the wrong number of
// input buffers.
type ArityError struct {
	Node string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("node %q: expected %d inputs, got %d", e.Node, e.Want, e.Got)
}

// DimensionError reports an input buffer whose length differs from the
// consumer node's fixed dimension.
type DimensionError struct {
	Node string
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("node %q: expected dimension %d, got %d", e.Node, e.Want, e.Got)
}

// InvalidInvocationError reports an Input node placed as a connection's
// consumer. Inputs are sources, never sinks.
type InvalidInvocationError struct {
	Node string
}

func (e *InvalidInvocationError) Error() string {
	return fmt.Sprintf("node %q is an input and cannot be invoked", e.Node)
}
