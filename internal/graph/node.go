package graph

import (
	"context"

	"github.com/vk/holograph/internal/hrr"
	"github.com/vk/holograph/internal/registry"
)

// Kind discriminates the closed set of node variants.
type Kind int

const (
	// KindInput is a leaf node holding a caller-supplied constant vector.
	KindInput Kind = iota
	// KindOperator is a computing node dispatching a registered kernel.
	KindOperator
)

// Node is the unit of computation. An Input node's output buffer is fixed at
// construction; an operator node's output buffer starts at zeros(dim) and is
// overwritten once per run, when its single connection's feed completes.
//
// The buffer returned by Output is a shared view owned by the node. The depth
// barrier guarantees all writes to it complete before any later depth reads
// it, so concurrent readers within a depth never race; readers must not
// mutate it.
type Node struct {
	label  string
	kind   Kind
	op     string
	dim    int
	kernel registry.Kernel
	out    hrr.Vector
}

// NewInput creates a leaf node whose output is the supplied vector. The
// node's dimension is inferred from the vector.
func NewInput(label string, vec hrr.Vector) *Node {
	return &Node{
		label: label,
		kind:  KindInput,
		dim:   len(vec),
		out:   vec,
	}
}

// NewOperator creates a computing node of fixed dimension dim, dispatching
// the given kernel. Its initial output buffer is zeros(dim).
func NewOperator(label string, dim int, kernel registry.Kernel) *Node {
	return &Node{
		label:  label,
		kind:   KindOperator,
		op:     kernel.Name,
		dim:    dim,
		kernel: kernel,
		out:    hrr.Zeros(dim),
	}
}

// Label returns the node's human-readable identifier.
func (n *Node) Label() string { return n.label }

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// Op returns the kernel name for operator nodes, empty for inputs.
func (n *Node) Op() string { return n.op }

// Dim returns the node's fixed dimensionality.
func (n *Node) Dim() int { return n.dim }

// Output returns a shared view of the most recent output buffer. See the
// Node type comment for the aliasing contract.
func (n *Node) Output() hrr.Vector { return n.out }

// Invoke consumes the input buffers in declared order, runs the node's
// kernel, and overwrites the output buffer with the result. The kernel is
// CPU-bound; when a pool is supplied the computation runs on a pool worker so
// that concurrent invocations within a depth use multiple cores. A nil pool
// runs the kernel inline (the synchronous variant).
//
// On any error the output buffer is left unchanged.
func (n *Node) Invoke(ctx context.Context, pool *Pool, inputs []hrr.Vector) error {
	if n.kind == KindInput {
		return &InvalidInvocationError{Node: n.label}
	}
	if len(inputs) != n.kernel.Arity {
		return &ArityError{Node: n.label, Want: n.kernel.Arity, Got: len(inputs)}
	}
	for _, in := range inputs {
		if len(in) != n.dim {
			return &DimensionError{Node: n.label, Want: n.dim, Got: len(in)}
		}
	}

	var out hrr.Vector
	var err error
	if pool == nil {
		out, err = n.kernel.Run(inputs)
	} else {
		out, err = pool.Do(ctx, func() (hrr.Vector, error) {
			return n.kernel.Run(inputs)
		})
	}
	if err != nil {
		return err
	}
	n.out = out
	return nil
}
