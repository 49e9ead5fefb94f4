// Package builder translates a format-agnostic config.Model into an
// executable graph. It owns everything construction-time: the seeded RNG for
// random symbols, address resolution, the kernel registry lookup, and the
// optional strict depth validation.
package builder

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/vk/holograph/internal/config"
	"github.com/vk/holograph/internal/ctxlog"
	"github.com/vk/holograph/internal/graph"
	"github.com/vk/holograph/internal/hrr"
	"github.com/vk/holograph/internal/registry"
)

// Options configures a build.
type Options struct {
	// Seed initializes the PCG source used for random symbols. The same seed
	// over the same model always produces the same leaf vectors.
	Seed uint64

	// ValidateDepths enables the strict mode rejecting connections whose
	// producers are not Input nodes or consumers of a strictly earlier
	// depth. The default preserves the engine's permissive behavior: such a
	// producer is silently read as whatever its buffer holds (zeros on a
	// first run).
	ValidateDepths bool

	// Registry supplies the kernel table; nil selects registry.Core().
	Registry *registry.Registry
}

// Result is a built graph plus the node index keyed by address
// ("symbol.name", "bind.name", ...). Addresses preserves declaration order
// for deterministic reporting.
type Result struct {
	Graph     *graph.Graph
	Nodes     map[string]*graph.Node
	Addresses []string
}

// Node returns the node at the given address.
func (r *Result) Node(address string) (*graph.Node, bool) {
	n, ok := r.Nodes[address]
	return n, ok
}

// Builder constructs graphs from config models.
type Builder struct {
	opts Options
	reg  *registry.Registry
}

// New creates a builder with the given options.
func New(opts Options) *Builder {
	reg := opts.Registry
	if reg == nil {
		reg = registry.Core()
	}
	return &Builder{opts: opts, reg: reg}
}

// Build runs the two construction passes: create every node, then wire the
// depth layers. The returned graph is ready to run.
func (b *Builder) Build(ctx context.Context, model *config.Model) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	res := &Result{Nodes: make(map[string]*graph.Node)}
	rng := rand.New(rand.NewPCG(b.opts.Seed, b.opts.Seed))

	if err := b.createNodes(model, res, rng); err != nil {
		return nil, err
	}
	logger.Debug("Node creation pass complete.", "nodes", len(res.Nodes))

	depths, err := b.linkDepths(model, res)
	if err != nil {
		return nil, err
	}
	logger.Debug("Depth linking pass complete.", "depths", len(depths))

	res.Graph = graph.New(depths)
	return res, nil
}

// createNodes performs the first pass: symbols, then operator nodes.
func (b *Builder) createNodes(model *config.Model, res *Result, rng *rand.Rand) error {
	add := func(address string, n *graph.Node) error {
		if _, exists := res.Nodes[address]; exists {
			return fmt.Errorf("duplicate definition for %q", address)
		}
		res.Nodes[address] = n
		res.Addresses = append(res.Addresses, address)
		return nil
	}

	for _, sym := range model.Symbols {
		var vec hrr.Vector
		if sym.Values != nil {
			vec = hrr.Clone(sym.Values)
		} else {
			vec = hrr.Normal(rng, sym.Dim, sym.SD)
		}
		if err := add("symbol."+sym.Name, graph.NewInput(sym.Name, vec)); err != nil {
			return err
		}
	}

	for _, n := range model.Nodes {
		kernel, ok := b.reg.Lookup(n.Op)
		if !ok {
			return fmt.Errorf("node %q: unknown kernel %q (registered: %v)", n.Name, n.Op, b.reg.Names())
		}
		if n.Dim <= 0 {
			return fmt.Errorf("node %q: dim must be positive, got %d", n.Name, n.Dim)
		}
		if err := add(n.Op+"."+n.Name, graph.NewOperator(n.Name, n.Dim, kernel)); err != nil {
			return err
		}
	}

	return nil
}

// linkDepths performs the second pass: resolve every connect's addresses and
// assemble the ordered depth layers.
func (b *Builder) linkDepths(model *config.Model, res *Result) ([][]*graph.Connection, error) {
	// definedAt records the depth at which an address first receives a
	// value: -1 for symbols, the consumer's depth index for operators.
	definedAt := make(map[string]int)
	for _, sym := range model.Symbols {
		definedAt["symbol."+sym.Name] = -1
	}

	depths := make([][]*graph.Connection, 0, len(model.Depths))
	for i, depth := range model.Depths {
		consumersSeen := make(map[string]struct{})
		layer := make([]*graph.Connection, 0, len(depth.Connects))

		for j, c := range depth.Connects {
			consumer, ok := res.Nodes[c.Output]
			if !ok {
				return nil, fmt.Errorf("depth %d connect %d: unknown output %q", i, j, c.Output)
			}
			if consumer.Kind() == graph.KindInput {
				return nil, fmt.Errorf("depth %d connect %d: %q is a symbol and cannot consume inputs", i, j, c.Output)
			}
			if _, dup := consumersSeen[c.Output]; dup {
				return nil, fmt.Errorf("depth %d: %q is consumed by more than one connection in the same depth", i, c.Output)
			}
			consumersSeen[c.Output] = struct{}{}

			producers := make([]*graph.Node, len(c.Inputs))
			for k, addr := range c.Inputs {
				p, ok := res.Nodes[addr]
				if !ok {
					return nil, fmt.Errorf("depth %d connect %d: unknown input %q", i, j, addr)
				}
				if b.opts.ValidateDepths {
					at, defined := definedAt[addr]
					if !defined || at >= i {
						return nil, fmt.Errorf("depth %d connect %d: input %q is not produced at a strictly earlier depth", i, j, addr)
					}
				}
				producers[k] = p
			}

			layer = append(layer, graph.NewConnection(producers, consumer))
		}

		// Consumers become visible to later depths only, matching the
		// barrier semantics.
		for addr := range consumersSeen {
			definedAt[addr] = i
		}
		depths = append(depths, layer)
	}

	return depths, nil
}
