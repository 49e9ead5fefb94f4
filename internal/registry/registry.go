// Package registry holds the table of named operator kernels that graph
// nodes dispatch through. The built-in set is closed (bind, bundle) but the
// table is open for registration, so additional operators can be wired in
// without touching the engine.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vk/holograph/internal/hrr"
)

// Func is a pure operator kernel. It receives input vectors in declared
// argument order and returns a freshly allocated result. Kernels must not
// retain or mutate their arguments.
type Func func(args []hrr.Vector) (hrr.Vector, error)

// Kernel describes a registered operator: its grid-facing name, the exact
// number of inputs it consumes, and the function that computes it.
type Kernel struct {
	Name  string
	Arity int
	Run   Func
}

// Registry is a concurrency-safe table of kernels keyed by name.
type Registry struct {
	mu      sync.RWMutex
	kernels map[string]Kernel
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{kernels: make(map[string]Kernel)}
}

// Core returns a registry populated with the built-in HRR kernels.
func Core() *Registry {
	r := New()
	for _, k := range coreKernels() {
		// Registration of the built-ins cannot collide.
		if err := r.Register(k); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a kernel to the table. Registering a name twice is a
// programmer error and is rejected.
func (r *Registry) Register(k Kernel) error {
	if k.Name == "" {
		return fmt.Errorf("kernel name must not be empty")
	}
	if k.Arity <= 0 {
		return fmt.Errorf("kernel %q: arity must be positive, got %d", k.Name, k.Arity)
	}
	if k.Run == nil {
		return fmt.Errorf("kernel %q: missing run function", k.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.kernels[k.Name]; exists {
		return fmt.Errorf("kernel %q is already registered", k.Name)
	}
	r.kernels[k.Name] = k
	return nil
}

// Lookup returns the kernel registered under name.
func (r *Registry) Lookup(name string) (Kernel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kernels[name]
	return k, ok
}

// Names returns the registered kernel names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.kernels))
	for name := range r.kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func coreKernels() []Kernel {
	return []Kernel{
		{
			Name:  "bind",
			Arity: 2,
			Run: func(args []hrr.Vector) (hrr.Vector, error) {
				return hrr.Bind(args[0], args[1])
			},
		},
		{
			Name:  "bundle",
			Arity: 2,
			Run: func(args []hrr.Vector) (hrr.Vector, error) {
				return hrr.Bundle(args[0], args[1])
			},
		},
	}
}
