package config

// Model is the unified, format-agnostic representation of a grid: the
// symbols and operator nodes to construct, the ordered depth layers wiring
// them together, and the probes evaluated after a run.
type Model struct {
	Symbols []*Symbol
	Nodes   []*Node
	Depths  []*Depth
	Probes  []*Probe
}

// Symbol declares a leaf input vector. Either Values carries the explicit
// components (Dim, if present, must agree with their count), or Dim requests
// a fresh unit-norm random HRR vector of that dimension drawn from the run's
// seeded RNG. SD optionally overrides the sampling standard deviation.
type Symbol struct {
	Name   string
	Dim    int
	SD     float64
	Values []float64
}

// Node declares an operator node: Op selects a registered kernel, Dim fixes
// the node's dimensionality.
type Node struct {
	Op   string
	Name string
	Dim  int
}

// Depth is one execution layer: the set of connections eligible to run
// concurrently once every earlier depth has completed.
type Depth struct {
	Connects []*Connect
}

// Connect wires producer addresses, in argument order, into one consumer
// address. Addresses take the form "symbol.name" or "<op>.name".
type Connect struct {
	Inputs []string
	Output string
}

// Probe is a post-run diagnostic: the similarity between
// unbind(out(Source), out(Unbind)) and out(Target). An empty Unbind compares
// Source against Target directly.
type Probe struct {
	Name   string
	Source string
	Unbind string
	Target string
}
