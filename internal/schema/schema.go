// Package schema holds the HCL-specific structures a grid file decodes
// into. The hcl package translates these into the format-agnostic config
// model.
package schema

import "github.com/hashicorp/hcl/v2"

// Symbol represents a `symbol` block: a leaf input vector. Exactly one of
// `dim` (random unit-norm HRR symbol) or `values` (explicit components) is
// expected; the loader validates the combination.
type Symbol struct {
	Name   string         `hcl:"name,label"`
	Dim    int            `hcl:"dim,optional"`
	SD     float64        `hcl:"sd,optional"`
	Values hcl.Expression `hcl:"values,optional"`
}

// Node represents a `node` block: an operator instance. The first label
// selects the registered kernel ("bind", "bundle", ...), the second names
// the instance.
type Node struct {
	Op   string `hcl:"op,label"`
	Name string `hcl:"name,label"`
	Dim  int    `hcl:"dim"`
}

// Connect represents a `connect` block inside a depth: producer addresses in
// argument order, and the consumer address.
type Connect struct {
	Inputs []string `hcl:"inputs"`
	Output string   `hcl:"output"`
}

// Depth represents a `depth` block. Depth blocks are ordered; all connects
// within one block are eligible for concurrent execution.
type Depth struct {
	Connects []*Connect `hcl:"connect,block"`
}

// Probe represents a `probe` block: a post-run similarity diagnostic.
type Probe struct {
	Name   string `hcl:"name,label"`
	Source string `hcl:"source"`
	Unbind string `hcl:"unbind,optional"`
	Target string `hcl:"target"`
}

// GridConfig represents the top-level structure of a grid file.
type GridConfig struct {
	Symbols []*Symbol `hcl:"symbol,block"`
	Nodes   []*Node   `hcl:"node,block"`
	Depths  []*Depth  `hcl:"depth,block"`
	Probes  []*Probe  `hcl:"probe,block"`
	Body    hcl.Body  `hcl:",remain"`
}
