// Package graph is the execution layer of the engine. It models a dataflow
// DAG as nodes (buffers plus an operator kernel), connections (ordered
// producer lists feeding one consumer), and a graph of explicit depth layers.
// Depths run strictly in order; connections within one depth run concurrently
// with a full barrier before the next depth starts, so a node's output
// buffer always has exactly one writer and its writes happen-before every
// later depth's reads.
package graph
