// Package config defines the format-agnostic model of a grid definition:
// symbols, operator nodes, depth layers, and probes. Format-specific loaders
// (currently HCL) translate their own schema into this model, keeping the
// builder and engine independent of the configuration syntax.
package config
