package config

import "context"

// Loader is the interface for a format-specific grid loader. Load reads
// every definition file reachable from the given paths and translates the
// result into the format-agnostic model.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}
