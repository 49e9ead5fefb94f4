package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GridPath string // .hcl file or directory of .hcl files

	Seed         uint64 // RNG seed for random symbols
	WorkerCount  int    // kernel pool size; 0 selects GOMAXPROCS
	Sync         bool   // execute connections sequentially instead of concurrently
	StrictDepths bool   // reject producers not defined at a strictly earlier depth

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GridPath == "" {
		return nil, errors.New("GridPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
