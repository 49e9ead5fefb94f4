// Package hcl is the HCL implementation of the config.Loader interface. It
// discovers .hcl grid files, parses and decodes them against the schema
// package, and translates the result into the format-agnostic config model.
package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/holograph/internal/config"
	"github.com/vk/holograph/internal/ctxlog"
	"github.com/vk/holograph/internal/schema"
)

// Loader loads grid definitions from HCL files.
type Loader struct{}

// NewLoader creates a new HCL grid loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the HCL loading process. Each path may be a single .hcl
// file or a directory walked recursively; files are processed in lexical
// order within a directory so that depth ordering across files is
// deterministic.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl grid files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.GridConfig
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, sym := range root.Symbols {
			translated, err := l.translateSymbol(sym)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Symbols = append(model.Symbols, translated)
		}
		for _, n := range root.Nodes {
			model.Nodes = append(model.Nodes, l.translateNode(n))
		}
		for _, d := range root.Depths {
			model.Depths = append(model.Depths, l.translateDepth(d))
		}
		for _, p := range root.Probes {
			model.Probes = append(model.Probes, l.translateProbe(p))
		}
	}

	logger.Debug("HCL loading complete.",
		"symbols", len(model.Symbols),
		"nodes", len(model.Nodes),
		"depths", len(model.Depths),
		"probes", len(model.Probes),
	)
	return model, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of the .hcl
// files found. A configured path that does not exist is skipped, not an
// error.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}

		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return allFiles, nil
}
