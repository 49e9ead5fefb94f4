package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGrid(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestLoad_FullGrid(t *testing.T) {
	dir := writeGrid(t, map[string]string{
		"main.hcl": `
			symbol "a" {
				dim = 100
			}
			symbol "b" {
				dim = 100
				sd  = 0.5
			}
			symbol "lit" {
				values = [1, 2.5, -3]
			}

			node "bind" "c" {
				dim = 100
			}
			node "bundle" "d" {
				dim = 100
			}

			depth {
				connect {
					inputs = ["symbol.a", "symbol.b"]
					output = "bind.c"
				}
			}
			depth {
				connect {
					inputs = ["bind.c", "symbol.a"]
					output = "bundle.d"
				}
			}

			probe "recover_a" {
				source = "bind.c"
				unbind = "symbol.b"
				target = "symbol.a"
			}
		`,
	})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, model.Symbols, 3)
	assert.Equal(t, "a", model.Symbols[0].Name)
	assert.Equal(t, 100, model.Symbols[0].Dim)
	assert.Equal(t, 0.5, model.Symbols[1].SD)
	assert.Equal(t, []float64{1, 2.5, -3}, model.Symbols[2].Values)

	require.Len(t, model.Nodes, 2)
	assert.Equal(t, "bind", model.Nodes[0].Op)
	assert.Equal(t, "c", model.Nodes[0].Name)
	assert.Equal(t, 100, model.Nodes[0].Dim)

	require.Len(t, model.Depths, 2)
	require.Len(t, model.Depths[0].Connects, 1)
	assert.Equal(t, []string{"symbol.a", "symbol.b"}, model.Depths[0].Connects[0].Inputs)
	assert.Equal(t, "bind.c", model.Depths[0].Connects[0].Output)
	assert.Equal(t, "bundle.d", model.Depths[1].Connects[0].Output)

	require.Len(t, model.Probes, 1)
	assert.Equal(t, "recover_a", model.Probes[0].Name)
	assert.Equal(t, "symbol.b", model.Probes[0].Unbind)
}

func TestLoad_MergesMultipleFiles(t *testing.T) {
	dir := writeGrid(t, map[string]string{
		// Lexical order within a directory fixes depth ordering.
		"01_symbols.hcl": `
			symbol "a" { dim = 10 }
			symbol "b" { dim = 10 }
			node "bind" "c" { dim = 10 }
		`,
		"02_wiring.hcl": `
			depth {
				connect {
					inputs = ["symbol.a", "symbol.b"]
					output = "bind.c"
				}
			}
		`,
	})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, model.Symbols, 2)
	assert.Len(t, model.Nodes, 1)
	assert.Len(t, model.Depths, 1)
}

func TestLoad_SingleFilePath(t *testing.T) {
	dir := writeGrid(t, map[string]string{
		"grid.hcl": `symbol "a" { dim = 4 }`,
	})

	model, err := NewLoader().Load(context.Background(), filepath.Join(dir, "grid.hcl"))
	require.NoError(t, err)
	assert.Len(t, model.Symbols, 1)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name    string
		grid    string
		wantMsg string
	}{
		{
			name:    "malformed hcl",
			grid:    `symbol "a" {`,
			wantMsg: "failed to parse",
		},
		{
			name:    "symbol without dim or values",
			grid:    `symbol "a" {}`,
			wantMsg: "either dim or values is required",
		},
		{
			name: "dim disagrees with values",
			grid: `symbol "a" {
				dim    = 4
				values = [1, 2]
			}`,
			wantMsg: "disagrees",
		},
		{
			name:    "values not numeric",
			grid:    `symbol "a" { values = ["x"] }`,
			wantMsg: "list of numbers",
		},
		{
			name:    "node without dim",
			grid:    `node "bind" "c" {}`,
			wantMsg: "failed to decode",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeGrid(t, map[string]string{"main.hcl": tc.grid})
			_, err := NewLoader().Load(context.Background(), dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestLoad_NoFilesFound(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .hcl grid files found")

	// A nonexistent path is skipped, leaving nothing to load.
	_, err = NewLoader().Load(context.Background(), "/definitely/not/here")
	require.Error(t, err)
}
