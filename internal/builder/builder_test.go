package builder

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/holograph/internal/config"
	"github.com/vk/holograph/internal/graph"
	"github.com/vk/holograph/internal/hrr"
)

// treeModel is an 8-leaf binding tree: 4 binds at depth 0, 2 at depth 1,
// 1 at depth 2.
func treeModel(dim int) *config.Model {
	m := &config.Model{}
	for _, name := range []string{"x0", "x1", "x2", "x3", "x4", "x5", "x6", "x7"} {
		m.Symbols = append(m.Symbols, &config.Symbol{Name: name, Dim: dim})
	}
	for _, name := range []string{"b0", "b1", "b2", "b3", "c0", "c1", "root"} {
		m.Nodes = append(m.Nodes, &config.Node{Op: "bind", Name: name, Dim: dim})
	}
	m.Depths = []*config.Depth{
		{Connects: []*config.Connect{
			{Inputs: []string{"symbol.x0", "symbol.x1"}, Output: "bind.b0"},
			{Inputs: []string{"symbol.x2", "symbol.x3"}, Output: "bind.b1"},
			{Inputs: []string{"symbol.x4", "symbol.x5"}, Output: "bind.b2"},
			{Inputs: []string{"symbol.x6", "symbol.x7"}, Output: "bind.b3"},
		}},
		{Connects: []*config.Connect{
			{Inputs: []string{"bind.b0", "bind.b1"}, Output: "bind.c0"},
			{Inputs: []string{"bind.b2", "bind.b3"}, Output: "bind.c1"},
		}},
		{Connects: []*config.Connect{
			{Inputs: []string{"bind.c0", "bind.c1"}, Output: "bind.root"},
		}},
	}
	return m
}

func TestBuild_TreeModelExecutes(t *testing.T) {
	const dim = 64
	res, err := New(Options{Seed: 42}).Build(context.Background(), treeModel(dim))
	require.NoError(t, err)

	require.Len(t, res.Nodes, 15)
	require.Len(t, res.Graph.Depths(), 3)
	assert.Equal(t, 7, res.Graph.Connections())

	require.NoError(t, res.Graph.Run(context.Background(), 4))

	root, ok := res.Node("bind.root")
	require.True(t, ok)
	require.Len(t, root.Output(), dim)
	assert.NotEqual(t, hrr.Zeros(dim), root.Output())
}

func TestBuild_SeedDeterminesSymbols(t *testing.T) {
	model := treeModel(32)

	resA, err := New(Options{Seed: 9}).Build(context.Background(), model)
	require.NoError(t, err)
	resB, err := New(Options{Seed: 9}).Build(context.Background(), model)
	require.NoError(t, err)

	for _, addr := range resA.Addresses {
		nodeA := resA.Nodes[addr]
		nodeB := resB.Nodes[addr]
		require.Empty(t, cmp.Diff(nodeA.Output(), nodeB.Output()), "address %s", addr)
	}

	resC, err := New(Options{Seed: 10}).Build(context.Background(), model)
	require.NoError(t, err)
	a0, _ := resA.Node("symbol.x0")
	c0, _ := resC.Node("symbol.x0")
	assert.NotEqual(t, a0.Output(), c0.Output())
}

func TestBuild_ExplicitSymbolValues(t *testing.T) {
	m := &config.Model{
		Symbols: []*config.Symbol{{Name: "lit", Values: []float64{1, 2, 3}}},
	}
	res, err := New(Options{}).Build(context.Background(), m)
	require.NoError(t, err)

	n, ok := res.Node("symbol.lit")
	require.True(t, ok)
	assert.Equal(t, graph.KindInput, n.Kind())
	assert.Equal(t, 3, n.Dim())
	require.Empty(t, cmp.Diff(hrr.Vector{1, 2, 3}, n.Output()))
}

func TestBuild_Errors(t *testing.T) {
	base := func() *config.Model {
		return &config.Model{
			Symbols: []*config.Symbol{
				{Name: "a", Dim: 8},
				{Name: "b", Dim: 8},
			},
			Nodes: []*config.Node{{Op: "bind", Name: "c", Dim: 8}},
		}
	}

	cases := []struct {
		name    string
		mutate  func(*config.Model)
		wantMsg string
	}{
		{
			name: "unknown kernel",
			mutate: func(m *config.Model) {
				m.Nodes = append(m.Nodes, &config.Node{Op: "convolve", Name: "x", Dim: 8})
			},
			wantMsg: `unknown kernel "convolve"`,
		},
		{
			name: "non-positive node dim",
			mutate: func(m *config.Model) {
				m.Nodes[0].Dim = 0
			},
			wantMsg: "dim must be positive",
		},
		{
			name: "duplicate symbol",
			mutate: func(m *config.Model) {
				m.Symbols = append(m.Symbols, &config.Symbol{Name: "a", Dim: 8})
			},
			wantMsg: `duplicate definition for "symbol.a"`,
		},
		{
			name: "unknown input address",
			mutate: func(m *config.Model) {
				m.Depths = []*config.Depth{{Connects: []*config.Connect{
					{Inputs: []string{"symbol.missing", "symbol.b"}, Output: "bind.c"},
				}}}
			},
			wantMsg: `unknown input "symbol.missing"`,
		},
		{
			name: "unknown output address",
			mutate: func(m *config.Model) {
				m.Depths = []*config.Depth{{Connects: []*config.Connect{
					{Inputs: []string{"symbol.a", "symbol.b"}, Output: "bind.missing"},
				}}}
			},
			wantMsg: `unknown output "bind.missing"`,
		},
		{
			name: "symbol as consumer",
			mutate: func(m *config.Model) {
				m.Depths = []*config.Depth{{Connects: []*config.Connect{
					{Inputs: []string{"symbol.a"}, Output: "symbol.b"},
				}}}
			},
			wantMsg: "cannot consume inputs",
		},
		{
			name: "shared consumer within a depth",
			mutate: func(m *config.Model) {
				m.Depths = []*config.Depth{{Connects: []*config.Connect{
					{Inputs: []string{"symbol.a", "symbol.b"}, Output: "bind.c"},
					{Inputs: []string{"symbol.b", "symbol.a"}, Output: "bind.c"},
				}}}
			},
			wantMsg: "consumed by more than one connection",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := base()
			tc.mutate(m)
			_, err := New(Options{}).Build(context.Background(), m)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

// An out-of-order producer is tolerated by default: the consumer reads the
// producer's current buffer, zeros on a first run.
func TestBuild_PermissiveDepthOrderReadsStaleBuffers(t *testing.T) {
	const dim = 16
	m := &config.Model{
		Symbols: []*config.Symbol{{Name: "a", Dim: dim}},
		Nodes: []*config.Node{
			{Op: "bind", Name: "early", Dim: dim},
			{Op: "bind", Name: "late", Dim: dim},
		},
		Depths: []*config.Depth{
			// "early" reads "late" before anything has written it.
			{Connects: []*config.Connect{
				{Inputs: []string{"symbol.a", "bind.late"}, Output: "bind.early"},
			}},
			{Connects: []*config.Connect{
				{Inputs: []string{"symbol.a", "symbol.a"}, Output: "bind.late"},
			}},
		},
	}

	res, err := New(Options{Seed: 1}).Build(context.Background(), m)
	require.NoError(t, err)
	require.NoError(t, res.Graph.RunSync(context.Background()))

	// bind(a, zeros) is zeros: the stale read happened silently.
	early, _ := res.Node("bind.early")
	for _, v := range early.Output() {
		assert.InDelta(t, 0, v, 1e-12)
	}
}

func TestBuild_StrictDepthsRejectsOutOfOrderProducers(t *testing.T) {
	const dim = 16
	m := &config.Model{
		Symbols: []*config.Symbol{{Name: "a", Dim: dim}},
		Nodes: []*config.Node{
			{Op: "bind", Name: "early", Dim: dim},
			{Op: "bind", Name: "late", Dim: dim},
		},
		Depths: []*config.Depth{
			{Connects: []*config.Connect{
				{Inputs: []string{"symbol.a", "bind.late"}, Output: "bind.early"},
			}},
			{Connects: []*config.Connect{
				{Inputs: []string{"symbol.a", "symbol.a"}, Output: "bind.late"},
			}},
		},
	}

	_, err := New(Options{ValidateDepths: true}).Build(context.Background(), m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not produced at a strictly earlier depth")

	// The same wiring in dependency order passes the strict check.
	m.Depths[0], m.Depths[1] = m.Depths[1], m.Depths[0]
	_, err = New(Options{ValidateDepths: true}).Build(context.Background(), m)
	require.NoError(t, err)
}

// Producers consumed within the same depth are also rejected in strict mode:
// the barrier makes their writes invisible to siblings.
func TestBuild_StrictDepthsRejectsSameDepthProducer(t *testing.T) {
	const dim = 8
	m := &config.Model{
		Symbols: []*config.Symbol{{Name: "a", Dim: dim}},
		Nodes: []*config.Node{
			{Op: "bind", Name: "p", Dim: dim},
			{Op: "bind", Name: "q", Dim: dim},
		},
		Depths: []*config.Depth{
			{Connects: []*config.Connect{
				{Inputs: []string{"symbol.a", "symbol.a"}, Output: "bind.p"},
				{Inputs: []string{"bind.p", "symbol.a"}, Output: "bind.q"},
			}},
		},
	}

	_, err := New(Options{ValidateDepths: true}).Build(context.Background(), m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not produced at a strictly earlier depth")
}
