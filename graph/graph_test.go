package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linegrid/octilayout/graph"
)

func TestAddNodeStableIDs(t *testing.T) {
	g := graph.New[string, int]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	require.NotEqual(t, a, b)

	payload, ok := g.Node(a)
	require.True(t, ok)
	require.Equal(t, "a", payload)
}

func TestAddEdgeAdjacency(t *testing.T) {
	g := graph.New[string, int]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	e := g.AddEdge(a, b, 7)

	out := g.Out(a)
	require.Equal(t, []graph.EdgeID{e}, out)

	in := g.In(b)
	require.Equal(t, []graph.EdgeID{e}, in)

	payload, from, to, ok := g.Edge(e)
	require.True(t, ok)
	require.Equal(t, 7, payload)
	require.Equal(t, a, from)
	require.Equal(t, b, to)
}

func TestRemoveNodeTombstonesEdges(t *testing.T) {
	g := graph.New[string, int]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	e := g.AddEdge(a, b, 1)

	g.RemoveNode(a)

	require.Empty(t, g.Out(a))
	_, _, _, ok := g.Edge(e)
	require.False(t, ok)

	_, ok = g.Node(a)
	require.False(t, ok)

	_, ok = g.Node(b)
	require.True(t, ok, "removing a only tombstones its own edges")
}

func TestDegreeCountsBothDirections(t *testing.T) {
	g := graph.New[string, int]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	g.AddEdge(a, b, 1)
	g.AddEdge(b, a, 1)

	require.Equal(t, 2, g.Degree(a))
	require.Equal(t, 2, g.Degree(b))
}

func TestNodesAndEdgesIDOrder(t *testing.T) {
	g := graph.New[int, int]()
	ids := make([]graph.NodeID, 0, 5)
	for i := 0; i < 5; i++ {
		ids = append(ids, g.AddNode(i))
	}
	require.Equal(t, ids, g.Nodes())
	require.Equal(t, 5, g.NodeCount())
}
