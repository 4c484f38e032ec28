package basegraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linegrid/octilayout/basegraph"
	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/graph"
	"github.com/linegrid/octilayout/internal/gridq"
)

func smallGrid() *basegraph.GridGraph {
	box := geo.NewBBox(geo.Point{X: 0, Y: 0}, geo.Point{X: 300, Y: 300})
	return basegraph.New(box, 100, basegraph.DefaultPenalties())
}

func TestCostVectorReversibility(t *testing.T) {
	gg := smallGrid()
	cell := gridq.Pos{X: 1, Y: 1}
	gg.OpenSinkFr(cell, basegraph.DirE, 0)
	gg.OpenSinkFr(cell, basegraph.DirN, 0)

	_, ok := gg.Hub(cell)
	require.True(t, ok)

	vec := basegraph.CostVector{}
	vec[basegraph.DirE] = 5
	vec[basegraph.DirN] = 3

	inverse := gg.AddCostVector(cell, vec)
	gg.RemoveCostVector(cell, inverse)

	require.Equal(t, 0.0, sinkFromCost(t, gg, cell, basegraph.DirE))
	require.Equal(t, 0.0, sinkFromCost(t, gg, cell, basegraph.DirN))
}

func TestSettleNodeClosesSinksAndTurns(t *testing.T) {
	gg := smallGrid()
	cell := gridq.Pos{X: 1, Y: 1}
	gg.OpenSinkFr(cell, basegraph.DirE, 0)
	require.False(t, gg.IsSettled(cell))

	gg.SettleNode(cell, 42)
	require.True(t, gg.IsSettled(cell))
	require.Equal(t, basegraph.Inf, sinkFromCost(t, gg, cell, basegraph.DirE))

	port, ok := gg.Port(cell, basegraph.DirE)
	require.True(t, ok)
	for _, e := range gg.G.Out(port) {
		ep, _, _, _ := gg.G.Edge(e)
		if ep.Kind == basegraph.KindBend {
			require.Equal(t, basegraph.Inf, ep.Cost)
		}
	}
}

// sinkFromCost returns the current cost of the departure sink leaving
// cell's hub towards its port in direction d.
func sinkFromCost(t *testing.T, gg *basegraph.GridGraph, cell gridq.Pos, d basegraph.Direction) float64 {
	t.Helper()
	hub, ok := gg.Hub(cell)
	require.True(t, ok)
	port, ok := gg.Port(cell, d)
	require.True(t, ok)
	for _, e := range gg.G.Out(hub) {
		ep, _, to, _ := gg.G.Edge(e)
		if to == port && ep.Kind == basegraph.KindSinkFrom {
			return ep.Cost
		}
	}
	t.Fatalf("no departure sink at %v towards %v", cell, d)
	return 0
}

func TestSettleEdgeKeepsResidentsSymmetric(t *testing.T) {
	gg := smallGrid()
	cell := gridq.Pos{X: 1, Y: 1}
	gg.SettleEdge(cell, basegraph.DirE, 7)

	fwd := gg.RealEdgeResidents(cell, basegraph.DirE)
	require.Contains(t, fwd, graph.EdgeID(7))

	neighbor := gridq.Pos{X: 2, Y: 1}
	bwd := gg.RealEdgeResidents(neighbor, basegraph.DirE.Opposite())
	require.Contains(t, bwd, graph.EdgeID(7))
}

func TestCandidateSearchOrdersByDistance(t *testing.T) {
	gg := smallGrid()
	cands := gg.GetGridNodeCandidates(geo.Point{X: 0, Y: 0}, 1000)
	require.NotEmpty(t, cands)
	for i := 1; i < len(cands); i++ {
		require.LessOrEqual(t, cands[i-1].Dist, cands[i].Dist)
	}
}
