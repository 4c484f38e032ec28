package router_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dijkstra"

	"github.com/linegrid/octilayout/basegraph"
	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/internal/gridq"
	"github.com/linegrid/octilayout/router"
)

// TestRouterCostMatchesIndependentDijkstra exercises the §4.5/§8
// "equal-cost" contract against a second, unrelated shortest-path
// implementation rather than just comparing router's own Dijkstra and
// A*: a straight five-hub chain has an unambiguous shortest path of
// four unit-cost real edges, reproduced here with lvlath's core graph
// and dijkstra package.
func TestRouterCostMatchesIndependentDijkstra(t *testing.T) {
	box := geo.NewBBox(geo.Point{X: 0, Y: 0}, geo.Point{X: 500, Y: 0})
	gg := basegraph.New(box, 100, basegraph.DefaultPenalties())

	from := gridq.Pos{X: 0, Y: 0}
	to := gridq.Pos{X: 4, Y: 0}
	srcHub, targets := openStraightLine(gg, from, to)

	result, ok := router.Dijkstra(gg, srcHub, targets)
	require.True(t, ok)

	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	for i := 0; i <= 4; i++ {
		require.NoError(t, g.AddVertex(cellName(i)))
	}
	for i := 0; i < 4; i++ {
		_, err := g.AddEdge(cellName(i), cellName(i+1), 1)
		require.NoError(t, err)
	}

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(cellName(0)))
	require.NoError(t, err)

	require.InDelta(t, float64(dist[cellName(4)]), result.Cost, 1e-9)
}

func cellName(i int) string {
	return string(rune('A' + i))
}
