package router_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linegrid/octilayout/basegraph"
	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/graph"
	"github.com/linegrid/octilayout/internal/gridq"
	"github.com/linegrid/octilayout/router"
)

func openStraightLine(gg *basegraph.GridGraph, from, to gridq.Pos) (graph.NodeID, map[graph.NodeID]bool) {
	gg.OpenSinkFr(from, basegraph.DirE, 0)
	for x := from.X + 1; x < to.X; x++ {
		cell := gridq.Pos{X: x, Y: from.Y}
		gg.OpenSinkTo(cell, basegraph.DirW, 0)
		gg.OpenSinkFr(cell, basegraph.DirE, 0)
	}
	gg.OpenSinkTo(to, basegraph.DirW, 0)

	srcHub, _ := gg.Hub(from)
	dstHub, _ := gg.Hub(to)
	return srcHub, map[graph.NodeID]bool{dstHub: true}
}

func TestDijkstraAndAStarAgreeOnCost(t *testing.T) {
	box := geo.NewBBox(geo.Point{X: 0, Y: 0}, geo.Point{X: 500, Y: 500})
	gg := basegraph.New(box, 100, basegraph.DefaultPenalties())

	from := gridq.Pos{X: 0, Y: 2}
	to := gridq.Pos{X: 4, Y: 2}
	srcHub, targets := openStraightLine(gg, from, to)

	dijkstraResult, ok := router.Dijkstra(gg, srcHub, targets)
	require.True(t, ok)

	gg2 := basegraph.New(box, 100, basegraph.DefaultPenalties())
	srcHub2, targets2 := openStraightLine(gg2, from, to)
	astarResult, ok := router.AStar(gg2, srcHub2, targets2, []gridq.Pos{to})
	require.True(t, ok)

	require.InDelta(t, dijkstraResult.Cost, astarResult.Cost, 1e-9)
}

func TestDijkstraReturnsNoPathWhenUnreachable(t *testing.T) {
	box := geo.NewBBox(geo.Point{X: 0, Y: 0}, geo.Point{X: 200, Y: 200})
	gg := basegraph.New(box, 100, basegraph.DefaultPenalties())

	srcHub, _ := gg.Hub(gridq.Pos{X: 0, Y: 0})
	dstHub, _ := gg.Hub(gridq.Pos{X: 1, Y: 1})

	_, ok := router.Dijkstra(gg, srcHub, map[graph.NodeID]bool{dstHub: true})
	require.False(t, ok, "sinks are closed by default; no path should be found")
}
