package transit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/transit"
)

func TestCollapseShortEdgesMergesJointAtMidpoint(t *testing.T) {
	tg := transit.New()
	a := tg.AddNode(geo.Point{X: 0, Y: 0}, &transit.Station{ID: "A", Name: "A"})
	j1 := tg.AddNode(geo.Point{X: 100, Y: 0}) // topological joints, no stations
	j2 := tg.AddNode(geo.Point{X: 110, Y: 0})
	b := tg.AddNode(geo.Point{X: 210, Y: 0}, &transit.Station{ID: "B", Name: "B"})

	tg.AddEdge(a, j1, geo.Polyline{{X: 0, Y: 0}, {X: 100, Y: 0}}, nil)
	tg.AddEdge(j1, j2, geo.Polyline{{X: 100, Y: 0}, {X: 110, Y: 0}}, nil)
	tg.AddEdge(j2, b, geo.Polyline{{X: 110, Y: 0}, {X: 210, Y: 0}}, nil)

	tg.CollapseShortEdges(50)

	_, ok := tg.G.Node(j1)
	j1Gone := !ok
	_, ok = tg.G.Node(j2)
	j2Gone := !ok
	require.True(t, j1Gone != j2Gone, "exactly one of the two joints should survive the merge")

	require.Len(t, tg.Neighbors(a), 1)
	require.Len(t, tg.Neighbors(b), 1)
}

func TestCollapseShortEdgesLeavesTwoStationsAlone(t *testing.T) {
	tg := transit.New()
	c := tg.AddNode(geo.Point{X: -100, Y: 0})
	a := tg.AddNode(geo.Point{X: 0, Y: 0}, &transit.Station{ID: "A", Name: "A"})
	b := tg.AddNode(geo.Point{X: 1, Y: 0}, &transit.Station{ID: "B", Name: "B"})
	d := tg.AddNode(geo.Point{X: 101, Y: 0})

	tg.AddEdge(c, a, geo.Polyline{{X: -100, Y: 0}, {X: 0, Y: 0}}, nil)
	tg.AddEdge(a, b, geo.Polyline{{X: 0, Y: 0}, {X: 1, Y: 0}}, nil)
	tg.AddEdge(b, d, geo.Polyline{{X: 1, Y: 0}, {X: 101, Y: 0}}, nil)

	tg.CollapseShortEdges(50)

	_, ok := tg.G.Node(a)
	require.True(t, ok, "both endpoints are stations, the short a-b edge must not collapse")
	_, ok = tg.G.Node(b)
	require.True(t, ok)
}
