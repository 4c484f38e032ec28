package comb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linegrid/octilayout/comb"
	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/graph"
	"github.com/linegrid/octilayout/transit"
)

func TestCombineDeg2CollapsesJoint(t *testing.T) {
	tg := transit.New()
	a := tg.AddNode(geo.Point{X: 0, Y: 0}, &transit.Station{ID: "A"})
	j := tg.AddNode(geo.Point{X: 10, Y: 0})
	b := tg.AddNode(geo.Point{X: 20, Y: 0}, &transit.Station{ID: "B"})

	tg.AddEdge(a, j, geo.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}}, nil)
	tg.AddEdge(j, b, geo.Polyline{{X: 10, Y: 0}, {X: 20, Y: 0}}, nil)

	cg := comb.Build(tg)
	cg.CombineDeg2()

	count := 0
	for _, n := range cg.G.Nodes() {
		np, _ := cg.G.Node(n)
		if np.Transit == a || np.Transit == b {
			count++
		}
	}
	require.Equal(t, 2, count, "both stations must survive the contraction")
	require.Equal(t, 2, cg.G.NodeCount(), "the joint must be contracted away")

	var combEdge comb.EdgePayload
	found := false
	for _, e := range cg.G.Edges() {
		ep, _, _, _ := cg.G.Edge(e)
		if len(ep.Children) == 2 {
			combEdge = ep
			found = true
		}
	}
	require.True(t, found, "expected one merged edge with two children")
	require.Len(t, combEdge.Children, 2)
}

func TestComputeEdgeOrderingSortsByAngle(t *testing.T) {
	tg := transit.New()
	center := tg.AddNode(geo.Point{X: 0, Y: 0}, &transit.Station{ID: "C"})
	east := tg.AddNode(geo.Point{X: 10, Y: 0}, &transit.Station{ID: "E"})
	north := tg.AddNode(geo.Point{X: 0, Y: 10}, &transit.Station{ID: "N"})
	west := tg.AddNode(geo.Point{X: -10, Y: 0}, &transit.Station{ID: "W"})

	tg.AddEdge(center, east, geo.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}}, nil)
	tg.AddEdge(center, north, geo.Polyline{{X: 0, Y: 0}, {X: 0, Y: 10}}, nil)
	tg.AddEdge(center, west, geo.Polyline{{X: 0, Y: 0}, {X: -10, Y: 0}}, nil)

	cg := comb.Build(tg)
	cg.ComputeEdgeOrdering()

	var centerComb graph.NodeID
	for _, n := range cg.G.Nodes() {
		np, _ := cg.G.Node(n)
		if np.Transit == center {
			centerComb = n
		}
	}
	np, ok := cg.G.Node(centerComb)
	require.True(t, ok)
	require.Len(t, np.EdgeOrder, 3, "center has three incident combination edges")

	angles := make([]float64, 0, 3)
	for _, e := range np.EdgeOrder {
		ep, _, to, _ := cg.G.Edge(e)
		_ = ep
		toPayload, _ := cg.G.Node(to)
		tnp, _ := cg.Transit.G.Node(toPayload.Transit)
		centerTnp, _ := cg.Transit.G.Node(center)
		angles = append(angles, centerTnp.Pos.AngleTo(tnp.Pos))
	}
	require.True(t, angles[0] <= angles[1] && angles[1] <= angles[2], "edge order must be sorted ascending by angle")
}
