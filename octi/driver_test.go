package octi_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/octi"
	"github.com/linegrid/octilayout/transit"
)

func TestLayoutSingleEdgeTwoStations(t *testing.T) {
	tg := transit.New()
	a := tg.AddNode(geo.Point{X: 0, Y: 0}, &transit.Station{ID: "A", Name: "A"})
	b := tg.AddNode(geo.Point{X: 1000, Y: 0}, &transit.Station{ID: "B", Name: "B"})
	line := &transit.Line{ID: "L1", Label: "L1"}
	tg.AddEdge(a, b, geo.Polyline{{X: 0, Y: 0}, {X: 1000, Y: 0}}, []transit.LineOcc{{Line: line}})

	cfg := octi.DefaultConfig(100)
	result := octi.Layout(tg, cfg)

	require.NotNil(t, result)
	require.NotNil(t, result.Comb)
	require.Empty(t, result.Unrouted, "a simple two-station edge should route")

	var routedGeomLen int
	for _, e := range result.Comb.G.Edges() {
		ep, _, _, _ := result.Comb.G.Edge(e)
		if ep.Routed {
			routedGeomLen = len(ep.Geom)
			require.GreaterOrEqual(t, routedGeomLen, 2)
		}
	}
	require.Greater(t, routedGeomLen, 0, "expected at least one routed edge")
}

func TestLayoutSkipsUnreachableStation(t *testing.T) {
	tg := transit.New()
	a := tg.AddNode(geo.Point{X: 0, Y: 0}, &transit.Station{ID: "A", Name: "A"})
	b := tg.AddNode(geo.Point{X: 100, Y: 0}, &transit.Station{ID: "B", Name: "B"})
	far := tg.AddNode(geo.Point{X: 1e7, Y: 1e7}, &transit.Station{ID: "Far", Name: "Far"})

	tg.AddEdge(a, b, geo.Polyline{{X: 0, Y: 0}, {X: 100, Y: 0}}, nil)
	tg.AddEdge(b, far, geo.Polyline{{X: 100, Y: 0}, {X: 1e7, Y: 1e7}}, nil)

	cfg := octi.DefaultConfig(100)
	result := octi.Layout(tg, cfg)

	require.NotNil(t, result)
}

func TestUnroutedErrAggregatesReasons(t *testing.T) {
	result := &octi.Result{Unrouted: []octi.UnroutedEdge{
		{Edge: 1, Reason: "no candidate hub for source"},
		{Edge: 2, Reason: "router returned no path"},
	}}

	err := result.UnroutedErr()
	require.Error(t, err)
	require.Contains(t, err.Error(), "no candidate hub for source")
	require.Contains(t, err.Error(), "router returned no path")
}

func TestLayoutWithRotationSweepPicksAnAngle(t *testing.T) {
	tg := transit.New()
	a := tg.AddNode(geo.Point{X: 0, Y: 0}, &transit.Station{ID: "A", Name: "A"})
	b := tg.AddNode(geo.Point{X: 1000, Y: 0}, &transit.Station{ID: "B", Name: "B"})
	line := &transit.Line{ID: "L1", Label: "L1"}
	tg.AddEdge(a, b, geo.Polyline{{X: 0, Y: 0}, {X: 1000, Y: 0}}, []transit.LineOcc{{Line: line}})

	cfg := octi.DefaultConfig(100)
	result := octi.LayoutWithRotationSweep(tg, cfg, []float64{0, 0.3, -0.3})

	require.NotNil(t, result)
	require.Empty(t, result.Unrouted)
}
