package iocodec_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/ilpsolve"
	"github.com/linegrid/octilayout/iocodec"
	"github.com/linegrid/octilayout/lineorder"
	"github.com/linegrid/octilayout/octi"
	"github.com/linegrid/octilayout/transit"
)

func geoPoint(x, y float64) geo.Point { return geo.Point{X: x, Y: y} }

func geoPolyline(x1, y1, x2, y2 float64) geo.Polyline {
	return geo.Polyline{{X: x1, Y: y1}, {X: x2, Y: y2}}
}

func noopPref() ilpsolve.Preference { return ilpsolve.Preference{} }

func TestDecodeArrayForm(t *testing.T) {
	doc := `{
		"stations": [
			{"id": "a", "name": "Alpha", "pos": [0, 0]},
			{"id": "b", "name": "Beta", "pos": [1000, 0]}
		],
		"lines": [{"id": "l1", "label": "L1", "color": "#ff0000"}],
		"edges": [{"from": "a", "to": "b", "lines": ["l1"]}]
	}`
	var net iocodec.Network
	require.NoError(t, json.Unmarshal([]byte(doc), &net))

	tg, err := net.Decode()
	require.NoError(t, err)
	require.Equal(t, 2, tg.G.NodeCount())
}

func TestDecodeCarriesEdgeLoad(t *testing.T) {
	doc := `{
		"stations": [{"id": "a", "pos": [0,0]}, {"id": "b", "pos": [10,0]}],
		"edges": [{"from": "a", "to": "b", "load": 0.75}]
	}`
	var net iocodec.Network
	require.NoError(t, json.Unmarshal([]byte(doc), &net))

	tg, err := net.Decode()
	require.NoError(t, err)

	var sawLoad bool
	for _, e := range tg.G.Edges() {
		ep, _, _, ok := tg.G.Edge(e)
		require.True(t, ok)
		if ep.Load.Valid {
			sawLoad = true
			require.InDelta(t, 0.75, float64(ep.Load.Value), 1e-6)
		}
	}
	require.True(t, sawLoad, "expected at least one directed edge half to carry the load figure")
}

func TestDecodeLineReferenceCarriesOptionalDirection(t *testing.T) {
	doc := `{
		"stations": [
			{"id": "a", "pos": [0, 0]},
			{"id": "b", "pos": [1000, 0]}
		],
		"lines": [{"id": "l1"}],
		"edges": [{"from": "a", "to": "b", "lines": [{"line": "l1", "direction": "b"}]}]
	}`
	var net iocodec.Network
	require.NoError(t, json.Unmarshal([]byte(doc), &net))

	tg, err := net.Decode()
	require.NoError(t, err)

	var sawDirected bool
	for _, e := range tg.G.Edges() {
		ep, _, _, ok := tg.G.Edge(e)
		require.True(t, ok)
		for _, occ := range ep.Lines {
			if occ.Direction != 0 {
				sawDirected = true
			}
		}
	}
	require.True(t, sawDirected, "expected the directed line occurrence to carry its direction node")
}

func TestDecodeObjectFormAndDuplicateRejection(t *testing.T) {
	doc := `{
		"stations": {"a": {"name": "Alpha", "pos": [0,0]}, "b": {"name": "Beta", "pos": [10,0]}},
		"edges": {"e1": {"from": "a", "to": "b"}}
	}`
	var net iocodec.Network
	require.NoError(t, json.Unmarshal([]byte(doc), &net))
	require.Equal(t, "a", net.Stations["a"].ID)

	badDoc := `{"stations": [{"id": "a", "pos": [0,0]}, {"id": "a", "pos": [1,1]}]}`
	var bad iocodec.Network
	require.Error(t, json.Unmarshal([]byte(badDoc), &bad))
}

func TestWriteGeoJSONProducesValidFeatureCollection(t *testing.T) {
	tg := transit.New()
	a := tg.AddNode(geoPoint(0, 0), &transit.Station{ID: "A", Name: "A"})
	b := tg.AddNode(geoPoint(1000, 0), &transit.Station{ID: "B", Name: "B"})
	line := &transit.Line{ID: "L1", Label: "L1", Color: "#fff"}
	tg.AddEdge(a, b, geoPolyline(0, 0, 1000, 0), []transit.LineOcc{{Line: line}})

	result := octi.Layout(tg, octi.DefaultConfig(100))
	cfg := lineorder.Optimize(result.Comb, lineorder.Auto, lineorder.DefaultWeights(), noopPref(), 0).Config

	var buf bytes.Buffer
	require.NoError(t, iocodec.WriteGeoJSON(&buf, result.Comb, cfg))

	var fc iocodec.FeatureCollection
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fc))
	require.Equal(t, "FeatureCollection", fc.Type)
	require.NotEmpty(t, fc.Features)
}
