package iocodec

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/linegrid/octilayout/comb"
	"github.com/linegrid/octilayout/graph"
	"github.com/linegrid/octilayout/lineorder"
	"github.com/linegrid/octilayout/transit"
)

// Feature is a single GeoJSON Feature. Its Geometry keeps Coordinates
// untyped so Point and LineString geometries share one struct shape.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry is a GeoJSON geometry object restricted to the two shapes
// this writer produces.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// FeatureCollection is a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// LineDescriptor describes one line running along a written edge.
type LineDescriptor struct {
	ID        string `json:"id"`
	Label     string `json:"label,omitempty"`
	Color     string `json:"color,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// WriteGeoJSON encodes the drawn combination graph cg (after
// lineorder.Optimize has populated cfg, or an empty Configuration for
// unordered output) as a GeoJSON FeatureCollection: one Point feature
// per transit node, one LineString feature per routed combination
// edge. This
// is the only iocodec component built on the standard library rather
// than a pack dependency — see DESIGN.md for why no
// FeatureCollection-shaped library exists in the retrieval pack.
func WriteGeoJSON(w io.Writer, cg *comb.Graph, cfg lineorder.Configuration) error {
	fc := FeatureCollection{Type: "FeatureCollection"}

	combNodeOf := make(map[graph.NodeID]graph.NodeID, len(cg.G.Nodes()))
	for _, cn := range cg.G.Nodes() {
		cnp, ok := cg.G.Node(cn)
		if ok {
			combNodeOf[cnp.Transit] = cn
		}
	}

	for _, n := range cg.Transit.G.Nodes() {
		np, ok := cg.Transit.G.Node(n)
		if !ok {
			continue
		}
		props := map[string]interface{}{"id": int(n)}
		if np.IsStop() {
			var ids, labels []string
			for _, st := range np.Stations {
				ids = append(ids, string(st.ID))
				labels = append(labels, st.Name)
			}
			props["station_id"] = ids
			props["station_label"] = labels
		}
		if cn, ok := combNodeOf[n]; ok {
			if forbidden := forbiddenLabelsAt(cg, cn, cfg); len(forbidden) > 0 {
				props["forbidden"] = forbidden
			}
		}
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: [2]float64{np.Pos.X, np.Pos.Y},
			},
			Properties: props,
		})
	}

	for _, e := range cg.G.Edges() {
		ep, from, to, ok := cg.G.Edge(e)
		if !ok || !ep.Routed {
			continue
		}
		coords := make([][2]float64, len(ep.Geom))
		for i, p := range ep.Geom {
			coords[i] = [2]float64{p.X, p.Y}
		}

		uses := lineUsesOf(cg, e)
		descs := make([]LineDescriptor, 0, len(uses))
		for _, u := range uses {
			d := LineDescriptor{ID: string(u.line.ID), Label: u.line.Label, Color: u.line.Color}
			if u.direction != 0 {
				d.Direction = directionRef(cg, u.direction)
			}
			descs = append(descs, d)
		}

		fnp, _ := cg.G.Node(from)
		tnp, _ := cg.G.Node(to)
		props := map[string]interface{}{
			"from":  int(fnp.Transit),
			"to":    int(tnp.Transit),
			"lines": descs,
		}
		if load, ok := maxLoadOf(cg, e); ok {
			props["load"] = load
		}
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "LineString",
				Coordinates: coords,
			},
			Properties: props,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}

// lineUse pairs a line with the resolved direction-node of its
// occurrence, if the occurrence named one.
type lineUse struct {
	line      *transit.Line
	direction graph.NodeID
}

// lineUsesOf returns the distinct lines carried by combination edge e,
// each with its direction-node (zero if non-directional), in the same
// deterministic order as lineorder.LinesOf.
func lineUsesOf(cg *comb.Graph, e graph.EdgeID) []lineUse {
	ep, _, _, ok := cg.G.Edge(e)
	if !ok {
		return nil
	}
	seen := make(map[transit.LineID]bool)
	var out []lineUse
	for _, child := range ep.Children {
		cep, _, _, ok := cg.Transit.G.Edge(child)
		if !ok {
			continue
		}
		for _, occ := range cep.Lines {
			if occ.Line == nil || seen[occ.Line.ID] {
				continue
			}
			seen[occ.Line.ID] = true
			out = append(out, lineUse{line: occ.Line, direction: occ.Direction})
		}
	}
	return out
}

// directionRef resolves a line occurrence's direction-node to the id
// a downstream reader can use: the first station id at that transit
// node, or its raw node id if the node names no station.
func directionRef(cg *comb.Graph, n graph.NodeID) string {
	np, ok := cg.Transit.G.Node(n)
	if !ok || len(np.Stations) == 0 {
		return strconv.Itoa(int(n))
	}
	return string(np.Stations[0].ID)
}

// forbiddenLabelsAt returns the "lineA-lineB" labels of every pair of
// lines at comb node cn whose configured continuation crosses, for the
// station feature's optional list of forbidden line connections.
func forbiddenLabelsAt(cg *comb.Graph, cn graph.NodeID, cfg lineorder.Configuration) []string {
	pairs := lineorder.ForbiddenPairs(cg, cn, cfg)
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = string(p[0]) + "-" + string(p[1])
	}
	return out
}

// maxLoadOf returns the highest utilization figure among e's children,
// if any of them carries one.
func maxLoadOf(cg *comb.Graph, e graph.EdgeID) (float32, bool) {
	ep, _, _, ok := cg.G.Edge(e)
	if !ok {
		return 0, false
	}
	var max float32
	var found bool
	for _, child := range ep.Children {
		cep, _, _, ok := cg.Transit.G.Edge(child)
		if !ok || !cep.Load.Valid {
			continue
		}
		found = true
		if cep.Load.Value > max {
			max = cep.Load.Value
		}
	}
	return max, found
}
