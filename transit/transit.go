// Package transit holds the geographic transit graph: stops, lines and
// the polyline edges that carry them. It is the graph substrate's first
// domain layer, generalizing the teacher's Topology/Node/Link types
// (string-keyed map-of-pointers) onto the arena-backed graph package so
// that node and edge identity survives the short-edge collapse pass.
package transit

import (
	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/graph"
	"github.com/linegrid/octilayout/option"
)

// StationID identifies a Station.
type StationID string

// LineID identifies a Line.
type LineID string

// Station is a named stop at a geographic position.
type Station struct {
	ID   StationID
	Name string
	Pos  geo.Point
}

// Line is a transit line: an identifier, a short label and a display color.
type Line struct {
	ID    LineID
	Label string
	Color string
}

// LineOcc is a line occurrence on an edge: the line, plus an optional
// "towards" endpoint node for directional lines.
type LineOcc struct {
	Line      *Line
	Direction graph.NodeID // zero if the line is non-directional on this edge
}

// NodePayload is the per-node payload of a transit Graph. A node with
// no stations is a topological joint rather than a stop.
type NodePayload struct {
	Pos      geo.Point
	Stations []*Station
}

// IsStop reports whether n carries at least one station.
func (n NodePayload) IsStop() bool { return len(n.Stations) > 0 }

// EdgePayload is the per-edge payload of a transit Graph.
type EdgePayload struct {
	Geom  geo.Polyline
	Lines []LineOcc
	// Load is an optional utilization figure for the edge (0-1,
	// typically link usage as a fraction), carried through from the
	// input document when present. Most loaders never set it.
	Load option.Float32
}

// Graph is a transit graph: stops and topological joints connected by
// line-bearing polyline edges. Edges are undirected in meaning but
// stored as a pair of opposing directed edges in the underlying
// substrate, matching the arena's adjacency convention.
type Graph struct {
	G *graph.Graph[NodePayload, EdgePayload]
}

// New returns an empty transit graph.
func New() *Graph {
	return &Graph{G: graph.New[NodePayload, EdgePayload]()}
}

// AddNode inserts a node at pos carrying stations (may be empty) and
// returns its ID.
func (t *Graph) AddNode(pos geo.Point, stations ...*Station) graph.NodeID {
	return t.G.AddNode(NodePayload{Pos: pos, Stations: stations})
}

// AddEdge inserts an undirected edge between a and b, storing geom and
// lines as the payload of both directed halves. The forward edge ID
// (a→b) is returned.
func (t *Graph) AddEdge(a, b graph.NodeID, geom geo.Polyline, lines []LineOcc) graph.EdgeID {
	fwd := EdgePayload{Geom: geom, Lines: lines}
	bwd := EdgePayload{Geom: geom.Reverse(), Lines: lines}
	id := t.G.AddEdge(a, b, fwd)
	t.G.AddEdge(b, a, bwd)
	return id
}

// SetEdgeLoad stamps a utilization figure on both directed halves of
// the undirected edge fwd returned by AddEdge.
func (t *Graph) SetEdgeLoad(fwd graph.EdgeID, load float32) {
	ep, from, to, ok := t.G.Edge(fwd)
	if !ok {
		return
	}
	ep.Load.Set(load)
	t.G.SetEdge(fwd, ep)

	for _, cand := range t.G.Out(to) {
		_, _, dest, ok := t.G.Edge(cand)
		if ok && dest == from {
			bep, _, _, _ := t.G.Edge(cand)
			bep.Load.Set(load)
			t.G.SetEdge(cand, bep)
			break
		}
	}
}

// Neighbors returns the set of nodes adjacent to n via a live edge.
func (t *Graph) Neighbors(n graph.NodeID) []graph.NodeID {
	out := make([]graph.NodeID, 0, 4)
	for _, e := range t.G.Out(n) {
		_, _, to, ok := t.G.Edge(e)
		if ok {
			out = append(out, to)
		}
	}
	return out
}

// Rotate rotates every node position and edge geometry by angle
// (radians) around center, in place. Used by the rotation sweep: the
// whole graph is rotated before layout and the resulting polylines are
// rotated back by -angle afterward.
func (t *Graph) Rotate(center geo.Point, angle float64) {
	for _, n := range t.G.Nodes() {
		np, ok := t.G.Node(n)
		if !ok {
			continue
		}
		np.Pos = np.Pos.RotateAround(center, angle)
		for _, st := range np.Stations {
			st.Pos = st.Pos.RotateAround(center, angle)
		}
		t.G.SetNode(n, np)
	}
	for _, e := range t.G.Edges() {
		ep, _, _, ok := t.G.Edge(e)
		if !ok {
			continue
		}
		ep.Geom = ep.Geom.Rotate(center, angle)
		t.G.SetEdge(e, ep)
	}
}

// BoundingBox returns the bounding box of every live node's position.
func (t *Graph) BoundingBox() *geo.BBox {
	var box *geo.BBox
	for _, n := range t.G.Nodes() {
		np, ok := t.G.Node(n)
		if !ok {
			continue
		}
		box = box.Union(geo.BBoxOf(np.Pos))
	}
	return box
}
