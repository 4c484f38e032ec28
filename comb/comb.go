// Package comb builds the combination graph: the abstraction of a
// transit graph where degree-2 non-station joints are collapsed away,
// leaving one combination edge per maximal chain and a per-node
// angular ordering of incident edges that fixes the iteration order
// used throughout layout. It is grounded on the teacher's approach of
// deriving a secondary graph view from a primary one (raumata's
// Topology → LinkRouter grid-position view), generalized to an actual
// graph contraction pass.
package comb

import (
	"sort"

	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/graph"
	"github.com/linegrid/octilayout/transit"
)

// NodePayload is the per-node payload of a Graph.
type NodePayload struct {
	Transit     graph.NodeID // the underlying transit node
	RouteNumber int          // sum of distinct lines on incident edges, a tie-break key
	EdgeOrder   []graph.EdgeID
}

// EdgePayload is the per-edge payload of a Graph.
type EdgePayload struct {
	Children   []graph.EdgeID // underlying transit edge IDs, in from->to order along the chain
	Geom       geo.Polyline
	Generation int
	Routed     bool
}

// Graph is a combination graph built from a transit graph.
type Graph struct {
	G       *graph.Graph[NodePayload, EdgePayload]
	Transit *transit.Graph
	nodeOf  map[graph.NodeID]graph.NodeID // transit node -> comb node
}

// Build copies every transit node into a combination node and every
// transit edge into a single-child combination edge, without
// performing the degree-2 contraction (call CombineDeg2 next).
func Build(tg *transit.Graph) *Graph {
	cg := &Graph{
		G:       graph.New[NodePayload, EdgePayload](),
		Transit: tg,
		nodeOf:  make(map[graph.NodeID]graph.NodeID),
	}

	for _, tn := range tg.G.Nodes() {
		cid := cg.G.AddNode(NodePayload{Transit: tn})
		cg.nodeOf[tn] = cid
	}

	seenPair := make(map[[2]graph.NodeID]bool)
	for _, te := range tg.G.Edges() {
		_, from, to, ok := tg.G.Edge(te)
		if !ok {
			continue
		}
		if seenPair[[2]graph.NodeID{from, to}] || seenPair[[2]graph.NodeID{to, from}] {
			continue
		}
		seenPair[[2]graph.NodeID{from, to}] = true

		ep, _, _, _ := tg.G.Edge(te)
		reverseID := findReverseEdge(tg, te, from, to)

		cFrom, cTo := cg.nodeOf[from], cg.nodeOf[to]
		cg.G.AddEdge(cFrom, cTo, EdgePayload{Children: []graph.EdgeID{te}, Geom: ep.Geom})
		if reverseID != 0 {
			rp, _, _, _ := tg.G.Edge(reverseID)
			cg.G.AddEdge(cTo, cFrom, EdgePayload{Children: []graph.EdgeID{reverseID}, Geom: rp.Geom})
		}
	}

	for _, cn := range cg.G.Nodes() {
		cg.updateRouteNumber(cn)
	}

	return cg
}

func findReverseEdge(tg *transit.Graph, fwd graph.EdgeID, from, to graph.NodeID) graph.EdgeID {
	for _, e := range tg.G.Out(to) {
		_, _, dest, ok := tg.G.Edge(e)
		if ok && dest == from {
			return e
		}
	}
	return 0
}

func (cg *Graph) degree(n graph.NodeID) int {
	return len(cg.G.Out(n))
}

func (cg *Graph) updateRouteNumber(n graph.NodeID) {
	np, ok := cg.G.Node(n)
	if !ok {
		return
	}
	lines := make(map[transit.LineID]bool)
	for _, e := range cg.G.Out(n) {
		for _, child := range cg.childEdges(e) {
			ep, _, _, ok := cg.Transit.G.Edge(child)
			if !ok {
				continue
			}
			for _, occ := range ep.Lines {
				if occ.Line != nil {
					lines[occ.Line.ID] = true
				}
			}
		}
	}
	np.RouteNumber = len(lines)
	cg.G.SetNode(n, np)
}

func (cg *Graph) childEdges(e graph.EdgeID) []graph.EdgeID {
	ep, _, _, ok := cg.G.Edge(e)
	if !ok {
		return nil
	}
	return ep.Children
}

// IsStation reports whether the combination node n wraps a transit
// node carrying at least one station.
func (cg *Graph) IsStation(n graph.NodeID) bool {
	np, ok := cg.G.Node(n)
	if !ok {
		return false
	}
	tnp, ok := cg.Transit.G.Node(np.Transit)
	return ok && tnp.IsStop()
}

// CombineDeg2 repeatedly contracts any non-station combination node of
// degree exactly 2, concatenating its two incident edges into one.
func (cg *Graph) CombineDeg2() {
	for {
		if !cg.contractOnePass() {
			return
		}
	}
}

func (cg *Graph) contractOnePass() bool {
	for _, n := range cg.G.Nodes() {
		if cg.IsStation(n) {
			continue
		}
		if cg.degree(n) != 2 {
			continue
		}
		out := cg.G.Out(n)
		if len(out) != 2 {
			continue
		}
		cg.contractNode(n, out[0], out[1])
		return true
	}
	return false
}

// contractNode merges the two edges e1 (n->a) and e2 (n->b) incident
// to n into a single edge a->b (and its reverse b->a), then removes n.
func (cg *Graph) contractNode(n graph.NodeID, e1, e2 graph.EdgeID) {
	p1, _, a, ok1 := cg.G.Edge(e1)
	p2, _, b, ok2 := cg.G.Edge(e2)
	if !ok1 || !ok2 {
		return
	}

	// Children of e1 run a-ish-> n (reversed into n-> a storage, so the
	// edge we hold already runs n->a); to build a->b we reverse e1's
	// children and append e2's children, which run n->b already in the
	// right orientation.
	rev1 := reverseChildren(cg.Transit, p1.Children)
	merged := append(append([]graph.EdgeID{}, rev1...), p2.Children...)
	geom := reverseGeom(p1.Geom)
	geom = append(geom, p2.Geom...)

	cg.G.AddEdge(a, b, EdgePayload{Children: merged, Geom: geom})

	revMerged := reverseChildren(cg.Transit, merged)
	revGeom := reverseGeom(geom)
	cg.G.AddEdge(b, a, EdgePayload{Children: revMerged, Geom: revGeom})

	cg.G.RemoveNode(n)
	cg.updateRouteNumber(a)
	cg.updateRouteNumber(b)
}

func reverseGeom(pl geo.Polyline) geo.Polyline {
	return pl.Reverse()
}

// reverseChildren flips the order of child edges and swaps each child
// for its opposite-direction transit edge.
func reverseChildren(tg *transit.Graph, children []graph.EdgeID) []graph.EdgeID {
	out := make([]graph.EdgeID, len(children))
	for i, c := range children {
		_, from, to, ok := tg.G.Edge(c)
		rev := c
		if ok {
			if r := findReverseEdge(tg, c, from, to); r != 0 {
				rev = r
			}
		}
		out[len(children)-1-i] = rev
	}
	return out
}

// ComputeEdgeOrdering computes, for every combination node, the
// angular ordering of its incident edges: for each incident edge take
// the angle from the underlying transit node to the far endpoint of
// the first child edge on the near side, and sort ascending.
func (cg *Graph) ComputeEdgeOrdering() {
	for _, n := range cg.G.Nodes() {
		cg.computeNodeOrdering(n)
	}
}

func (cg *Graph) computeNodeOrdering(n graph.NodeID) {
	np, ok := cg.G.Node(n)
	if !ok {
		return
	}
	tnp, ok := cg.Transit.G.Node(np.Transit)
	if !ok {
		return
	}

	out := cg.G.Out(n)
	type keyed struct {
		edge  graph.EdgeID
		angle float64
	}
	keys := make([]keyed, 0, len(out))
	for _, e := range out {
		ep, _, _, ok := cg.G.Edge(e)
		if !ok || len(ep.Children) == 0 {
			continue
		}
		first := ep.Children[0]
		_, _, far, ok := cg.Transit.G.Edge(first)
		if !ok {
			continue
		}
		farPayload, ok := cg.Transit.G.Node(far)
		if !ok {
			continue
		}
		angle := tnp.Pos.AngleTo(farPayload.Pos)
		keys = append(keys, keyed{edge: e, angle: angle})
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].angle < keys[j].angle })

	ordering := make([]graph.EdgeID, len(keys))
	for i, k := range keys {
		ordering[i] = k.edge
	}
	np.EdgeOrder = ordering
	cg.G.SetNode(n, np)
}
