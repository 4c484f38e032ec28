package transit

import (
	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/graph"
)

// CollapseShortEdges repeatedly merges any edge whose polyline length
// falls below threshold, provided both endpoints have degree >= 2 and
// at least one endpoint is a non-station joint. The surviving node is
// the station side when exactly one side has stations; its new
// position is the midpoint of the two original positions. The
// procedure terminates because every merge strictly reduces the node
// count, reexpressing the source's restart-from-scratch goto as a
// while-changed loop.
func (t *Graph) CollapseShortEdges(threshold float64) {
	for {
		merged := t.collapseOnePass(threshold)
		if !merged {
			return
		}
	}
}

func (t *Graph) collapseOnePass(threshold float64) bool {
	for _, n1 := range t.G.Nodes() {
		np1, ok := t.G.Node(n1)
		if !ok {
			continue
		}
		for _, e := range t.G.Out(n1) {
			ep, _, other, ok := t.G.Edge(e)
			if !ok {
				continue
			}
			if ep.Geom.Length() >= threshold {
				continue
			}
			if len(t.Neighbors(n1)) < 2 || len(t.Neighbors(other)) < 2 {
				continue
			}
			np2, ok := t.G.Node(other)
			if !ok {
				continue
			}
			if np1.IsStop() && np2.IsStop() {
				continue
			}

			survivor, absorbed := n1, other
			if !np1.IsStop() && np2.IsStop() {
				survivor, absorbed = other, n1
			}
			newPos := np1.Pos.Lerp(np2.Pos, 0.5)
			t.mergeNodes(survivor, absorbed, newPos)
			return true
		}
	}
	return false
}

// mergeNodes reroutes every edge of absorbed (other than those to
// survivor) onto survivor, sets survivor's new position and station
// set, and removes absorbed.
func (t *Graph) mergeNodes(survivor, absorbed graph.NodeID, newPos geo.Point) {
	sp, _ := t.G.Node(survivor)
	ap, _ := t.G.Node(absorbed)

	sp.Pos = newPos
	sp.Stations = append(append([]*Station{}, sp.Stations...), ap.Stations...)
	t.G.SetNode(survivor, sp)

	for _, e := range t.G.Out(absorbed) {
		ep, _, to, ok := t.G.Edge(e)
		if !ok || to == survivor {
			continue
		}
		t.G.AddEdge(survivor, to, ep)
	}
	for _, e := range t.G.In(absorbed) {
		ep, from, _, ok := t.G.Edge(e)
		if !ok || from == survivor {
			continue
		}
		t.G.AddEdge(from, survivor, ep)
	}

	t.G.RemoveNode(absorbed)
}
