// Package graph is the directed graph substrate shared by the transit
// and combination graph layers. Nodes and edges live in an arena keyed
// by small integer IDs instead of pointers: the arena owns storage, IDs
// stay stable across mutation, and deleting a node or edge only tombstones
// its slot rather than invalidating neighbors' adjacency lists outright.
package graph

// NodeID identifies a node within a Graph. The zero value never refers
// to a real node.
type NodeID int

// EdgeID identifies an edge within a Graph. The zero value never refers
// to a real edge.
type EdgeID int

// Graph is a generic directed multigraph. NP is the per-node payload
// type and EP is the per-edge payload type. Edges are directed but
// most callers add both (a, b) and (b, a) to model an undirected
// relation while keeping the adjacency lists symmetric.
type Graph[NP any, EP any] struct {
	nodes    []nodeSlot[NP]
	edges    []edgeSlot[EP]
	nextNode NodeID
	nextEdge EdgeID
}

type nodeSlot[NP any] struct {
	alive   bool
	payload NP
	out     []EdgeID
	in      []EdgeID
}

type edgeSlot[EP any] struct {
	alive   bool
	from    NodeID
	to      NodeID
	payload EP
}

// New returns an empty graph.
func New[NP any, EP any]() *Graph[NP, EP] {
	return &Graph[NP, EP]{}
}

// AddNode inserts a node carrying payload and returns its stable ID.
func (g *Graph[NP, EP]) AddNode(payload NP) NodeID {
	g.nextNode++
	id := g.nextNode
	g.growNodes(id)
	g.nodes[id] = nodeSlot[NP]{alive: true, payload: payload}
	return id
}

func (g *Graph[NP, EP]) growNodes(id NodeID) {
	if int(id) < len(g.nodes) {
		return
	}
	grown := make([]nodeSlot[NP], id+1)
	copy(grown, g.nodes)
	g.nodes = grown
}

func (g *Graph[NP, EP]) growEdges(id EdgeID) {
	if int(id) < len(g.edges) {
		return
	}
	grown := make([]edgeSlot[EP], id+1)
	copy(grown, g.edges)
	g.edges = grown
}

// AddEdge inserts a directed edge from → to carrying payload and
// returns its stable ID. Both endpoints must already exist.
func (g *Graph[NP, EP]) AddEdge(from, to NodeID, payload EP) EdgeID {
	g.nextEdge++
	id := g.nextEdge
	g.growEdges(id)
	g.edges[id] = edgeSlot[EP]{alive: true, from: from, to: to, payload: payload}
	g.nodes[from].out = append(g.nodes[from].out, id)
	g.nodes[to].in = append(g.nodes[to].in, id)
	return id
}

// Node returns the payload of id and whether it is still alive.
func (g *Graph[NP, EP]) Node(id NodeID) (NP, bool) {
	if int(id) <= 0 || int(id) >= len(g.nodes) || !g.nodes[id].alive {
		var zero NP
		return zero, false
	}
	return g.nodes[id].payload, true
}

// SetNode overwrites the payload of an existing, alive node.
func (g *Graph[NP, EP]) SetNode(id NodeID, payload NP) {
	if int(id) <= 0 || int(id) >= len(g.nodes) || !g.nodes[id].alive {
		return
	}
	g.nodes[id].payload = payload
}

// Edge returns the payload, endpoints and aliveness of id.
func (g *Graph[NP, EP]) Edge(id EdgeID) (payload EP, from, to NodeID, ok bool) {
	if int(id) <= 0 || int(id) >= len(g.edges) || !g.edges[id].alive {
		return payload, 0, 0, false
	}
	e := g.edges[id]
	return e.payload, e.from, e.to, true
}

// SetEdge overwrites the payload of an existing, alive edge.
func (g *Graph[NP, EP]) SetEdge(id EdgeID, payload EP) {
	if int(id) <= 0 || int(id) >= len(g.edges) || !g.edges[id].alive {
		return
	}
	g.edges[id].payload = payload
}

// Out returns the IDs of edges leaving node n, in insertion order.
func (g *Graph[NP, EP]) Out(n NodeID) []EdgeID {
	if int(n) <= 0 || int(n) >= len(g.nodes) {
		return nil
	}
	return g.liveOnly(g.nodes[n].out)
}

// In returns the IDs of edges entering node n, in insertion order.
func (g *Graph[NP, EP]) In(n NodeID) []EdgeID {
	if int(n) <= 0 || int(n) >= len(g.nodes) {
		return nil
	}
	return g.liveOnly(g.nodes[n].in)
}

func (g *Graph[NP, EP]) liveOnly(ids []EdgeID) []EdgeID {
	out := make([]EdgeID, 0, len(ids))
	for _, id := range ids {
		if int(id) < len(g.edges) && g.edges[id].alive {
			out = append(out, id)
		}
	}
	return out
}

// Degree returns the number of live edges incident to n, counting both
// directions (an edge present as both (a,b) and (b,a) counts twice,
// matching the undirected-relation convention).
func (g *Graph[NP, EP]) Degree(n NodeID) int {
	return len(g.Out(n)) + len(g.In(n))
}

// RemoveEdge tombstones e. Its slot is not reused.
func (g *Graph[NP, EP]) RemoveEdge(e EdgeID) {
	if int(e) <= 0 || int(e) >= len(g.edges) {
		return
	}
	g.edges[e].alive = false
}

// RemoveNode tombstones n and every edge touching it.
func (g *Graph[NP, EP]) RemoveNode(n NodeID) {
	if int(n) <= 0 || int(n) >= len(g.nodes) || !g.nodes[n].alive {
		return
	}
	for _, e := range g.nodes[n].out {
		g.RemoveEdge(e)
	}
	for _, e := range g.nodes[n].in {
		g.RemoveEdge(e)
	}
	g.nodes[n].alive = false
}

// Nodes returns the IDs of every live node, in ID order.
func (g *Graph[NP, EP]) Nodes() []NodeID {
	out := make([]NodeID, 0, len(g.nodes))
	for id := 1; id < len(g.nodes); id++ {
		if g.nodes[id].alive {
			out = append(out, NodeID(id))
		}
	}
	return out
}

// Edges returns the IDs of every live edge, in ID order.
func (g *Graph[NP, EP]) Edges() []EdgeID {
	out := make([]EdgeID, 0, len(g.edges))
	for id := 1; id < len(g.edges); id++ {
		if g.edges[id].alive {
			out = append(out, EdgeID(id))
		}
	}
	return out
}

// NodeCount returns the number of live nodes.
func (g *Graph[NP, EP]) NodeCount() int { return len(g.Nodes()) }

// EdgeCount returns the number of live edges.
func (g *Graph[NP, EP]) EdgeCount() int { return len(g.Edges()) }
