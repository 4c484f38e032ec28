// Package basegraph implements the octilinear grid graph: one hub and
// eight ports per cell, bend edges between a hub's own ports, sink
// edges connecting hub to port, and real edges linking neighboring
// cells. It generalizes the teacher's link_router.go implicit grid
// search (a map[GridPos]gridNode explored ad hoc per route) into an
// explicit, persistent graph built once per layout attempt and
// incrementally settled as combination edges are routed across it.
package basegraph

import (
	"math"

	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/graph"
	"github.com/linegrid/octilayout/internal/gridq"
)

// Inf is the cost used to mark a grid edge as closed/unreachable.
const Inf = math.MaxFloat64 / 4

// NodeKind distinguishes a cell's hub from its eight ports.
type NodeKind int

const (
	KindHub NodeKind = iota
	KindPort
)

// NodePayload is the per-node payload of a GridGraph.
type NodePayload struct {
	Kind      NodeKind
	Cell      gridq.Pos
	Dir       Direction // meaningful only for KindPort
	Centroid  geo.Point
	Settled   bool
	SettledBy graph.NodeID // combination node occupying this hub, 0 if unsettled
	Obstacle  bool
}

// EdgeKind distinguishes the three edge roles in the grid.
type EdgeKind int

const (
	KindSinkFrom EdgeKind = iota // hub -> port, opens departure in that direction
	KindSinkTo                   // port -> hub, opens arrival from that direction
	KindBend                     // port -> port, same hub
	KindReal                     // port -> port, neighboring hubs
)

// EdgePayload is the per-edge payload of a GridGraph.
type EdgePayload struct {
	Kind      EdgeKind
	BaseCost  float64
	Cost      float64
	Open      bool
	Secondary bool                   // true for sink and bend edges; filtered from rendered polylines
	Residents map[graph.EdgeID]bool  // combination edges resident on a real edge; nil for non-real edges
}

// Penalties configures the grid's static, per-layout-attempt costs:
// the ones baked into bend and real edges when the grid is built,
// as opposed to the additive cost vectors written per search (see
// package pens).
type Penalties struct {
	BendBase       float64 // scales the turn-angle based bend penalty
	RealBase       float64 // per-cell-unit cost of a real edge
	DiagonalFactor float64 // multiplier for diagonal real edges, default sqrt(2)
}

// DefaultPenalties returns a reasonable penalty set.
func DefaultPenalties() Penalties {
	return Penalties{BendBase: 1, RealBase: 1, DiagonalFactor: math.Sqrt2}
}

// GridGraph is the octilinear grid over a bounding box.
type GridGraph struct {
	G        *graph.Graph[NodePayload, EdgePayload]
	CellSize float64
	Pens     Penalties

	origin  geo.Point // world position of cell (0,0)'s hub
	minCell gridq.Pos
	maxCell gridq.Pos

	hubAt    map[gridq.Pos]graph.NodeID
	portAt   map[gridq.Pos][8]graph.NodeID
	sinkFrom map[gridq.Pos][8]graph.EdgeID
	sinkTo   map[gridq.Pos][8]graph.EdgeID
	bendEdge map[bendKey]graph.EdgeID
	realEdge map[realKey]graph.EdgeID
}

type bendKey struct {
	cell gridq.Pos
	from Direction
	to   Direction
}

type realKey struct {
	cell gridq.Pos
	dir  Direction
}

// New builds a grid graph covering box at the given cell size.
func New(box *geo.BBox, cellSize float64, pens Penalties) *GridGraph {
	return NewHanan(box, cellSize, pens, 0)
}

// NewHanan builds a grid graph the way New does, but first subdivides
// the cell size hananIters extra times, matching config.Config's
// HananIters field: each iteration halves the effective spacing,
// yielding a denser uniform grid for layouts that need finer-grained
// hub candidates than the raw cell size provides.
func NewHanan(box *geo.BBox, cellSize float64, pens Penalties, hananIters int) *GridGraph {
	for i := 0; i < hananIters; i++ {
		cellSize /= 2
	}
	min, max := box.Bounds()
	nx := int(math.Ceil((max.X-min.X)/cellSize)) + 1
	ny := int(math.Ceil((max.Y-min.Y)/cellSize)) + 1
	if nx < 1 {
		nx = 1
	}
	if ny < 1 {
		ny = 1
	}

	gg := &GridGraph{
		G:        graph.New[NodePayload, EdgePayload](),
		CellSize: cellSize,
		Pens:     pens,
		origin:   min,
		minCell:  gridq.Pos{X: 0, Y: 0},
		maxCell:  gridq.Pos{X: nx - 1, Y: ny - 1},
		hubAt:    make(map[gridq.Pos]graph.NodeID),
		portAt:   make(map[gridq.Pos][8]graph.NodeID),
		sinkFrom: make(map[gridq.Pos][8]graph.EdgeID),
		sinkTo:   make(map[gridq.Pos][8]graph.EdgeID),
		bendEdge: make(map[bendKey]graph.EdgeID),
		realEdge: make(map[realKey]graph.EdgeID),
	}

	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			gg.addCell(gridq.Pos{X: x, Y: y})
		}
	}
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			gg.linkRealEdges(gridq.Pos{X: x, Y: y})
		}
	}

	return gg
}

// Centroid returns the world-space centroid of a grid cell.
func (gg *GridGraph) Centroid(cell gridq.Pos) geo.Point {
	return geo.Point{
		X: gg.origin.X + float64(cell.X)*gg.CellSize,
		Y: gg.origin.Y + float64(cell.Y)*gg.CellSize,
	}
}

func (gg *GridGraph) addCell(cell gridq.Pos) {
	centroid := gg.Centroid(cell)
	hub := gg.G.AddNode(NodePayload{Kind: KindHub, Cell: cell, Centroid: centroid})
	gg.hubAt[cell] = hub

	var ports [8]graph.NodeID
	for _, d := range AllDirections {
		ports[d] = gg.G.AddNode(NodePayload{Kind: KindPort, Cell: cell, Dir: d, Centroid: centroid})
	}
	gg.portAt[cell] = ports

	var sinkFrom, sinkTo [8]graph.EdgeID
	for _, d := range AllDirections {
		sinkFrom[d] = gg.G.AddEdge(hub, ports[d], EdgePayload{Kind: KindSinkFrom, Cost: Inf, Secondary: true})
		sinkTo[d] = gg.G.AddEdge(ports[d], hub, EdgePayload{Kind: KindSinkTo, Cost: Inf, Secondary: true})
	}
	gg.sinkFrom[cell] = sinkFrom
	gg.sinkTo[cell] = sinkTo

	for _, from := range AllDirections {
		for _, to := range AllDirections {
			if from == to {
				continue
			}
			cost := gg.bendCost(from, to)
			e := gg.G.AddEdge(ports[from], ports[to], EdgePayload{Kind: KindBend, BaseCost: cost, Cost: cost, Secondary: true})
			gg.bendEdge[bendKey{cell, from, to}] = e
		}
	}
}

// bendCost prices the turn between arrival port from and departure port
// to. A route enters through port from travelling in direction
// from.Opposite(), so leaving through the opposite port is straight
// through (0 turn steps).
func (gg *GridGraph) bendCost(from, to Direction) float64 {
	steps := from.Opposite().TurnSteps(to)
	return gg.Pens.BendBase * float64(steps*steps)
}

func (gg *GridGraph) neighborCell(cell gridq.Pos, d Direction) (gridq.Pos, bool) {
	v := d.Vec()
	n := gridq.Pos{X: cell.X + int(math.Round(v.X)), Y: cell.Y + int(math.Round(v.Y))}
	if n.X < gg.minCell.X || n.X > gg.maxCell.X || n.Y < gg.minCell.Y || n.Y > gg.maxCell.Y {
		return gridq.Pos{}, false
	}
	return n, true
}

func (gg *GridGraph) linkRealEdges(cell gridq.Pos) {
	for _, d := range AllDirections {
		n, ok := gg.neighborCell(cell, d)
		if !ok {
			continue
		}
		key := realKey{cell, d}
		if _, done := gg.realEdge[key]; done {
			continue
		}

		base := gg.Pens.RealBase
		if d.IsDiagonal() {
			base *= gg.Pens.DiagonalFactor
		}

		p1 := gg.portAt[cell][d]
		p2 := gg.portAt[n][d.Opposite()]

		fwd := gg.G.AddEdge(p1, p2, EdgePayload{Kind: KindReal, BaseCost: base, Cost: base, Residents: map[graph.EdgeID]bool{}})
		bwd := gg.G.AddEdge(p2, p1, EdgePayload{Kind: KindReal, BaseCost: base, Cost: base, Residents: map[graph.EdgeID]bool{}})

		gg.realEdge[key] = fwd
		gg.realEdge[realKey{n, d.Opposite()}] = bwd
	}
}

// Hub returns the hub node ID for a cell, if it exists.
func (gg *GridGraph) Hub(cell gridq.Pos) (graph.NodeID, bool) {
	id, ok := gg.hubAt[cell]
	return id, ok
}

// Port returns the port node ID for (cell, dir), if it exists.
func (gg *GridGraph) Port(cell gridq.Pos, dir Direction) (graph.NodeID, bool) {
	ports, ok := gg.portAt[cell]
	if !ok {
		return 0, false
	}
	return ports[dir], true
}
