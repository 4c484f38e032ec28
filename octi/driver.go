// Package octi is the octilinearizer driver: a generation-ordered
// greedy loop that walks the combination graph, routes each incident
// edge across the grid graph via the router, and writes the resulting
// polyline back. It is grounded on Octilinearizer.cpp's draw() method
// (global/dangling priority queues, per-edge orient/route/settle/
// balance steps) reexpressed with Go's graph/comb/basegraph/router
// packages standing in for the original's pointer graphs.
package octi

import (
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/linegrid/octilayout/basegraph"
	"github.com/linegrid/octilayout/comb"
	"github.com/linegrid/octilayout/geo"
	"github.com/linegrid/octilayout/graph"
	"github.com/linegrid/octilayout/internal/gridq"
	"github.com/linegrid/octilayout/pens"
	"github.com/linegrid/octilayout/router"
	"github.com/linegrid/octilayout/transit"
)

// UnroutedEdge records a combination edge the driver could not route.
type UnroutedEdge struct {
	Edge   graph.EdgeID
	Reason string
}

// UnroutedErr aggregates every unrouted edge into a single error via
// multierr, rather than stopping the driver loop at the first one; nil
// if every edge routed.
func (r *Result) UnroutedErr() error {
	var err error
	for _, u := range r.Unrouted {
		err = multierr.Append(err, fmt.Errorf("edge %d: %s", u.Edge, u.Reason))
	}
	return err
}

// Result is the outcome of a layout attempt.
type Result struct {
	Comb        *comb.Graph
	Grid        *basegraph.GridGraph
	Unrouted    []UnroutedEdge
	Generations int
	TotalCost   float64
}

type driver struct {
	cfg       Config
	cg        *comb.Graph
	gg        *basegraph.GridGraph
	assigned  map[graph.NodeID]gridq.Pos // comb node -> settled cell
	routed    map[graph.EdgeID]bool      // comb edges already routed (either direction)
	unrouted  []UnroutedEdge
	gen       int
	totalCost float64
}

// Layout runs the octilinearizer over tg and returns the drawn
// combination graph together with the grid graph it was routed on.
func Layout(tg *transit.Graph, cfg Config) *Result {
	threshold := cfg.GridSize * cfg.ShortEdgeFrac
	tg.CollapseShortEdges(threshold)

	cg := comb.Build(tg)
	cg.CombineDeg2()
	cg.ComputeEdgeOrdering()

	box := tg.BoundingBox()
	if box == nil {
		return &Result{Comb: cg}
	}
	box = box.Pad(cfg.GridSize * 2)
	gg := basegraph.NewHanan(box, cfg.GridSize, cfg.Pens, cfg.HananIters)

	d := &driver{
		cfg:      cfg,
		cg:       cg,
		gg:       gg,
		assigned: make(map[graph.NodeID]gridq.Pos),
		routed:   make(map[graph.EdgeID]bool),
	}
	d.run()

	return &Result{Comb: cg, Grid: gg, Unrouted: d.unrouted, Generations: d.gen, TotalCost: d.totalCost}
}

// LayoutWithRotationSweep runs Layout once per angle in angles
// (radians), rotating tg about its bounding-box centroid before each
// attempt and the winning result's geometry back afterward. An attempt
// replaces the best so far when it leaves no more edges unrouted and
// has a lower TotalCost. This mirrors
// Octilinearizer.cpp::draw's rotation sweep; spec.md's own
// single-pass contract is preserved by Layout, which never rotates.
func LayoutWithRotationSweep(tg *transit.Graph, cfg Config, angles []float64) *Result {
	if len(angles) == 0 {
		angles = []float64{0}
	}

	var best *Result
	var bestAngle float64
	for _, angle := range angles {
		box := tg.BoundingBox()
		if box == nil {
			return Layout(tg, cfg)
		}
		center := box.Center()

		if angle != 0 {
			tg.Rotate(center, angle)
		}
		res := Layout(tg, cfg)
		if angle != 0 {
			tg.Rotate(center, -angle)
		}

		if best == nil || (len(res.Unrouted) <= len(best.Unrouted) && res.TotalCost < best.TotalCost) {
			best = res
			bestAngle = angle
		}
	}

	if bestAngle != 0 && best.Comb != nil {
		box := tg.BoundingBox()
		center := box.Center()
		rotateBack(best.Comb, center, -bestAngle)
	}
	return best
}

func rotateBack(cg *comb.Graph, center geo.Point, angle float64) {
	for _, e := range cg.G.Edges() {
		ep, _, _, ok := cg.G.Edge(e)
		if !ok || len(ep.Geom) == 0 {
			continue
		}
		ep.Geom = ep.Geom.Rotate(center, angle)
		cg.G.SetEdge(e, ep)
	}
}

func (d *driver) run() {
	global := &gridq.PriorityQueue[graph.NodeID]{}
	dangling := &gridq.PriorityQueue[graph.NodeID]{}

	for _, n := range d.cg.G.Nodes() {
		global.Push(n, d.nodePriority(n))
	}

	for {
		n, ok := dangling.Pop()
		if !ok {
			n, ok = global.Pop()
			if !ok {
				return
			}
		}
		d.visitNode(n, dangling)
	}
}

func (d *driver) nodePriority(n graph.NodeID) float64 {
	np, ok := d.cg.G.Node(n)
	if !ok {
		return 0
	}
	degree := len(d.cg.G.Out(n))
	return -(float64(degree)*1e6 + float64(np.RouteNumber))
}

func (d *driver) visitNode(n graph.NodeID, dangling *gridq.PriorityQueue[graph.NodeID]) {
	np, ok := d.cg.G.Node(n)
	if !ok {
		return
	}
	for _, e := range np.EdgeOrder {
		if d.routed[e] {
			continue
		}
		other := d.routeEdge(n, e)
		if other != 0 {
			dangling.Push(other, d.nodePriority(other))
		}
	}
}

// routeEdge attempts to route combination edge e, oriented away from
// n. Returns the other endpoint if routing succeeded, else 0.
func (d *driver) routeEdge(n graph.NodeID, e graph.EdgeID) graph.NodeID {
	from := n
	to := otherEndpoint(d.cg, n, e)
	if to == 0 {
		return 0
	}

	d.routed[e] = true
	if rev := reverseCombEdge(d.cg, e); rev != 0 {
		d.routed[rev] = true
	}

	frCell, ok := d.resolveFrom(from)
	if !ok {
		d.unrouted = append(d.unrouted, UnroutedEdge{Edge: e, Reason: "no candidate hub for source"})
		return 0
	}

	maxDis := d.maxDis(to, e)
	targetCells, ok := d.widenTargets(to, maxDis)
	if !ok {
		d.unrouted = append(d.unrouted, UnroutedEdge{Edge: e, Reason: "no candidate hub for target"})
		return 0
	}

	result, ok := d.routeAcrossGrid(from, frCell, targetCells, to, e)
	if !ok {
		d.unrouted = append(d.unrouted, UnroutedEdge{Edge: e, Reason: "router returned no path"})
		return 0
	}

	toCell := d.cellOfHub(result.Target)
	d.settlePath(from, frCell, to, toCell, e, result)
	return to
}

func otherEndpoint(cg *comb.Graph, n graph.NodeID, e graph.EdgeID) graph.NodeID {
	_, from, to, ok := cg.G.Edge(e)
	if !ok {
		return 0
	}
	if from == n {
		return to
	}
	if to == n {
		return from
	}
	return 0
}

func reverseCombEdge(cg *comb.Graph, e graph.EdgeID) graph.EdgeID {
	_, from, to, ok := cg.G.Edge(e)
	if !ok {
		return 0
	}
	for _, cand := range cg.G.Out(to) {
		_, _, dest, ok := cg.G.Edge(cand)
		if ok && dest == from {
			return cand
		}
	}
	return 0
}

// resolveFrom returns the cell already settled for n, or finds and
// settles the nearest available hub.
func (d *driver) resolveFrom(n graph.NodeID) (gridq.Pos, bool) {
	if cell, ok := d.assigned[n]; ok {
		return cell, true
	}
	np, ok := d.cg.G.Node(n)
	if !ok {
		return gridq.Pos{}, false
	}
	tnp, ok := d.cg.Transit.G.Node(np.Transit)
	if !ok {
		return gridq.Pos{}, false
	}
	cands := d.gg.GetUnsettledCandidates(tnp.Pos, d.cfg.MaxGrDistMul*d.cfg.GridSize)
	if len(cands) == 0 {
		return gridq.Pos{}, false
	}
	cell := cands[0].Cell
	d.gg.SettleNode(cell, n)
	d.assigned[n] = cell
	return cell, true
}

// maxDis implements getMaxDis from the source: a degree-1 endpoint
// gets a generous radius proportional to the edge's own length; a
// long multi-child edge's radius scales with how far its average
// child length exceeds a threshold; otherwise a fixed multiple of the
// grid size.
func (d *driver) maxDis(to graph.NodeID, e graph.EdgeID) float64 {
	tooMuch := 4 * d.cfg.GridSize
	degree := len(d.cg.G.Out(to)) + len(d.cg.G.In(to))
	ep, _, _, _ := d.cg.G.Edge(e)
	length := ep.Geom.Length()

	if degree <= 2 {
		return length / 1.5
	}
	if len(ep.Children) > 5 && length/float64(len(ep.Children)) > tooMuch {
		return (length/float64(len(ep.Children)) - tooMuch) * float64(len(ep.Children))
	}
	return d.cfg.MaxGrDistMul * d.cfg.GridSize
}

func (d *driver) widenTargets(to graph.NodeID, maxDis float64) ([]gridq.Pos, bool) {
	if cell, ok := d.assigned[to]; ok {
		return []gridq.Pos{cell}, true
	}
	np, ok := d.cg.G.Node(to)
	if !ok {
		return nil, false
	}
	tnp, ok := d.cg.Transit.G.Node(np.Transit)
	if !ok {
		return nil, false
	}

	dist := maxDis
	for attempt := 0; attempt < 6; attempt++ {
		cands := d.gg.GetUnsettledCandidates(tnp.Pos, dist)
		if len(cands) > 0 {
			cells := make([]gridq.Pos, len(cands))
			for i, c := range cands {
				cells[i] = c.Cell
			}
			return cells, true
		}
		dist *= 2
	}
	return nil, false
}

func (d *driver) cellOfHub(hub graph.NodeID) gridq.Pos {
	np, _ := d.gg.G.Node(hub)
	return np.Cell
}

// usedDirectionAt returns a direction at cell's hub whose real edge
// already carries a settled resident, i.e. the direction the previous
// segment of the node's edges departed in, if any.
func (d *driver) usedDirectionAt(cell gridq.Pos) (basegraph.Direction, bool) {
	for _, dir := range basegraph.AllDirections {
		if len(d.gg.RealEdgeResidents(cell, dir)) > 0 {
			return dir, true
		}
	}
	return 0, false
}

// idealDirection returns the canonical direction closest to the
// geometric bearing from fromCell's centroid towards the (averaged)
// centroid of targetCells.
func (d *driver) idealDirection(fromCell gridq.Pos, targetCells []gridq.Pos) basegraph.Direction {
	fromC := d.gg.Centroid(fromCell)
	var sum geo.Point
	for _, t := range targetCells {
		sum = sum.Add(d.gg.Centroid(t).Sub(fromC))
	}
	if sum == (geo.Point{}) {
		return basegraph.DirE
	}
	return basegraph.FromAngle(geo.Point{}.AngleTo(sum))
}

// directionOf returns the direction at cell whose real edge carries
// combination edge ce as a resident, if any.
func (d *driver) directionOf(cell gridq.Pos, ce graph.EdgeID) (basegraph.Direction, bool) {
	for _, dir := range basegraph.AllDirections {
		for _, resident := range d.gg.RealEdgeResidents(cell, dir) {
			if resident == ce {
				return dir, true
			}
		}
	}
	return 0, false
}

// neighborDirections returns the directions already claimed at cell by
// the edges immediately adjacent to e in n's angular EdgeOrder. These
// are the directions SpacingVector and TopoBlockVector should treat as
// "allowed" for e, since routing e into one of them preserves the
// node's precomputed ordering instead of violating it.
func (d *driver) neighborDirections(n graph.NodeID, e graph.EdgeID, cell gridq.Pos) []basegraph.Direction {
	np, ok := d.cg.G.Node(n)
	if !ok || len(np.EdgeOrder) == 0 {
		return nil
	}
	idx := -1
	for i, oe := range np.EdgeOrder {
		if oe == e {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}
	count := len(np.EdgeOrder)
	var out []basegraph.Direction
	for _, off := range [2]int{-1, 1} {
		j := ((idx+off)%count + count) % count
		neighbor := np.EdgeOrder[j]
		if neighbor == e {
			continue
		}
		if dir, ok := d.directionOf(cell, neighbor); ok {
			out = append(out, dir)
		}
	}
	return out
}

func sumVectors(vecs ...basegraph.CostVector) basegraph.CostVector {
	var out basegraph.CostVector
	for _, v := range vecs {
		for _, dir := range basegraph.AllDirections {
			out[dir] += v[dir]
		}
	}
	return out
}

// hubPenaltyVector combines the bend, topology-block and spacing cost
// vectors for routing edge e away from n at cell towards targetCells,
// the three per-search penalty vectors of the cost model.
func (d *driver) hubPenaltyVector(n graph.NodeID, e graph.EdgeID, cell gridq.Pos, targetCells []gridq.Pos) basegraph.CostVector {
	usedDir, hasPrev := d.usedDirectionAt(cell)
	idealDir := d.idealDirection(cell, targetCells)
	bend := pens.BendVector(d.cfg.Weights, usedDir, hasPrev, idealDir)

	claimed := make(map[basegraph.Direction]bool)
	var used []basegraph.Direction
	for _, dir := range basegraph.AllDirections {
		if len(d.gg.RealEdgeResidents(cell, dir)) > 0 {
			claimed[dir] = true
			used = append(used, dir)
		}
	}
	allowed := make(map[basegraph.Direction]bool)
	for _, dir := range d.neighborDirections(n, e, cell) {
		allowed[dir] = true
	}
	topo := pens.TopoBlockVector(d.cfg.Weights, claimed, allowed)
	spacing := pens.SpacingVector(d.cfg.Weights, used)

	return sumVectors(bend, topo, spacing)
}

// routeAcrossGrid opens the relevant sinks, writes the cost vectors,
// invokes the router and restores the grid to its pre-search state
// except for the winning path, which the caller settles afterward.
func (d *driver) routeAcrossGrid(fromNode graph.NodeID, from gridq.Pos, targetCells []gridq.Pos, toNode graph.NodeID, e graph.EdgeID) (router.Result, bool) {
	for _, dir := range basegraph.AllDirections {
		d.gg.OpenSinkFr(from, dir, 0)
	}

	// §4.6 step 5: a single-target search also writes the same per-search
	// penalty vectors on the target hub, symmetric to the source. The
	// router enters the target through its arrival sinks, so the vector
	// is added to the arrival-sink costs opened below; closing those
	// sinks afterward removes it again.
	var targetVec basegraph.CostVector
	if len(targetCells) == 1 {
		targetVec = d.hubPenaltyVector(toNode, e, targetCells[0], []gridq.Pos{from})
	}

	// targetCells is ordered by distance from the target node's
	// position, so targetCells[0] is its ideal grid position.
	targetSet := make(map[graph.NodeID]bool, len(targetCells))
	for _, cell := range targetCells {
		hub, ok := d.gg.Hub(cell)
		if !ok {
			continue
		}
		gridDist := cell.ChebyshevDistance(targetCells[0])
		cost := pens.MovementCost(d.cfg.Weights, float64(gridDist), false)
		for _, dir := range basegraph.AllDirections {
			d.gg.OpenSinkTo(cell, dir, cost+targetVec[dir])
		}
		targetSet[hub] = true
	}

	vec := d.hubPenaltyVector(fromNode, e, from, targetCells)
	inverse := d.gg.AddCostVector(from, vec)

	srcHub, _ := d.gg.Hub(from)
	result, ok := router.Dijkstra(d.gg, srcHub, targetSet)
	if d.cfg.Verify && ok {
		astarResult, aok := router.AStar(d.gg, srcHub, targetSet, targetCells)
		if aok && math.Abs(astarResult.Cost-result.Cost) > 1e-6 {
			result = astarResult
		}
	}

	d.gg.RemoveCostVector(from, inverse)
	for _, dir := range basegraph.AllDirections {
		d.gg.CloseSinkFr(from, dir)
	}
	for _, cell := range targetCells {
		if ok && cell == d.cellOfHub(result.Target) {
			continue
		}
		for _, dir := range basegraph.AllDirections {
			d.gg.CloseSinkTo(cell, dir)
		}
	}

	return result, ok
}

// settlePath commits the winning path: settles the target hub and the
// real edges it used, builds the combination edge's polyline, and
// stamps the current generation.
func (d *driver) settlePath(from graph.NodeID, frCell gridq.Pos, to graph.NodeID, toCell gridq.Pos, e graph.EdgeID, result router.Result) {
	d.gen++
	d.totalCost += result.Cost

	if _, already := d.assigned[to]; !already {
		d.gg.SettleNode(toCell, to)
		d.assigned[to] = toCell
	}
	for _, dir := range basegraph.AllDirections {
		d.gg.CloseSinkTo(toCell, dir)
	}

	for _, step := range result.Steps {
		fp, ok := d.gg.G.Node(step.From)
		tp, ok2 := d.gg.G.Node(step.To)
		if !ok || !ok2 || fp.Kind != basegraph.KindPort || tp.Kind != basegraph.KindPort || fp.Cell == tp.Cell {
			continue
		}
		d.gg.SettleEdge(fp.Cell, fp.Dir, e)
	}
	d.balance(result)

	geomFrom := d.transitPos(from)
	geomTo := d.transitPos(to)
	polyline := BuildPolyline(d.gg, result, geomFrom, geomTo)

	ep, _, _, ok := d.cg.G.Edge(e)
	if ok {
		ep.Geom = polyline
		ep.Generation = d.gen
		ep.Routed = true
		d.cg.G.SetEdge(e, ep)
	}
}

// balance implements the §4.6 step 10 balance pass: for each port the
// settled path passed through, raise the cost of bend edges near the
// direction it used, so a later search through the same hub incurs a
// future-occupancy penalty for crowding that direction again.
func (d *driver) balance(result router.Result) {
	for _, step := range result.Steps {
		fp, ok := d.gg.G.Node(step.From)
		if !ok || fp.Kind != basegraph.KindPort {
			continue
		}
		d.gg.SurchargeBend(fp.Cell, fp.Dir, d.cfg.Weights.Spacing)
	}
}

func (d *driver) transitPos(n graph.NodeID) geo.Point {
	np, ok := d.cg.G.Node(n)
	if !ok {
		return geo.Point{}
	}
	tnp, ok := d.cg.Transit.G.Node(np.Transit)
	if !ok {
		return geo.Point{}
	}
	return tnp.Pos
}
