package geo

import "github.com/linegrid/octilayout/internal/xmath"

// Polyline is a list of points {p1, p2, ..., pn} representing the
// series of segments {{p1,p2}, {p2,p3}, ..., {pn-1,pn}}. A polyline
// with fewer than 2 points is degenerate.
type Polyline []Point

// Length returns the total Euclidean length of pl.
func (pl Polyline) Length() float64 {
	if len(pl) <= 1 {
		return 0
	}
	lens := make([]float64, len(pl)-1)
	for i := 0; i < len(pl)-1; i++ {
		lens[i] = pl[i+1].Sub(pl[i]).Length()
	}
	return xmath.Sum(lens)
}

// Reverse returns pl with its points in reverse order.
func (pl Polyline) Reverse() Polyline {
	out := make(Polyline, len(pl))
	for i, p := range pl {
		out[len(pl)-1-i] = p
	}
	return out
}

// Fix removes zero-length repeats and NaN points.
func (pl Polyline) Fix() Polyline {
	if len(pl) == 0 {
		return pl
	}
	out := make(Polyline, 0, len(pl))
	var prev Point
	for i, p := range pl {
		if i != 0 && p == prev {
			continue
		}
		if isNaN(p.X) || isNaN(p.Y) {
			continue
		}
		out = append(out, p)
		prev = p
	}
	return out
}

func isNaN(f float64) bool { return f != f }

// Interpolate returns the point t*Length() along the polyline. t is
// clamped to [0, 1].
func (pl Polyline) Interpolate(t float64) Point {
	i, j, t := pl.locate(t)
	if i < 0 {
		return Point{}
	}
	if i == j {
		return pl[i]
	}
	return pl[i].Lerp(pl[j], t)
}

// Segment returns the sub-polyline spanning [t0, t1] of the arc length.
func (pl Polyline) Segment(t0, t1 float64) Polyline {
	_, tail := pl.SplitAt(t0)
	// Re-derive t1 relative to the remaining length.
	l0 := pl.Length() * xmath.Clamp01(t0)
	lTotal := pl.Length()
	if lTotal == 0 {
		return tail
	}
	rel := (xmath.Clamp01(t1)*lTotal - l0) / (lTotal - l0)
	if lTotal-l0 <= 0 {
		rel = 1
	}
	head, _ := tail.SplitAt(xmath.Clamp01(rel))
	return head
}

// SplitAt splits pl into two polylines at arc-length fraction t. The
// two results share the split point.
func (pl Polyline) SplitAt(t float64) (Polyline, Polyline) {
	i, j, t := pl.locate(t)
	if i < 0 {
		return nil, nil
	}
	head := make(Polyline, 0, i+1)
	head = append(head, pl[:i+1]...)
	tail := make(Polyline, 0, len(pl)-j)

	if i != j {
		split := pl[i].Lerp(pl[j], t)
		head = append(head, split)
		tail = append(tail, split)
	}
	tail = append(tail, pl[j:]...)
	return head, tail
}

func (pl Polyline) locate(t float64) (int, int, float64) {
	if len(pl) == 0 {
		return -1, -1, t
	}
	if len(pl) == 1 || t <= 0 {
		return 0, 0, 0
	}
	if t >= 1 {
		idx := len(pl) - 1
		return idx, idx, 1
	}
	if len(pl) == 2 {
		return 0, 1, t
	}

	target := pl.Length() * t
	var cur float64
	for i := 0; i < len(pl)-1; i++ {
		segLen := pl[i+1].Sub(pl[i]).Length()
		if segLen == 0 {
			continue
		}
		next := cur + segLen
		if next == target {
			return i + 1, i + 1, 0
		}
		if next >= target {
			return i, i + 1, (target - cur) / segLen
		}
		cur = next
	}
	return -1, -1, 0
}

// Rotate rotates every point of pl around center by angle (radians).
func (pl Polyline) Rotate(center Point, angle float64) Polyline {
	out := make(Polyline, len(pl))
	for i, p := range pl {
		out[i] = p.RotateAround(center, angle)
	}
	return out
}
