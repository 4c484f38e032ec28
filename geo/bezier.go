package geo

// CubicBezier is a cubic Bezier curve defined by a start point, two
// control points and an end point. It is used to smooth the takeoff
// and touchdown of a routed edge at a grid hub, where the straight
// grid path would otherwise kink sharply against the station's real
// geographic position.
type CubicBezier struct {
	P0, P1, P2, P3 Point
}

// At evaluates the curve at parameter t in [0, 1].
func (c CubicBezier) At(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t

	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Render samples the curve at steps+1 evenly spaced parameter values,
// including both endpoints, and returns it as a polyline.
func (c CubicBezier) Render(steps int) Polyline {
	if steps < 1 {
		steps = 1
	}
	out := make(Polyline, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		out = append(out, c.At(t))
	}
	return out
}
