package basegraph

import (
	"math"

	"github.com/linegrid/octilayout/geo"
)

// Direction is one of the eight canonical octilinear directions,
// indexed 0..7 in 45-degree steps starting at east. It generalizes the
// teacher's compass direction type (direction.go) from an 8-point
// rendering compass to the grid graph's port indexing.
type Direction int

const (
	DirE Direction = iota
	DirNE
	DirN
	DirNW
	DirW
	DirSW
	DirS
	DirSE
)

// AllDirections lists the eight directions in index order.
var AllDirections = [8]Direction{DirE, DirNE, DirN, DirNW, DirW, DirSW, DirS, DirSE}

// Degrees returns the direction's angle, 0 (east) to 315, ccw.
func (d Direction) Degrees() float64 {
	return float64(d) * 45
}

// Opposite returns the direction 180 degrees from d.
func (d Direction) Opposite() Direction {
	return (d + 4) % 8
}

// Vec returns the unit vector for d, Y increasing north.
func (d Direction) Vec() geo.Point {
	rad := d.Degrees() * math.Pi / 180
	return geo.Point{X: math.Cos(rad), Y: math.Sin(rad)}
}

// IsDiagonal reports whether d is one of the four 45-degree diagonals.
func (d Direction) IsDiagonal() bool {
	return d%2 == 1
}

// TurnSteps returns the minimum number of 45-degree steps between d and o,
// in [0, 4].
func (d Direction) TurnSteps(o Direction) int {
	diff := int(d) - int(o)
	if diff < 0 {
		diff = -diff
	}
	diff %= 8
	if diff > 4 {
		diff = 8 - diff
	}
	return diff
}

// TurnAngle returns the minimum turning angle between d and o, in
// {0, 45, 90, 135, 180}.
func (d Direction) TurnAngle(o Direction) float64 {
	return float64(d.TurnSteps(o)) * 45
}

// FromAngle snaps an arbitrary angle in degrees to the nearest canonical direction.
func FromAngle(deg float64) Direction {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	idx := int(math.Round(deg/45)) % 8
	return Direction(idx)
}

func (d Direction) String() string {
	switch d {
	case DirE:
		return "e"
	case DirNE:
		return "ne"
	case DirN:
		return "n"
	case DirNW:
		return "nw"
	case DirW:
		return "w"
	case DirSW:
		return "sw"
	case DirS:
		return "s"
	case DirSE:
		return "se"
	default:
		return ""
	}
}
