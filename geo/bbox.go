package geo

// BBox is an axis-aligned bounding box.
//
// The zero value is a zero-sized bounding box around the origin.
type BBox struct {
	min Point
	max Point
}

// NewBBox constructs a bounding box from two corner points, in any order.
func NewBBox(a, b Point) *BBox {
	return &BBox{
		min: a.Min(b),
		max: a.Max(b),
	}
}

// BBoxOf returns the smallest bounding box containing every point in pts.
// Returns nil if pts is empty.
func BBoxOf(pts ...Point) *BBox {
	if len(pts) == 0 {
		return nil
	}
	box := &BBox{min: pts[0], max: pts[0]}
	for _, p := range pts[1:] {
		box.min = box.min.Min(p)
		box.max = box.max.Max(p)
	}
	return box
}

// Bounds returns the min and max corners of b.
func (b *BBox) Bounds() (min, max Point) {
	return b.min, b.max
}

// Size returns the width/height of b.
func (b *BBox) Size() Point {
	return b.max.Sub(b.min)
}

// Center returns the midpoint of b.
func (b *BBox) Center() Point {
	return b.min.Lerp(b.max, 0.5)
}

// Contains reports whether p lies within b, inclusive of the boundary.
func (b *BBox) Contains(p Point) bool {
	return p.X >= b.min.X && p.X <= b.max.X && p.Y >= b.min.Y && p.Y <= b.max.Y
}

// Pad grows b by margin on every side.
func (b *BBox) Pad(margin float64) *BBox {
	return &BBox{
		min: Point{b.min.X - margin, b.min.Y - margin},
		max: Point{b.max.X + margin, b.max.Y + margin},
	}
}

// Union returns the union of a and b, either of which may be nil.
func (a *BBox) Union(b *BBox) *BBox {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &BBox{
		min: a.min.Min(b.min),
		max: a.max.Max(b.max),
	}
}

// Rotate returns the bounding box of b's four corners rotated around
// center by angle (radians). A rotated box is generally larger than
// the original since it must stay axis-aligned.
func (b *BBox) Rotate(center Point, angle float64) *BBox {
	p0 := b.min
	p1 := Point{X: b.min.X, Y: b.max.Y}
	p2 := b.max
	p3 := Point{X: b.max.X, Y: b.min.Y}

	p0 = p0.RotateAround(center, angle)
	p1 = p1.RotateAround(center, angle)
	p2 = p2.RotateAround(center, angle)
	p3 = p3.RotateAround(center, angle)

	return BBoxOf(p0, p1, p2, p3)
}
