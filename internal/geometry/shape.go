package geometry

import "fmt"

// Rect is an axis-aligned rectangle spanning from its top-left corner Min to its
// bottom-right corner Max.
type Rect struct {
	Min Point `cbor:"min"`
	Max Point `cbor:"max"`
}

// Dx returns the rectangle's width.
func (r Rect) Dx() int { return r.Max.X - r.Min.X }

// Dy returns the rectangle's height.
func (r Rect) Dy() int { return r.Max.Y - r.Min.Y }

func (r Rect) String() string {
	return fmt.Sprintf("(%v)-(%v)", r.Min, r.Max)
}

// RectFromCorners builds a rectangle from its top-left and bottom-right corners. The first
// point must lie strictly above and to the left of the second.
func RectFromCorners(topLeft, bottomRight Point) (Rect, error) {
	if topLeft.X >= bottomRight.X || topLeft.Y >= bottomRight.Y {
		return Rect{}, fmt.Errorf("corner %v is not above and to the left of corner %v", topLeft, bottomRight)
	}
	return Rect{Min: topLeft, Max: bottomRight}, nil
}

// Polygon is a simple polygon given by its vertices in order. The closing edge from the last
// vertex back to the first is implied.
type Polygon []Point

// Bounds returns the polygon's axis-aligned bounding box.
func (p Polygon) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	r := Rect{Min: p[0], Max: p[0]}
	for _, pt := range p[1:] {
		r.Min.X = min(r.Min.X, pt.X)
		r.Min.Y = min(r.Min.Y, pt.Y)
		r.Max.X = max(r.Max.X, pt.X)
		r.Max.Y = max(r.Max.Y, pt.Y)
	}
	return r
}

// SelfIntersects reports whether any two non-adjacent edges of the polygon touch or cross.
func (p Polygon) SelfIntersects() bool {
	n := len(p)
	if n < 4 {
		return false // a triangle can't cross itself
	}
	for i := 0; i < n; i++ {
		a1, a2 := p[i], p[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// skip edges sharing a vertex with edge i
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1, b2 := p[j], p[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

func orientation(a, b, c Point) int {
	v := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func onSegment(a, b, p Point) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}

func segmentsIntersect(a1, a2, b1, b2 Point) bool {
	o1 := orientation(a1, a2, b1)
	o2 := orientation(a1, a2, b2)
	o3 := orientation(b1, b2, a1)
	o4 := orientation(b1, b2, a2)

	if o1 != o2 && o3 != o4 {
		return true
	}
	// collinear cases
	return (o1 == 0 && onSegment(a1, a2, b1)) ||
		(o2 == 0 && onSegment(a1, a2, b2)) ||
		(o3 == 0 && onSegment(b1, b2, a1)) ||
		(o4 == 0 && onSegment(b1, b2, a2))
}
