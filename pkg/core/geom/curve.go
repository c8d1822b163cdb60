package geom

import "math"

// Lerp returns the point a fraction t of the way from p to q.
func Lerp(p, q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Cubic evaluates the cubic Bézier curve p0, c1, c2, p3 at t in [0, 1].
func Cubic(p0, c1, c2, p3 Point, t float64) Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*p0.X + b*c1.X + c*c2.X + d*p3.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p3.Y,
	}
}

// DistanceToSegment returns the distance from p to the closed segment a-b.
// A zero-length segment degrades to the distance to a.
func DistanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return Distance(p, a)
	}
	ap := p.Sub(a)
	t := math.Max(0, math.Min(1, (ap.X*ab.X+ap.Y*ab.Y)/l2))
	return Distance(p, Lerp(a, b, t))
}

// InTriangle reports whether p lies inside or on the triangle a, b, c.
// Winding order does not matter.
func InTriangle(p, a, b, c Point) bool {
	d1 := cross(p, a, b)
	d2 := cross(p, b, c)
	d3 := cross(p, c, a)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

func cross(p, a, b Point) float64 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}
