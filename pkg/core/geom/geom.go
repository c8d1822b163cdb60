package geom

import (
	"fmt"
	"math"
)

// Point is a location in canvas space.
type Point struct {
	X float64 `json:"x" yaml:"x" bson:"x"`
	Y float64 `json:"y" yaml:"y" bson:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by v.
func (p Point) Add(v Vector) Point { return Point{X: p.X + v.X, Y: p.Y + v.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector { return Vector{X: p.X - q.X, Y: p.Y - q.Y} }

// IsNaN reports whether either coordinate is NaN.
func (p Point) IsNaN() bool { return math.IsNaN(p.X) || math.IsNaN(p.Y) }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// NaN is the sentinel "no point" value.
func NaN() Point { return Point{X: math.NaN(), Y: math.NaN()} }

// Vector is a displacement between two points.
type Vector struct {
	X, Y float64
}

// Length returns the Euclidean norm of v.
func (v Vector) Length() float64 { return math.Hypot(v.X, v.Y) }

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 { return p.Sub(q).Length() }

// Size is a width and height pair.
type Size struct {
	W float64 `json:"width" yaml:"width" bson:"width"`
	H float64 `json:"height" yaml:"height" bson:"height"`
}

// Rect is an axis-aligned rectangle given by its top-left origin and size.
type Rect struct {
	X float64 `json:"x" yaml:"x" bson:"x"`
	Y float64 `json:"y" yaml:"y" bson:"y"`
	W float64 `json:"width" yaml:"width" bson:"width"`
	H float64 `json:"height" yaml:"height" bson:"height"`
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// RectAt builds a rectangle from an origin and a size.
func RectAt(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, W: size.W, H: size.H}
}

// RectFromPoints returns the smallest rectangle containing both p and q.
func RectFromPoints(p, q Point) Rect {
	x0, x1 := math.Min(p.X, q.X), math.Max(p.X, q.X)
	y0, y1 := math.Min(p.Y, q.Y), math.Max(p.Y, q.Y)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) TopLeft() Point     { return Point{X: r.Left(), Y: r.Top()} }
func (r Rect) TopRight() Point    { return Point{X: r.Right(), Y: r.Top()} }
func (r Rect) BottomLeft() Point  { return Point{X: r.Left(), Y: r.Bottom()} }
func (r Rect) BottomRight() Point { return Point{X: r.Right(), Y: r.Bottom()} }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return r.TopLeft() }

// Size returns the rectangle's extent.
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Inflate grows the rectangle by dx on the left and right and by dy on the
// top and bottom. Negative values shrink it; the result is not clamped.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, W: r.W + 2*dx, H: r.H + 2*dy}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Contains reports whether p lies inside r or on its border.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// IntersectsWith reports whether r and o overlap. Shared edges count.
func (r Rect) IntersectsWith(o Rect) bool {
	return !(r.Left() > o.Right() || r.Right() < o.Left() || r.Top() > o.Bottom() || r.Bottom() < o.Top())
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	x0, y0 := math.Min(r.Left(), o.Left()), math.Min(r.Top(), o.Top())
	x1, y1 := math.Max(r.Right(), o.Right()), math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Rotated returns the axis-aligned bounding box of r rotated by deg degrees
// around its center.
func (r Rect) Rotated(deg float64) Rect {
	if math.Mod(deg, 360) == 0 {
		return r
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Abs(math.Sin(rad)), math.Abs(math.Cos(rad))
	w := r.W*cos + r.H*sin
	h := r.W*sin + r.H*cos
	c := r.Center()
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.W, r.H)
}

// Bounds returns the bounding box of pts. It returns the zero Rect for an
// empty slice.
func Bounds(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	b := RectFromPoints(pts[0], pts[0])
	for _, p := range pts[1:] {
		b = b.Union(RectFromPoints(p, p))
	}
	return b
}
