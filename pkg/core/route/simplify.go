package route

import (
	"math"
	"slices"

	"github.com/matzehuels/tilewire/pkg/core/connector"
	"github.com/matzehuels/tilewire/pkg/core/geom"
)

// Visible reports whether the bounding box of the segment p→q misses every
// obstacle shrunk by one unit on each side.
func Visible(p, q geom.Point, obstacles []geom.Rect) bool {
	seg := geom.RectFromPoints(p, q)
	for _, r := range obstacles {
		if r.Inflate(-1, -1).IntersectsWith(seg) {
			return false
		}
	}
	return true
}

// rectVisible reports whether any corner of target is visible from p.
func rectVisible(p geom.Point, target geom.Rect, obstacles []geom.Rect) bool {
	for _, c := range [...]geom.Point{target.TopLeft(), target.TopRight(), target.BottomLeft(), target.BottomRight()} {
		if Visible(p, c, obstacles) {
			return true
		}
	}
	return false
}

// Simplify removes corners that can be skipped without crossing an obstacle
// and then straightens the first diagonal segment it finds. from and to are
// the sides the path leaves and enters on; they orient the first and last
// segments when those need straightening.
//
// Only the first diagonal is repaired; any later diagonal is left as is.
// Whether the corner hop can ever produce a second one is unresolved.
func Simplify(points []geom.Point, obstacles []geom.Rect, from, to connector.Orientation) []geom.Point {
	out := make([]geom.Point, 0, len(points)+2)
	cut := 0
	for i := range points {
		if i < cut {
			continue
		}
		for k := len(points) - 1; k > i; k-- {
			if Visible(points[i], points[k], obstacles) {
				cut = k
				break
			}
		}
		out = append(out, points[i])
	}
	return straighten(out, from, to)
}

// straighten replaces the first diagonal segment with an orthogonal dogleg
// chosen from the orientation of its neighbors.
func straighten(pts []geom.Point, from, to connector.Orientation) []geom.Point {
	for j := 0; j+1 < len(pts); j++ {
		a, b := pts[j], pts[j+1]
		if a.X == b.X || a.Y == b.Y {
			continue
		}

		in := from
		if j > 0 {
			in = segmentSide(pts[j], pts[j-1])
		}
		out := to
		if j != len(pts)-2 {
			out = segmentSide(pts[j+1], pts[j+2])
		}

		switch {
		case in.IsHorizontal() && out.IsHorizontal():
			cx := math.Min(a.X, b.X) + math.Abs(a.X-b.X)/2
			pts = slices.Insert(pts, j+1, geom.Pt(cx, a.Y), geom.Pt(cx, b.Y))
			if len(pts)-1 > j+3 {
				pts = slices.Delete(pts, j+3, j+4)
			}
			return pts
		case in.IsVertical() && out.IsVertical():
			cy := math.Min(a.Y, b.Y) + math.Abs(a.Y-b.Y)/2
			pts = slices.Insert(pts, j+1, geom.Pt(a.X, cy), geom.Pt(b.X, cy))
			if len(pts)-1 > j+3 {
				pts = slices.Delete(pts, j+3, j+4)
			}
			return pts
		case in.IsHorizontal() && out.IsVertical():
			return slices.Insert(pts, j+1, geom.Pt(b.X, a.Y))
		case in.IsVertical() && out.IsHorizontal():
			return slices.Insert(pts, j+1, geom.Pt(a.X, b.Y))
		}
	}
	return pts
}

// segmentSide classifies the axis-aligned segment p→q by the side of p it
// leaves from. Diagonal segments yield None.
func segmentSide(p, q geom.Point) connector.Orientation {
	switch {
	case p.X == q.X:
		if p.Y >= q.Y {
			return connector.Bottom
		}
		return connector.Top
	case p.Y == q.Y:
		if p.X >= q.X {
			return connector.Right
		}
		return connector.Left
	}
	return connector.None
}
